package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/rs/zerolog"
)

const serviceName = "bookshelf-api"

// NewLogger creates the service logger shared by the request logger and the process
func NewLogger(json bool) zerolog.Logger {
	return httplog.NewLogger(serviceName, httplog.Options{
		JSON: json,
	})
}

// Handlers sets up the book API routes. metricsHandler is mounted on /metrics when not nil.
func Handlers(ctx context.Context, logger zerolog.Logger, bookService book.UseCase, metricsHandler http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Method(http.MethodPost, "/books", postBooks(bookService))
	r.Method(http.MethodGet, "/books", getBooks(bookService))
	r.Method(http.MethodGet, "/books/{id}", getBook(bookService))
	r.Method(http.MethodPut, "/books/{id}", putBook(bookService))
	r.Method(http.MethodDelete, "/books/{id}", deleteBook(bookService))

	return r
}
