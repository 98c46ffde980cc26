package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"math"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookshelf-api/book"
)

/*
* Web layer representation of a book, hence the json tags
 */
type bookRequest struct {
	Name      string `json:"name"`
	Year      int    `json:"year"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"pageCount"`
	ReadPage  int    `json:"readPage"`
	Reading   bool   `json:"reading"`
}

func (br bookRequest) input() book.Input {
	return book.Input{
		Name:      br.Name,
		Year:      br.Year,
		Author:    br.Author,
		Summary:   br.Summary,
		Publisher: br.Publisher,
		PageCount: br.PageCount,
		ReadPage:  br.ReadPage,
		Reading:   br.Reading,
	}
}

type bookResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Author     string `json:"author"`
	Summary    string `json:"summary"`
	Publisher  string `json:"publisher"`
	PageCount  int    `json:"pageCount"`
	ReadPage   int    `json:"readPage"`
	Finished   bool   `json:"finished"`
	Reading    bool   `json:"reading"`
	InsertedAt string `json:"insertedAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// ISO 8601 with milliseconds, always UTC
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func newBookResponse(b book.Book) bookResponse {
	return bookResponse{
		ID:         b.ID,
		Name:       b.Name,
		Year:       b.Year,
		Author:     b.Author,
		Summary:    b.Summary,
		Publisher:  b.Publisher,
		PageCount:  b.PageCount,
		ReadPage:   b.ReadPage,
		Finished:   b.Finished,
		Reading:    b.Reading,
		InsertedAt: b.InsertedAt.UTC().Format(timestampLayout),
		UpdatedAt:  b.UpdatedAt.UTC().Format(timestampLayout),
	}
}

type summaryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// envelope wraps every response body
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

const (
	statusSuccess = "success"
	statusFail    = "fail"
)

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		oplog := httplog.LogEntry(r.Context())
		oplog.Error().Err(err).Msg("encoding response")
	}
}

func fail(w http.ResponseWriter, r *http.Request, code int, message string) {
	writeJSON(w, r, code, envelope{Status: statusFail, Message: message})
}

/* writeError maps service errors to status codes.
 * action is the failed operation as the client should read it, e.g. "add book".
 */
func writeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case errors.Is(err, book.ErrMissingName):
		fail(w, r, http.StatusBadRequest, "Failed to "+action+". Please fill in the book name")
	case errors.Is(err, book.ErrReadPageExceedsPageCount):
		fail(w, r, http.StatusBadRequest, "Failed to "+action+". readPage must not be greater than pageCount")
	case errors.Is(err, book.ErrNotFound):
		fail(w, r, http.StatusNotFound, "Failed to "+action+". Id not found")
	default:
		oplog := httplog.LogEntry(r.Context())
		oplog.Error().Err(err).Str("action", action).Msg("request failed")
		fail(w, r, http.StatusInternalServerError, "Failed to "+action)
	}
}

func postBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br bookRequest
		err := json.NewDecoder(r.Body).Decode(&br)
		if err != nil {
			fail(w, r, http.StatusBadRequest, "Failed to add book. Invalid request body")
			return
		}
		id, err := bookService.Create(r.Context(), br.input())
		if err != nil {
			writeError(w, r, "add book", err)
			return
		}
		writeJSON(w, r, http.StatusCreated, envelope{
			Status:  statusSuccess,
			Message: "Book added successfully",
			Data:    map[string]string{"bookId": id},
		})
	})
}

func getBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seq, err := bookService.List(r.Context(), parseFilter(r))
		if err != nil {
			writeError(w, r, "list books", err)
			return
		}
		result := []summaryResponse{}
		for s := range seq {
			result = append(result, summaryResponse{
				ID:        s.ID,
				Name:      s.Name,
				Publisher: s.Publisher,
			})
		}
		writeJSON(w, r, http.StatusOK, envelope{
			Status: statusSuccess,
			Data:   map[string][]summaryResponse{"books": result},
		})
	})
}

func getBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := bookService.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, book.ErrNotFound) {
			fail(w, r, http.StatusNotFound, "Book not found")
			return
		}
		if err != nil {
			writeError(w, r, "get book", err)
			return
		}
		writeJSON(w, r, http.StatusOK, envelope{
			Status: statusSuccess,
			Data:   map[string]bookResponse{"book": newBookResponse(b)},
		})
	})
}

func putBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br bookRequest
		err := json.NewDecoder(r.Body).Decode(&br)
		if err != nil {
			fail(w, r, http.StatusBadRequest, "Failed to update book. Invalid request body")
			return
		}
		err = bookService.Update(r.Context(), chi.URLParam(r, "id"), br.input())
		if err != nil {
			writeError(w, r, "update book", err)
			return
		}
		writeJSON(w, r, http.StatusOK, envelope{
			Status:  statusSuccess,
			Message: "Book updated successfully",
		})
	})
}

func deleteBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := bookService.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, "delete book", err)
			return
		}
		writeJSON(w, r, http.StatusOK, envelope{
			Status:  statusSuccess,
			Message: "Book deleted successfully",
		})
	})
}

/* parseFilter reads the optional name, reading and finished query params.
 * reading/finished are numeric flags: any non-zero number is true,
 * zero or anything that isn't a number is false.
 */
func parseFilter(r *http.Request) book.Filter {
	q := r.URL.Query()
	var f book.Filter
	if q.Has("name") {
		name := q.Get("name")
		f.Name = &name
	}
	if q.Has("reading") {
		reading := numericFlag(q.Get("reading"))
		f.Reading = &reading
	}
	if q.Has("finished") {
		finished := numericFlag(q.Get("finished"))
		f.Finished = &finished
	}
	return f
}

func numericFlag(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return false
	}
	return v != 0
}
