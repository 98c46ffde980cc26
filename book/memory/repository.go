package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/marcelsud/bookshelf-api/book"
)

/* In-memory implementation of book.Repository
 * Keeps books in an ordered slice (insertion order is observable through List)
 * and an id -> position index for lookups. The index is rebuilt after a delete.
 * net/http serves requests concurrently, so every access goes through the mutex.
 */

type Repository struct {
	mu    sync.RWMutex
	books []book.Book
	index map[string]int
}

func NewRepository() *Repository {
	return &Repository{
		index: make(map[string]int),
	}
}

func (r *Repository) Insert(_ context.Context, b book.Book) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[b.ID]; exists {
		return "", fmt.Errorf("duplicate book id: %s", b.ID)
	}
	r.index[b.ID] = len(r.books)
	r.books = append(r.books, b)
	return b.ID, nil
}

func (r *Repository) Select(_ context.Context, id string) (book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, exists := r.index[id]
	if !exists {
		return book.Book{}, book.ErrNotFound
	}
	return r.books[i], nil
}

func (r *Repository) SelectAll(_ context.Context) ([]book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.books), nil
}

func (r *Repository) Update(_ context.Context, b book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, exists := r.index[b.ID]
	if !exists {
		return book.ErrNotFound
	}
	r.books[i] = b
	return nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, exists := r.index[id]
	if !exists {
		return book.ErrNotFound
	}
	r.books = slices.Delete(r.books, i, i+1)
	delete(r.index, id)
	for j := i; j < len(r.books); j++ {
		r.index[r.books[j].ID] = j
	}
	return nil
}

// Close is a no-op, there is nothing to release
func (r *Repository) Close(_ context.Context) error {
	return nil
}
