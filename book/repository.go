package book

import "context"

/* Small interfaces: the service only needs to read, write and close.
 * Implementations live in sub-packages (memory, redis) and are injected into the Service.
 */

type Reader interface {
	// Select returns ErrNotFound when the id is unknown
	Select(ctx context.Context, id string) (Book, error)
	// SelectAll returns every book in insertion order
	SelectAll(ctx context.Context) ([]Book, error)
}

type Writer interface {
	Insert(ctx context.Context, book Book) (string, error)
	// Update and Delete return ErrNotFound when the id is unknown
	Update(ctx context.Context, book Book) error
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
