package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of book.Repository
 * Uses one Redis Hash per book for the record itself
 * and a Redis List holding the ids in insertion order.
 */

const (
	hashPrefix = "book"  // Hash naming: book:{id}
	orderKey   = "books" // List of ids, oldest first
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
	}, nil
}

// Insert stores the hash and appends the id to the order list in one transaction
func (r *Repository) Insert(ctx context.Context, b book.Book) (string, error) {
	hashKey := getHashKey(b.ID)

	exists, err := r.client.Exists(ctx, hashKey).Result()
	if err != nil {
		return "", fmt.Errorf("checking book id: %w", err)
	}
	if exists > 0 {
		return "", fmt.Errorf("duplicate book id: %s", b.ID)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hashKey, toHash(b))
		pipe.RPush(ctx, orderKey, b.ID)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("storing book: %w", err)
	}

	return b.ID, nil
}

// Select retrieves a book by ID from its hash
func (r *Repository) Select(ctx context.Context, id string) (book.Book, error) {
	data, err := r.client.HGetAll(ctx, getHashKey(id)).Result()
	if err != nil {
		return book.Book{}, fmt.Errorf("getting book: %w", err)
	}
	if len(data) == 0 {
		return book.Book{}, book.ErrNotFound
	}
	return fromHash(data)
}

// SelectAll walks the order list and fetches every hash in a single pipeline
func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	ids, err := r.client.LRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing book ids: %w", err)
	}
	if len(ids) == 0 {
		return []book.Book{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, 0, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			cmds = append(cmds, pipe.HGetAll(ctx, getHashKey(id)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("getting books: %w", err)
	}

	books := make([]book.Book, 0, len(cmds))
	for _, cmd := range cmds {
		data := cmd.Val()
		// Skip ids whose hash is gone
		if len(data) == 0 {
			continue
		}
		b, err := fromHash(data)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

// Update overwrites every field of an existing book hash
func (r *Repository) Update(ctx context.Context, b book.Book) error {
	hashKey := getHashKey(b.ID)

	exists, err := r.client.Exists(ctx, hashKey).Result()
	if err != nil {
		return fmt.Errorf("checking book id: %w", err)
	}
	if exists == 0 {
		return book.ErrNotFound
	}

	err = r.client.HSet(ctx, hashKey, toHash(b)).Err()
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	return nil
}

// Delete removes the hash and its entry in the order list
func (r *Repository) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, getHashKey(id))
		pipe.LRem(ctx, orderKey, 1, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if del.Val() == 0 {
		return book.ErrNotFound
	}
	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// Helper functions

func getHashKey(id string) string {
	return fmt.Sprintf("%s:%s", hashPrefix, id)
}

func toHash(b book.Book) map[string]interface{} {
	return map[string]interface{}{
		"id":          b.ID,
		"name":        b.Name,
		"year":        strconv.Itoa(b.Year),
		"author":      b.Author,
		"summary":     b.Summary,
		"publisher":   b.Publisher,
		"page_count":  strconv.Itoa(b.PageCount),
		"read_page":   strconv.Itoa(b.ReadPage),
		"finished":    strconv.FormatBool(b.Finished),
		"reading":     strconv.FormatBool(b.Reading),
		"inserted_at": b.InsertedAt.Format(time.RFC3339Nano),
		"updated_at":  b.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func fromHash(data map[string]string) (book.Book, error) {
	insertedAt, err := time.Parse(time.RFC3339Nano, data["inserted_at"])
	if err != nil {
		return book.Book{}, fmt.Errorf("parsing inserted_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, data["updated_at"])
	if err != nil {
		return book.Book{}, fmt.Errorf("parsing updated_at: %w", err)
	}

	return book.Book{
		ID:         data["id"],
		Name:       data["name"],
		Year:       parseInt(data["year"]),
		Author:     data["author"],
		Summary:    data["summary"],
		Publisher:  data["publisher"],
		PageCount:  parseInt(data["page_count"]),
		ReadPage:   parseInt(data["read_page"]),
		Finished:   parseBool(data["finished"]),
		Reading:    parseBool(data["reading"]),
		InsertedAt: insertedAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}
