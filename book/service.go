package book

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
)

// ListLimit caps the number of summaries List yields
const ListLimit = 2

type UseCase interface {
	Create(ctx context.Context, in Input) (string, error)
	List(ctx context.Context, filter Filter) (iter.Seq[Summary], error)
	Get(ctx context.Context, id string) (Book, error)
	Update(ctx context.Context, id string, in Input) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

func (s *Service) Create(ctx context.Context, in Input) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	now := time.Now().UTC()
	b := Book{
		ID:         uuid.NewString(),
		InsertedAt: now,
	}
	in.apply(&b, now)
	id, err := s.Repo.Insert(ctx, b)
	if err != nil {
		return "", fmt.Errorf("inserting book: %w", err)
	}
	_, err = s.Repo.Select(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return "", ErrInsertFailed
	case err != nil:
		return "", fmt.Errorf("checking inserted book: %w", err)
	}
	return id, nil
}

/* List takes a snapshot of the store and returns a sequence over it.
 * Matching happens while iterating; ranging over the result again starts from the top.
 */
func (s *Service) List(ctx context.Context, filter Filter) (iter.Seq[Summary], error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	return func(yield func(Summary) bool) {
		n := 0
		for _, b := range all {
			if n == ListLimit {
				return
			}
			if !filter.Match(b) {
				continue
			}
			n++
			if !yield(b.Summarize()) {
				return
			}
		}
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

// Update checks existence before validating, so an unknown id is always ErrNotFound
func (s *Service) Update(ctx context.Context, id string, in Input) error {
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return fmt.Errorf("selecting book: %w", err)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	in.apply(&b, time.Now().UTC())
	err = s.Repo.Update(ctx, b)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}
