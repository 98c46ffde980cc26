package book_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/book/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validInput() book.Input {
	return book.Input{
		Name:      "Dune",
		Year:      1965,
		Author:    "Frank Herbert",
		Summary:   "Spice",
		Publisher: "Chilton",
		PageCount: 412,
		ReadPage:  100,
		Reading:   true,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := book.NewService(repo)
		var stored book.Book
		repo.On("Insert", ctx, book.MatchBook(func(b book.Book) bool {
			stored = b
			return b.ID != "" &&
				b.Name == "Dune" &&
				b.PageCount == 412 &&
				b.ReadPage == 100 &&
				!b.Finished &&
				b.Reading &&
				!b.InsertedAt.IsZero() &&
				b.InsertedAt.Equal(b.UpdatedAt)
		})).Return(func(_ context.Context, b book.Book) (string, error) {
			return b.ID, nil
		})
		repo.On("Select", ctx, mock.AnythingOfType("string")).Return(func(_ context.Context, id string) (book.Book, error) {
			return stored, nil
		})

		id, err := s.Create(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, stored.ID, id)
		assert.Len(t, id, 36)
	})
	t.Run("finished when every page is read", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := book.NewService(repo)
		repo.On("Insert", ctx, book.MatchBook(func(b book.Book) bool {
			return b.Finished
		})).Return("id-1", nil)
		repo.On("Select", ctx, "id-1").Return(book.Book{ID: "id-1"}, nil)

		in := validInput()
		in.ReadPage = in.PageCount
		_, err := s.Create(ctx, in)
		require.NoError(t, err)
	})
	t.Run("missing name", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := book.NewService(repo)
		in := validInput()
		in.Name = ""
		id, err := s.Create(ctx, in)
		assert.ErrorIs(t, err, book.ErrMissingName)
		assert.ErrorIs(t, err, book.ErrValidation)
		assert.Empty(t, id)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
	t.Run("read page exceeds page count", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := book.NewService(repo)
		in := validInput()
		in.ReadPage = in.PageCount + 1
		_, err := s.Create(ctx, in)
		assert.ErrorIs(t, err, book.ErrReadPageExceedsPageCount)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
	t.Run("insert error", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := book.NewService(repo)
		repo.On("Insert", ctx, mock.Anything).Return("", errors.New("some error"))
		id, err := s.Create(ctx, validInput())
		assert.ErrorContains(t, err, "inserting book")
		assert.Empty(t, id)
	})
	t.Run("inserted book cannot be read back", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := book.NewService(repo)
		repo.On("Insert", ctx, mock.Anything).Return("lost", nil)
		repo.On("Select", ctx, "lost").Return(book.Book{}, book.ErrNotFound)
		_, err := s.Create(ctx, validInput())
		assert.ErrorIs(t, err, book.ErrInsertFailed)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	all := []book.Book{
		{ID: "1", Name: "Dune", Publisher: "Chilton", Reading: true},
		{ID: "2", Name: "Children of Dune", Publisher: "Putnam", Finished: true},
		{ID: "3", Name: "Neuromancer", Publisher: "Ace", Reading: true, Finished: true},
		{ID: "4", Name: "DUNE Messiah", Publisher: "Putnam"},
	}
	t.Run("no filter caps at two", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectAll", ctx).Return(all, nil)
		s := book.NewService(repo)
		seq, err := s.List(ctx, book.Filter{})
		require.NoError(t, err)
		got := slices.Collect(seq)
		assert.Equal(t, []book.Summary{
			{ID: "1", Name: "Dune", Publisher: "Chilton"},
			{ID: "2", Name: "Children of Dune", Publisher: "Putnam"},
		}, got)
	})
	t.Run("name is case insensitive", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectAll", ctx).Return(all, nil)
		s := book.NewService(repo)
		name := "dune"
		reading := false
		seq, err := s.List(ctx, book.Filter{Name: &name, Reading: &reading})
		require.NoError(t, err)
		got := slices.Collect(seq)
		require.Len(t, got, 2)
		assert.Equal(t, "2", got[0].ID)
		assert.Equal(t, "4", got[1].ID)
	})
	t.Run("finished filter", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectAll", ctx).Return(all, nil)
		s := book.NewService(repo)
		finished := true
		reading := true
		seq, err := s.List(ctx, book.Filter{Finished: &finished, Reading: &reading})
		require.NoError(t, err)
		got := slices.Collect(seq)
		require.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
	})
	t.Run("sequence is restartable", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectAll", ctx).Return(all, nil).Once()
		s := book.NewService(repo)
		seq, err := s.List(ctx, book.Filter{})
		require.NoError(t, err)
		assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
	})
	t.Run("repository error", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectAll", ctx).Return(nil, errors.New("boom"))
		s := book.NewService(repo)
		seq, err := s.List(ctx, book.Filter{})
		assert.ErrorContains(t, err, "selecting books")
		assert.Nil(t, seq)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Select", ctx, "nope").Return(book.Book{}, book.ErrNotFound)
		s := book.NewService(repo)
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, book.ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	existing := book.Book{ID: "1", Name: "Old", PageCount: 10, ReadPage: 1}
	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Select", ctx, "1").Return(existing, nil)
		repo.On("Update", ctx, book.MatchBook(func(b book.Book) bool {
			return b.ID == "1" &&
				b.Name == "Dune" &&
				b.ReadPage == 100 &&
				!b.Finished &&
				!b.UpdatedAt.IsZero() &&
				b.InsertedAt.IsZero()
		})).Return(nil)
		s := book.NewService(repo)
		require.NoError(t, s.Update(ctx, "1", validInput()))
	})
	t.Run("recomputes finished", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Select", ctx, "1").Return(existing, nil)
		repo.On("Update", ctx, book.MatchBook(func(b book.Book) bool {
			return b.Finished
		})).Return(nil)
		s := book.NewService(repo)
		in := validInput()
		in.ReadPage = in.PageCount
		require.NoError(t, s.Update(ctx, "1", in))
	})
	t.Run("not found wins over validation", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Select", ctx, "nope").Return(book.Book{}, book.ErrNotFound)
		s := book.NewService(repo)
		err := s.Update(ctx, "nope", book.Input{})
		assert.ErrorIs(t, err, book.ErrNotFound)
	})
	t.Run("validation", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Select", ctx, "1").Return(existing, nil)
		s := book.NewService(repo)
		in := validInput()
		in.ReadPage = 1000
		err := s.Update(ctx, "1", in)
		assert.ErrorIs(t, err, book.ErrReadPageExceedsPageCount)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Delete", ctx, "1").Return(nil)
		s := book.NewService(repo)
		assert.NoError(t, s.Delete(ctx, "1"))
	})
	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Delete", ctx, "1").Return(book.ErrNotFound)
		s := book.NewService(repo)
		assert.ErrorIs(t, s.Delete(ctx, "1"), book.ErrNotFound)
	})
}
