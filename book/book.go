package book

import (
	"strings"
	"time"
)

/* Book is the record as the business sees it, no tags.
 * Uses value semantics: callers always get a copy, never a reference into the store.
 */
type Book struct {
	ID         string
	Name       string
	Year       int
	Author     string
	Summary    string
	Publisher  string
	PageCount  int
	ReadPage   int
	Finished   bool
	Reading    bool
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Summary is the reduced projection returned by List
type Summary struct {
	ID        string
	Name      string
	Publisher string
}

// Summarize projects a book onto its summary
func (b Book) Summarize() Summary {
	return Summary{
		ID:        b.ID,
		Name:      b.Name,
		Publisher: b.Publisher,
	}
}

// Input holds the fields a client may write
type Input struct {
	Name      string
	Year      int
	Author    string
	Summary   string
	Publisher string
	PageCount int
	ReadPage  int
	Reading   bool
}

// Validate applies the two write rules shared by create and update
func (in Input) Validate() error {
	if in.Name == "" {
		return ErrMissingName
	}
	if in.ReadPage > in.PageCount {
		return ErrReadPageExceedsPageCount
	}
	return nil
}

// Finished reports whether the input describes a completely read book
func (in Input) Finished() bool {
	return in.PageCount == in.ReadPage
}

/* apply copies the mutable fields onto b and recomputes the derived ones.
 * ID and InsertedAt are left untouched.
 */
func (in Input) apply(b *Book, now time.Time) {
	b.Name = in.Name
	b.Year = in.Year
	b.Author = in.Author
	b.Summary = in.Summary
	b.Publisher = in.Publisher
	b.PageCount = in.PageCount
	b.ReadPage = in.ReadPage
	b.Reading = in.Reading
	b.Finished = in.Finished()
	b.UpdatedAt = now
}

// Filter narrows List results. A nil field means "don't filter on it".
type Filter struct {
	Name     *string
	Reading  *bool
	Finished *bool
}

// Match reports whether b satisfies every supplied filter
func (f Filter) Match(b Book) bool {
	if f.Name != nil && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(*f.Name)) {
		return false
	}
	if f.Reading != nil && b.Reading != *f.Reading {
		return false
	}
	if f.Finished != nil && b.Finished != *f.Finished {
		return false
	}
	return true
}
