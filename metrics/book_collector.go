package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/bookshelf-api/book"
)

// BookCollector implements the Collector interface on top of any book.Reader
type BookCollector struct {
	reader book.Reader
}

// NewBookCollector creates a new book metrics collector
func NewBookCollector(reader book.Reader) *BookCollector {
	return &BookCollector{
		reader: reader,
	}
}

// Collect gathers all metrics from a single snapshot of the store
func (c *BookCollector) Collect(ctx context.Context) (Metrics, error) {
	all, err := c.reader.SelectAll(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("selecting books: %w", err)
	}

	return Metrics{
		Total:       int64(len(all)),
		StateCounts: stateCounts(all),
		Pages:       pages(all),
		Timestamp:   time.Now(),
	}, nil
}

// GetStateCounts returns counts of books grouped by reading state
func (c *BookCollector) GetStateCounts(ctx context.Context) (map[string]int64, error) {
	all, err := c.reader.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	return stateCounts(all), nil
}

// GetPages returns the page totals of the collection
func (c *BookCollector) GetPages(ctx context.Context) (PageMetrics, error) {
	all, err := c.reader.SelectAll(ctx)
	if err != nil {
		return PageMetrics{}, fmt.Errorf("selecting books: %w", err)
	}
	return pages(all), nil
}

func stateCounts(all []book.Book) map[string]int64 {
	counts := map[string]int64{
		book.Unread.String():     0,
		book.InProgress.String(): 0,
		book.Done.String():       0,
	}
	for _, b := range all {
		counts[b.State().String()]++
	}
	return counts
}

func pages(all []book.Book) PageMetrics {
	var p PageMetrics
	for _, b := range all {
		p.Total += int64(b.PageCount)
		p.Read += int64(b.ReadPage)
	}
	return p
}
