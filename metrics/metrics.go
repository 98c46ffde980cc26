package metrics

import (
	"context"
	"time"
)

// Metrics is a snapshot of the book collection.
type Metrics struct {
	// Total is the number of books in the store
	Total int64 `json:"total"`

	// StateCounts maps reading state (unread, reading, finished) to count of books
	StateCounts map[string]int64 `json:"state_counts"`

	// Pages aggregates page counters over every book
	Pages PageMetrics `json:"pages"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// PageMetrics sums pages across the collection.
type PageMetrics struct {
	// Total is the sum of pageCount
	Total int64 `json:"total"`

	// Read is the sum of readPage
	Read int64 `json:"read"`
}

// Collector defines the interface for collecting metrics from the book store.
type Collector interface {
	// Collect gathers current metrics from the store
	Collect(ctx context.Context) (Metrics, error)

	// GetStateCounts returns the count of books by reading state
	GetStateCounts(ctx context.Context) (map[string]int64, error)

	// GetPages returns page totals
	GetPages(ctx context.Context) (PageMetrics, error)
}
