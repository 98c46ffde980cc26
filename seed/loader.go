package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelsud/bookshelf-api/book"
	"gopkg.in/yaml.v3"
)

/* Loader reads a YAML file of books to preload into the store at startup
 * Books are validated on load and created through the service, so seeding
 * obeys the same rules as the HTTP API.
 */

// Config represents the structure of the seed file
type Config struct {
	Books []BookConfig `yaml:"books"`
}

// BookConfig represents a single book in the YAML file
type BookConfig struct {
	Name      string `yaml:"name"`
	Year      int    `yaml:"year"`
	Author    string `yaml:"author"`
	Summary   string `yaml:"summary"`
	Publisher string `yaml:"publisher"`
	PageCount int    `yaml:"page_count"`
	ReadPage  int    `yaml:"read_page"`
	Reading   bool   `yaml:"reading"`
}

func (bc BookConfig) input() book.Input {
	return book.Input{
		Name:      bc.Name,
		Year:      bc.Year,
		Author:    bc.Author,
		Summary:   bc.Summary,
		Publisher: bc.Publisher,
		PageCount: bc.PageCount,
		ReadPage:  bc.ReadPage,
		Reading:   bc.Reading,
	}
}

// Loader holds the loaded books, in file order
type Loader struct {
	books []book.Input
}

// NewLoader creates a new seed loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the seed file. Nothing is kept if any entry is invalid.
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing seed YAML: %w", err)
	}

	books := make([]book.Input, 0, len(config.Books))
	for i, bc := range config.Books {
		in := bc.input()
		if err := in.Validate(); err != nil {
			return fmt.Errorf("validating book #%d (%q): %w", i+1, bc.Name, err)
		}
		books = append(books, in)
	}

	l.books = books
	return nil
}

// List returns the loaded books
func (l *Loader) List() []book.Input {
	return l.books
}

// Apply creates every loaded book through the service and returns the new ids
func (l *Loader) Apply(ctx context.Context, bookService book.UseCase) ([]string, error) {
	ids := make([]string, 0, len(l.books))
	for _, in := range l.books {
		id, err := bookService.Create(ctx, in)
		if err != nil {
			return ids, fmt.Errorf("creating seed book %q: %w", in.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
