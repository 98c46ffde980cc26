package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/config"
	"github.com/marcelsud/bookshelf-api/internal/storage"
)

/*
cli walks through every book operation against the configured store:
create, list, get, update, delete, list again.

  go run cmd/cli/main.go
  STORE_BACKEND=redis go run cmd/cli/main.go
  STORE_BACKEND=postgres POSTGRES_DSN=... go run cmd/cli/main.go
*/

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx := context.Background()
	repo, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Printf("❌ Error opening %s store: %v\n", cfg.StoreBackend, err)
		return
	}
	defer repo.Close(ctx)
	fmt.Printf("✅ Using %s store\n", cfg.StoreBackend)

	s := book.NewService(repo)

	fmt.Println("\n📝 Creating a new book...")
	id, err := s.Create(ctx, book.Input{
		Name:      "The Pragmatic Programmer",
		Year:      1999,
		Author:    "Andy Hunt & Dave Thomas",
		Publisher: "Addison-Wesley",
		PageCount: 352,
		ReadPage:  120,
		Reading:   true,
	})
	if err != nil {
		fmt.Printf("❌ Error creating book: %v\n", err)
		return
	}
	fmt.Printf("✅ Book created: %s\n", id)

	fmt.Println("\n📚 Books in store:")
	printList(ctx, s)

	b, err := s.Get(ctx, id)
	if err != nil {
		fmt.Printf("❌ Error retrieving book: %v\n", err)
		return
	}
	fmt.Printf("\n🔍 Found: %s by %s, %d/%d pages (%s)\n", b.Name, b.Author, b.ReadPage, b.PageCount, b.State())

	fmt.Printf("\n✏️  Finishing book %s...\n", id)
	err = s.Update(ctx, id, book.Input{
		Name:      b.Name,
		Year:      b.Year,
		Author:    b.Author,
		Summary:   b.Summary,
		Publisher: b.Publisher,
		PageCount: b.PageCount,
		ReadPage:  b.PageCount,
	})
	if err != nil {
		fmt.Printf("❌ Error updating book: %v\n", err)
		return
	}
	b, _ = s.Get(ctx, id)
	fmt.Printf("✅ Book updated! State: %s\n", b.State())

	fmt.Printf("\n🗑️  Deleting book %s...\n", id)
	if err := s.Delete(ctx, id); err != nil {
		fmt.Printf("❌ Error deleting book: %v\n", err)
		return
	}
	fmt.Println("✅ Book deleted!")

	fmt.Println("\n📚 Books after deletion:")
	printList(ctx, s)
}

func printList(ctx context.Context, s book.UseCase) {
	seq, err := s.List(ctx, book.Filter{})
	if err != nil {
		fmt.Printf("❌ Error listing books: %v\n", err)
		return
	}
	all := slices.Collect(seq)
	if len(all) == 0 {
		fmt.Println("   (no books)")
		return
	}
	for _, sm := range all {
		fmt.Printf("   [%s] %s (%s)\n", sm.ID, sm.Name, sm.Publisher)
	}
}
