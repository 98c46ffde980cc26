package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/bookshelf-api/seed"
)

/* validate-seed - Standalone CLI tool to validate a books seed file
 * Usage: go run cmd/validate-seed/main.go [books.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	seedFile := "books.yaml"
	if len(os.Args) > 1 {
		seedFile = os.Args[1]
	}

	fmt.Printf("Validating seed file: %s\n", seedFile)
	fmt.Println(strings.Repeat("-", 50))

	loader := seed.NewLoader()
	if err := loader.Load(seedFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	books := loader.List()
	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d book(s):\n", len(books))

	for i, b := range books {
		fmt.Printf("\n%d. %s\n", i+1, b.Name)
		if b.Author != "" {
			fmt.Printf("   Author:    %s\n", b.Author)
		}
		if b.Publisher != "" {
			fmt.Printf("   Publisher: %s\n", b.Publisher)
		}
		fmt.Printf("   Progress:  %d/%d pages", b.ReadPage, b.PageCount)
		if b.Finished() {
			fmt.Printf(" (finished)")
		} else if b.Reading {
			fmt.Printf(" (reading)")
		}
		fmt.Println()
	}

	os.Exit(0)
}
