package library

import "fmt"

// Book represents one catalog entry and its current availability.
type Book struct {
	ID        int64  `json:"id" validate:"-"`
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Category  string `json:"category" validate:"required"`
	Available bool   `json:"available"`
}

// Summary formats a book for the display list.
func (b Book) Summary() string {
	return fmt.Sprintf("ID: %d, Title: %s, Author: %s, Category: %s, Available: %s",
		b.ID, b.Title, b.Author, b.Category, yesNo(b.Available))
}

// Result is the outcome of an issue or return. A failed Result is an
// ordinary outcome, not an error.
type Result struct {
	OK      bool   `json:"ok"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

const (
	msgIssued      = "Book '%s' issued successfully."
	msgReturned    = "Book '%s' returned successfully."
	msgNotIssuable = "Book not available or invalid ID."
	msgNotReturned = "Invalid book ID or the book was not issued."

	// EmptyPlaceholder is the single entry ListAll yields for an empty catalog.
	EmptyPlaceholder = "No books available in the library."
)

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
