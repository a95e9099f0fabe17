package library

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Boundary errors for malformed form input.
var (
	ErrInvalidID      = errors.New("invalid book id")
	ErrFieldsRequired = errors.New("all fields are required")
)

var validate = validator.New()

// ParseBookID converts a user-supplied id field to an integer.
func ParseBookID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ParseBook checks raw form fields and builds an available Book from them.
// The id is checked first, as the add form does.
func ParseBook(idField, title, author, category string) (Book, error) {
	id, err := ParseBookID(idField)
	if err != nil {
		return Book{}, err
	}
	b := Book{
		ID:        id,
		Title:     strings.TrimSpace(title),
		Author:    strings.TrimSpace(author),
		Category:  strings.TrimSpace(category),
		Available: true,
	}
	if err := validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return Book{}, ErrFieldsRequired
		}
		return Book{}, err
	}
	return b, nil
}
