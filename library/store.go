package library

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Store.First when no record matches.
var ErrNotFound = errors.New("book not found")

// Store keeps the ordered sequence of books behind a Catalog. Positions are
// opaque handles returned by First and accepted by SetAvailable.
type Store interface {
	Append(b Book) error
	// First returns the earliest inserted book with the given id and
	// availability.
	First(id int64, available bool) (pos int, b Book, err error)
	SetAvailable(pos int, available bool) error
	All() ([]Book, error)
	Close() error
}

// Store backends accepted by NewStore.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// NewStore opens the named backend.
func NewStore(kind string) (Store, error) {
	switch kind {
	case "", StoreMemory:
		return NewMemoryStore(), nil
	case StoreSQLite:
		return NewSQLiteStore()
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}

// MemoryStore is a slice scanned front to back.
type MemoryStore struct {
	books []Book
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{books: []Book{}}
}

func (s *MemoryStore) Append(b Book) error {
	s.books = append(s.books, b)
	return nil
}

func (s *MemoryStore) First(id int64, available bool) (int, Book, error) {
	for i, b := range s.books {
		if b.ID == id && b.Available == available {
			return i, b, nil
		}
	}
	return -1, Book{}, ErrNotFound
}

func (s *MemoryStore) SetAvailable(pos int, available bool) error {
	if pos < 0 || pos >= len(s.books) {
		return fmt.Errorf("position %d out of range", pos)
	}
	s.books[pos].Available = available
	return nil
}

func (s *MemoryStore) All() ([]Book, error) {
	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
