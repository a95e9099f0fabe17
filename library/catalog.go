package library

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Catalog owns the book collection and its lending-state transitions.
// Each operation holds the lock for its whole scan, so issue and return are
// atomic find-and-flip steps even with concurrent callers.
type Catalog struct {
	mu    sync.Mutex
	store Store
	log   *zap.Logger
}

func NewCatalog(store Store, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{store: store, log: log}
}

// Add appends a new, available book. Duplicate ids are accepted; issue and
// return always act on the first match.
func (c *Catalog) Add(id int64, title, author, category string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := Book{ID: id, Title: title, Author: author, Category: category, Available: true}
	if err := c.store.Append(b); err != nil {
		c.log.Error("add book", zap.Int64("id", id), zap.Error(err))
		return err
	}
	c.log.Debug("book added", zap.Int64("id", id), zap.String("title", title))
	return nil
}

// Issue lends out the first available book with the given id. An unknown id
// and an already issued book produce the same failed Result.
func (c *Catalog) Issue(id int64) (Result, error) {
	return c.transition(id, true, msgIssued, msgNotIssuable)
}

// ReturnBook takes back the first issued book with the given id. An unknown
// id and a book that was never issued produce the same failed Result.
func (c *Catalog) ReturnBook(id int64) (Result, error) {
	return c.transition(id, false, msgReturned, msgNotReturned)
}

func (c *Catalog) transition(id int64, from bool, okMsg, failMsg string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, b, err := c.store.First(id, from)
	if errors.Is(err, ErrNotFound) {
		c.log.Debug("no matching book", zap.Int64("id", id), zap.Bool("available", from))
		return Result{Message: failMsg}, nil
	}
	if err != nil {
		c.log.Error("find book", zap.Int64("id", id), zap.Error(err))
		return Result{}, err
	}
	if err := c.store.SetAvailable(pos, !from); err != nil {
		c.log.Error("set availability", zap.Int64("id", id), zap.Error(err))
		return Result{}, err
	}
	c.log.Debug("availability changed", zap.Int64("id", id), zap.Bool("available", !from))
	return Result{OK: true, Title: b.Title, Message: fmt.Sprintf(okMsg, b.Title)}, nil
}

// ListAll returns display summaries in insertion order. An empty catalog
// yields a single EmptyPlaceholder entry.
func (c *Catalog) ListAll() ([]string, error) {
	books, err := c.Books()
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return []string{EmptyPlaceholder}, nil
	}
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Summary())
	}
	return out, nil
}

// Books returns copies of all records in insertion order.
func (c *Catalog) Books() ([]Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.All()
}

func (c *Catalog) Len() (int, error) {
	books, err := c.Books()
	return len(books), err
}
