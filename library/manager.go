package library

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// LibraryManager is a thin façade over the Catalog and its Store, keeping
// CLI code simple.
type LibraryManager struct {
	store   Store
	catalog *Catalog
	log     *zap.Logger
}

// NewLibraryManager opens the named store backend and builds a Catalog on it.
func NewLibraryManager(storeKind string, log *zap.Logger) (*LibraryManager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	store, err := NewStore(storeKind)
	if err != nil {
		return nil, err
	}
	log.Debug("store opened", zap.String("store", storeKind))
	return &LibraryManager{
		store:   store,
		catalog: NewCatalog(store, log.Named("catalog")),
		log:     log,
	}, nil
}

// Close closes the underlying store.
func (lm *LibraryManager) Close() error { return lm.store.Close() }

func (lm *LibraryManager) Catalog() *Catalog { return lm.catalog }

// ------------------ Book helpers ------------------

func (lm *LibraryManager) AddBook(b Book) error {
	return lm.catalog.Add(b.ID, b.Title, b.Author, b.Category)
}

func (lm *LibraryManager) GetAllBooks() ([]Book, error) { return lm.catalog.Books() }

// DisplayBooks returns the summary lines shown by "display books".
func (lm *LibraryManager) DisplayBooks() ([]string, error) { return lm.catalog.ListAll() }

// ------------------ Circulation ------------------

func (lm *LibraryManager) IssueBook(id int64) (Result, error) { return lm.catalog.Issue(id) }

func (lm *LibraryManager) ReturnBook(id int64) (Result, error) { return lm.catalog.ReturnBook(id) }

// ------------------ Seeding ------------------

// SeedFromFile loads the seed file at path into the catalog. Rows that fail
// validation are skipped and reported in the error.
func (lm *LibraryManager) SeedFromFile(path string) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, fmt.Errorf("seed file path cannot be empty")
	}
	records, err := ReadSeedFile(path)
	if err != nil {
		return 0, err
	}
	loaded, err := Seed(lm.catalog, records)
	lm.log.Info("seed loaded",
		zap.String("path", path),
		zap.Int("loaded", loaded),
		zap.Int("rejected", len(records)-loaded))
	return loaded, err
}

// ------------------ Utilities ------------------

// PrettyBook formats a book for table lists.
func PrettyBook(b Book, titleWidth, authorWidth int) string {
	return fmt.Sprintf("%-5d %-*s %-*s %-15s %-10s",
		b.ID,
		titleWidth, TruncateString(b.Title, titleWidth),
		authorWidth, TruncateString(b.Author, authorWidth),
		TruncateString(b.Category, 15),
		yesNo(b.Available))
}

// TruncateString shortens s to maxLen runes, marking the cut with "...".
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
