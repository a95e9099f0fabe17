package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

func newManager(t *testing.T, kind string) *LibraryManager {
	mgr, err := NewLibraryManager(kind, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestSeedFromCSV(t *testing.T) {
	path := writeFile(t, "books.csv", `id,title,author,category
1,Dune,Frank Herbert,SciFi
2,"Good Omens, Revised",Pratchett,Fantasy
`)
	for _, kind := range []string{StoreMemory, StoreSQLite} {
		t.Run(kind, func(t *testing.T) {
			mgr := newManager(t, kind)
			loaded, err := mgr.SeedFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, 2, loaded)

			books, err := mgr.GetAllBooks()
			require.NoError(t, err)
			require.Len(t, books, 2)
			assert.Equal(t, "Good Omens, Revised", books[1].Title)
			assert.True(t, books[1].Available)
		})
	}
}

func TestSeedFromJSON(t *testing.T) {
	path := writeFile(t, "books.json", `[
  {"id": 10, "title": "Emma", "author": "Austen", "category": "Classic"},
  {"id": 11, "title": "", "author": "Nobody", "category": "Void"},
  {"title": "No id", "author": "Anon", "category": "Misc"},
  {"id": 12, "title": "Ulysses", "author": "Joyce", "category": "Modernist"}
]`)
	mgr := newManager(t, StoreMemory)

	loaded, err := mgr.SeedFromFile(path)
	assert.Equal(t, 2, loaded)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrFieldsRequired)
	assert.ErrorIs(t, errs[1], ErrInvalidID)

	lines, err := mgr.DisplayBooks()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID: 10, Title: Emma"))
	assert.True(t, strings.HasPrefix(lines[1], "ID: 12, Title: Ulysses"))
}

func TestSeedRejectsBadRowsButKeepsOthers(t *testing.T) {
	records, err := ReadSeedCSV(strings.NewReader("id,title,author,category\nx,T,A,C\n3,T,A,C\n"))
	require.NoError(t, err)

	c := NewCatalog(NewMemoryStore(), nil)
	loaded, err := Seed(c, records)
	assert.Equal(t, 1, loaded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 2")
}

func TestReadSeedCSVHeader(t *testing.T) {
	_, err := ReadSeedCSV(strings.NewReader("id,name,author,category\n1,T,A,C\n"))
	assert.Error(t, err)

	records, err := ReadSeedCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSeedFromFileErrors(t *testing.T) {
	mgr := newManager(t, StoreMemory)

	_, err := mgr.SeedFromFile("")
	assert.Error(t, err)

	_, err = mgr.SeedFromFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = mgr.SeedFromFile(writeFile(t, "books.yaml", "- id: 1\n"))
	assert.Error(t, err)
}

func TestManagerCirculation(t *testing.T) {
	mgr := newManager(t, StoreSQLite)
	require.NoError(t, mgr.AddBook(Book{ID: 1, Title: "Dune", Author: "Herbert", Category: "SciFi"}))

	res, err := mgr.IssueBook(1)
	require.NoError(t, err)
	assert.True(t, res.OK)

	res, err = mgr.ReturnBook(1)
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcd...", TruncateString("abcdefghij", 7))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "Приве...", TruncateString("Привет, мир", 8))
}
