package library

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func forEachCatalog(t *testing.T, fn func(t *testing.T, c *Catalog)) {
	forEachStore(t, func(t *testing.T, s Store) {
		fn(t, NewCatalog(s, zaptest.NewLogger(t)))
	})
}

func TestCatalogScenario(t *testing.T) {
	forEachCatalog(t, func(t *testing.T, c *Catalog) {
		require.NoError(t, c.Add(1, "Dune", "Herbert", "SciFi"))

		lines, err := c.ListAll()
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "Dune")
		assert.Contains(t, lines[0], "Available: Yes")

		res, err := c.Issue(1)
		require.NoError(t, err)
		assert.True(t, res.OK)
		assert.Equal(t, "Dune", res.Title)
		assert.Equal(t, "Book 'Dune' issued successfully.", res.Message)

		lines, err = c.ListAll()
		require.NoError(t, err)
		assert.Contains(t, lines[0], "Available: No")

		res, err = c.ReturnBook(1)
		require.NoError(t, err)
		assert.True(t, res.OK)
		assert.Equal(t, "Book 'Dune' returned successfully.", res.Message)

		res, err = c.Issue(2)
		require.NoError(t, err)
		assert.False(t, res.OK)
		assert.Equal(t, "Book not available or invalid ID.", res.Message)
	})
}

func TestCatalogEmptyListPlaceholder(t *testing.T) {
	forEachCatalog(t, func(t *testing.T, c *Catalog) {
		lines, err := c.ListAll()
		require.NoError(t, err)
		assert.Equal(t, []string{EmptyPlaceholder}, lines)

		books, err := c.Books()
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestCatalogListOrderMatchesAdds(t *testing.T) {
	forEachCatalog(t, func(t *testing.T, c *Catalog) {
		ids := []int64{5, 3, 9, 3, 1}
		for i, id := range ids {
			require.NoError(t, c.Add(id, fmt.Sprintf("T%d", i), "A", "C"))
		}

		lines, err := c.ListAll()
		require.NoError(t, err)
		require.Len(t, lines, len(ids))
		for i, id := range ids {
			want := Book{ID: id, Title: fmt.Sprintf("T%d", i), Author: "A", Category: "C", Available: true}
			assert.Equal(t, want.Summary(), lines[i])
		}

		n, err := c.Len()
		require.NoError(t, err)
		assert.Equal(t, len(ids), n)
	})
}

func TestCatalogIssueTwice(t *testing.T) {
	forEachCatalog(t, func(t *testing.T, c *Catalog) {
		require.NoError(t, c.Add(4, "Emma", "Austen", "Classic"))

		first, err := c.Issue(4)
		require.NoError(t, err)
		second, err := c.Issue(4)
		require.NoError(t, err)

		assert.True(t, first.OK)
		assert.False(t, second.OK)
		// Wrong state and unknown id read the same.
		unknown, err := c.Issue(404)
		require.NoError(t, err)
		assert.Equal(t, unknown, second)
	})
}

func TestCatalogReturnRestoresAvailability(t *testing.T) {
	forEachCatalog(t, func(t *testing.T, c *Catalog) {
		require.NoError(t, c.Add(1, "Dune", "Herbert", "SciFi"))

		res, err := c.ReturnBook(1)
		require.NoError(t, err)
		assert.False(t, res.OK)
		assert.Equal(t, "Invalid book ID or the book was not issued.", res.Message)

		for i := 0; i < 3; i++ {
			res, err = c.Issue(1)
			require.NoError(t, err)
			require.True(t, res.OK, "issue round %d", i)

			res, err = c.ReturnBook(1)
			require.NoError(t, err)
			require.True(t, res.OK, "return round %d", i)
		}

		books, err := c.Books()
		require.NoError(t, err)
		assert.True(t, books[0].Available)
	})
}

func TestCatalogUnknownIDOnEmpty(t *testing.T) {
	forEachCatalog(t, func(t *testing.T, c *Catalog) {
		res, err := c.Issue(999)
		require.NoError(t, err)
		assert.False(t, res.OK)

		res, err = c.ReturnBook(999)
		require.NoError(t, err)
		assert.False(t, res.OK)
	})
}

func TestCatalogDuplicateIDsActOnFirstMatch(t *testing.T) {
	forEachCatalog(t, func(t *testing.T, c *Catalog) {
		require.NoError(t, c.Add(1, "Copy A", "X", "Y"))
		require.NoError(t, c.Add(1, "Copy B", "X", "Y"))

		res, err := c.Issue(1)
		require.NoError(t, err)
		assert.Equal(t, "Copy A", res.Title)

		res, err = c.Issue(1)
		require.NoError(t, err)
		assert.Equal(t, "Copy B", res.Title)

		res, err = c.Issue(1)
		require.NoError(t, err)
		assert.False(t, res.OK)

		res, err = c.ReturnBook(1)
		require.NoError(t, err)
		assert.Equal(t, "Copy A", res.Title)
	})
}

func TestCatalogConcurrentIssueSucceedsOnce(t *testing.T) {
	forEachCatalog(t, func(t *testing.T, c *Catalog) {
		require.NoError(t, c.Add(1, "Dune", "Herbert", "SciFi"))

		const workers = 16
		var (
			wg sync.WaitGroup
			mu sync.Mutex
			ok int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := c.Issue(1)
				if err != nil || !res.OK {
					return
				}
				mu.Lock()
				ok++
				mu.Unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, ok)
	})
}

func TestBookSummary(t *testing.T) {
	b := Book{ID: 1, Title: "Dune", Author: "Herbert", Category: "SciFi", Available: true}
	assert.Equal(t, "ID: 1, Title: Dune, Author: Herbert, Category: SciFi, Available: Yes", b.Summary())
	b.Available = false
	assert.Equal(t, "ID: 1, Title: Dune, Author: Herbert, Category: SciFi, Available: No", b.Summary())
}
