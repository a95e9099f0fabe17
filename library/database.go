package library

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// SQLiteStore keeps the catalog in a private in-memory SQLite database.
// Nothing is written to disk; the data lives as long as the store is open.
type SQLiteStore struct {
	db *sql.DB

	appendStmt *sql.Stmt
	firstStmt  *sql.Stmt
}

// NewSQLiteStore opens the in-memory database, applies the schema, and
// prepares common statements.
func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.prepareStatements(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close releases prepared statements and closes the DB.
func (s *SQLiteStore) Close() error {
	if s.appendStmt != nil {
		s.appendStmt.Close()
	}
	if s.firstStmt != nil {
		s.firstStmt.Close()
	}
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return errors.Wrap(err, "create meta")
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// seq carries insertion order; id is the caller's book id and may repeat.
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id INTEGER NOT NULL,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            category TEXT NOT NULL,
            available BOOLEAN NOT NULL DEFAULT 1
        );`,
		`CREATE INDEX IF NOT EXISTS idx_books_id ON books(id, available);`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return errors.Wrap(err, "apply migration")
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return errors.Wrap(err, "record schema version")
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (s *SQLiteStore) prepareStatements() error {
	var err error
	if s.appendStmt, err = s.db.Prepare(`INSERT INTO books(id,title,author,category,available) VALUES(?,?,?,?,?)`); err != nil {
		return errors.Wrap(err, "prepare append")
	}
	if s.firstStmt, err = s.db.Prepare(`SELECT seq,id,title,author,category,available FROM books
        WHERE id=? AND available=? ORDER BY seq LIMIT 1`); err != nil {
		return errors.Wrap(err, "prepare first")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Store methods
// ---------------------------------------------------------------------------

func (s *SQLiteStore) Append(b Book) error {
	if _, err := s.appendStmt.Exec(b.ID, b.Title, b.Author, b.Category, b.Available); err != nil {
		return errors.Wrapf(err, "insert book %d", b.ID)
	}
	return nil
}

func (s *SQLiteStore) First(id int64, available bool) (int, Book, error) {
	var (
		seq int
		b   Book
	)
	err := s.firstStmt.QueryRow(id, available).
		Scan(&seq, &b.ID, &b.Title, &b.Author, &b.Category, &b.Available)
	if err == sql.ErrNoRows {
		return -1, Book{}, ErrNotFound
	}
	if err != nil {
		return -1, Book{}, errors.Wrapf(err, "find book %d", id)
	}
	return seq, b, nil
}

func (s *SQLiteStore) SetAvailable(pos int, available bool) error {
	res, err := s.db.Exec(`UPDATE books SET available=? WHERE seq=?`, available, pos)
	if err != nil {
		return errors.Wrapf(err, "update position %d", pos)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Errorf("position %d out of range", pos)
	}
	return nil
}

// All returns every book ordered by insertion.
func (s *SQLiteStore) All() ([]Book, error) {
	rows, err := s.db.Query(`SELECT id,title,author,category,available FROM books ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Available); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
