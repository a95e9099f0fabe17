package library

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// SeedRecord is one raw row of a seed file, before validation.
type SeedRecord struct {
	Line     int    `json:"-"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

var csvHeader = []string{"id", "title", "author", "category"}

// ReadSeedFile decodes the file at path. The format follows the extension:
// .csv or .json.
func ReadSeedFile(path string) ([]SeedRecord, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadSeedCSV(f)
	case ".json":
		return ReadSeedJSON(f)
	default:
		return nil, errors.Errorf("unsupported seed file %q: want .csv or .json", path)
	}
}

// ReadSeedCSV reads rows after an "id,title,author,category" header.
func ReadSeedCSV(r io.Reader) ([]SeedRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []SeedRecord{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}
	for i, name := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return nil, errors.Errorf("csv header column %d: want %q, got %q", i+1, name, header[i])
		}
	}

	records := []SeedRecord{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read csv line %d", line)
		}
		records = append(records, SeedRecord{Line: line, ID: row[0], Title: row[1], Author: row[2], Category: row[3]})
	}
	return records, nil
}

// seedJSON keeps the id as text so it passes the same check as form input.
type seedJSON struct {
	ID       jsoniter.Number `json:"id"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Category string          `json:"category"`
}

// ReadSeedJSON reads an array of book objects. Line holds the 1-based array
// index for error reporting.
func ReadSeedJSON(r io.Reader) ([]SeedRecord, error) {
	var rows []seedJSON
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.Wrap(err, "decode json seed")
	}
	records := make([]SeedRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, SeedRecord{
			Line:     i + 1,
			ID:       row.ID.String(),
			Title:    row.Title,
			Author:   row.Author,
			Category: row.Category,
		})
	}
	return records, nil
}

// Seed validates each record and adds the valid ones to the catalog in
// order. Rejected rows are skipped and reported together in the returned
// error; loaded counts the rows that were added.
func Seed(c *Catalog, records []SeedRecord) (loaded int, err error) {
	for _, rec := range records {
		b, perr := ParseBook(rec.ID, rec.Title, rec.Author, rec.Category)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("record %s: %w", recordRef(rec), perr))
			continue
		}
		if aerr := c.Add(b.ID, b.Title, b.Author, b.Category); aerr != nil {
			return loaded, multierr.Append(err, aerr)
		}
		loaded++
	}
	return loaded, err
}

func recordRef(rec SeedRecord) string {
	if rec.Line > 0 {
		return strconv.Itoa(rec.Line)
	}
	return strconv.Quote(rec.ID)
}
