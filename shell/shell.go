// Package shell is the interactive front end of the catalog. It collects
// form fields line by line, rejects malformed input before the catalog sees
// it, and renders outcomes.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"library-catalog/library"
)

const defaultWidth = 80

// Shell reads commands from in and writes everything the user sees to out.
type Shell struct {
	sc  *bufio.Scanner
	out io.Writer
	mgr *library.LibraryManager
	log *zap.Logger

	// Interactive shows the banner and prompts.
	Interactive bool
	// Width is the terminal width used by the table view.
	Width int
}

func New(in io.Reader, out io.Writer, mgr *library.LibraryManager, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{
		sc:    bufio.NewScanner(in),
		out:   out,
		mgr:   mgr,
		log:   log,
		Width: defaultWidth,
	}
}

// Run processes commands until "exit" or end of input.
func (s *Shell) Run() error {
	if s.Interactive {
		s.banner()
	}
	for {
		s.prompt("\n> ")
		if !s.sc.Scan() {
			break
		}
		cmd := strings.ToLower(strings.TrimSpace(s.sc.Text()))

		switch cmd {
		case "":
			continue
		case "add book", "add":
			s.handleAddBook()
		case "issue", "issue book":
			s.handleIssue()
		case "return", "return book":
			s.handleReturn()
		case "list books", "list":
			s.handleListBooks()
		case "display books", "display":
			s.handleDisplayBooks()
		case "help":
			s.help()
		case "exit", "quit":
			s.println("Goodbye!")
			return nil
		default:
			s.println("Unknown command. Type 'help' to see the available commands.")
		}
	}
	return s.sc.Err()
}

func (s *Shell) banner() {
	s.println("Welcome to the Library Management System!")
	s.help()
}

func (s *Shell) help() {
	s.println("Available commands:")
	s.println("  Books: add book, list books, display books")
	s.println("  Circulation: issue, return")
	s.println("  System: help, exit")
}

// readField prompts for one line. ok is false at end of input.
func (s *Shell) readField(label string) (string, bool) {
	s.prompt(label + ": ")
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

func (s *Shell) handleAddBook() {
	idStr, ok := s.readField("Book ID")
	if !ok {
		return
	}
	title, ok := s.readField("Title")
	if !ok {
		return
	}
	author, ok := s.readField("Author")
	if !ok {
		return
	}
	category, ok := s.readField("Category")
	if !ok {
		return
	}

	b, err := library.ParseBook(idStr, title, author, category)
	if err != nil {
		s.showError(err)
		return
	}
	if err := s.mgr.AddBook(b); err != nil {
		s.showError(err)
		return
	}
	s.printf("Success: Book '%s' added successfully.\n", b.Title)
}

func (s *Shell) handleIssue() {
	s.circulate("issue", s.mgr.IssueBook)
}

func (s *Shell) handleReturn() {
	s.circulate("return", s.mgr.ReturnBook)
}

func (s *Shell) circulate(op string, fn func(int64) (library.Result, error)) {
	idStr, ok := s.readField("Book ID")
	if !ok {
		return
	}
	id, err := library.ParseBookID(idStr)
	if err != nil {
		s.showError(err)
		return
	}
	res, err := fn(id)
	if err != nil {
		s.log.Error(op, zap.Int64("id", id), zap.Error(err))
		s.showError(err)
		return
	}
	s.printf("Info: %s\n", res.Message)
}

// handleDisplayBooks prints the summary list, including the placeholder line
// for an empty catalog.
func (s *Shell) handleDisplayBooks() {
	lines, err := s.mgr.DisplayBooks()
	if err != nil {
		s.showError(err)
		return
	}
	for _, line := range lines {
		s.println(line)
	}
}

func (s *Shell) handleListBooks() {
	books, err := s.mgr.GetAllBooks()
	if err != nil {
		s.showError(err)
		return
	}
	if len(books) == 0 {
		s.println("No books in library.")
		return
	}

	titleW, authorW := s.columnWidths()
	s.printf("%-5s %-*s %-*s %-15s %-10s\n", "ID", titleW, "Title", authorW, "Author", "Category", "Available")
	s.println(strings.Repeat("-", 5+1+titleW+1+authorW+1+15+1+10))
	for _, b := range books {
		s.println(library.PrettyBook(b, titleW, authorW))
	}
}

// columnWidths splits the space left after the fixed columns between title
// and author, 3:2.
func (s *Shell) columnWidths() (title, author int) {
	const fixed = 5 + 15 + 10 + 4
	free := s.Width - fixed
	if free < 25 {
		free = 25
	}
	title = free * 3 / 5
	author = free - title - 1
	if title > 50 {
		title = 50
	}
	if author > 30 {
		author = 30
	}
	return title, author
}

// showError renders boundary and store errors as the alert text the user sees.
func (s *Shell) showError(err error) {
	switch {
	case errors.Is(err, library.ErrInvalidID):
		s.println("Error: Invalid Book ID.")
	case errors.Is(err, library.ErrFieldsRequired):
		s.println("Error: All fields are required.")
	default:
		s.printf("Error: %v\n", err)
	}
}

func (s *Shell) prompt(p string) {
	if s.Interactive {
		fmt.Fprint(s.out, p)
	}
}

func (s *Shell) println(a ...any) { fmt.Fprintln(s.out, a...) }

func (s *Shell) printf(format string, a ...any) { fmt.Fprintf(s.out, format, a...) }
