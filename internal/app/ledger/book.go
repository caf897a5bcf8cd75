package ledger

import "github.com/yigit/schooldesk/internal/app/models"

// Book is a cash book with its current report. It is a value: Append and WithQuery
// return a new Book with the report recomputed, leaving the receiver unchanged.
type Book struct {
	entries []models.LedgerEntry
	query   models.ReportQuery
	report  Report
}

// NewBook builds a book over entries with the given query
func NewBook(entries []models.LedgerEntry, q models.ReportQuery) Book {
	own := append([]models.LedgerEntry(nil), entries...)
	return Book{entries: own, query: q, report: Filter(own, q)}
}

// Append adds an entry saved by the school API
func (b Book) Append(e models.LedgerEntry) Book {
	entries := make([]models.LedgerEntry, len(b.entries), len(b.entries)+1)
	copy(entries, b.entries)
	return NewBook(append(entries, e), b.query)
}

// WithQuery replaces the report query
func (b Book) WithQuery(q models.ReportQuery) Book {
	return Book{entries: b.entries, query: q, report: Filter(b.entries, q)}
}

// Entries returns a copy of every entry in the book
func (b Book) Entries() []models.LedgerEntry {
	return append([]models.LedgerEntry(nil), b.entries...)
}

func (b Book) Query() models.ReportQuery { return b.query }

func (b Book) Report() Report { return b.report }

// Len is the number of entries in the book
func (b Book) Len() int { return len(b.entries) }
