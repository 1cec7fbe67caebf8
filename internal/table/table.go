// Package table loads solver result tables: one row per iteration-count
// configuration, one column per attempt count.
package table

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/TommyTokk/parole-bot/internal/constants"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmpty is returned when the input has no header row.
	ErrEmpty = errors.New("table is empty")

	// ErrMissingIterations is returned when the header has no max_iterations column.
	ErrMissingIterations = fmt.Errorf("missing %q column", constants.IterationsColumn)
)

// ParseError reports a cell or row that could not be parsed.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %q: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LabelKind classifies an attempt-count column label.
type LabelKind int

const (
	// KindAttempts marks a label that parses as an attempt count.
	KindAttempts LabelKind = iota
	// KindFailure marks a recognized failure label.
	KindFailure
	// KindUnrecognized marks any other label.
	KindUnrecognized
)

func (k LabelKind) String() string {
	switch k {
	case KindAttempts:
		return "attempts"
	case KindFailure:
		return "failure"
	default:
		return "unrecognized"
	}
}

// Column is an attempt-count column. Attempts is only meaningful when
// Kind is KindAttempts.
type Column struct {
	Label    string
	Kind     LabelKind
	Attempts int
}

// ClassifyLabel decides the kind of a column label.
func ClassifyLabel(label string) Column {
	if constants.IsFailureLabel(label) {
		return Column{Label: label, Kind: KindFailure}
	}
	if n, err := strconv.Atoi(label); err == nil {
		return Column{Label: label, Kind: KindAttempts, Attempts: n}
	}
	return Column{Label: label, Kind: KindUnrecognized}
}

// Row is one configuration. Values is aligned with Table.Columns.
type Row struct {
	MaxIterations int
	Values        []float64
}

// Table is a loaded result table.
type Table struct {
	columns []Column
	rows    []Row
}

// New builds a table from column labels and rows. Labels are classified
// with ClassifyLabel.
func New(labels []string, rows []Row) (*Table, error) {
	cols := make([]Column, len(labels))
	for i, l := range labels {
		cols[i] = ClassifyLabel(l)
	}
	for i, r := range rows {
		if len(r.Values) != len(cols) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(r.Values), len(cols))
		}
	}
	return &Table{columns: cols, rows: rows}, nil
}

// Columns returns the attempt-count columns in file order.
func (t *Table) Columns() []Column {
	return t.columns
}

// Labels returns the attempt-count column labels in file order.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.columns))
	for i, c := range t.columns {
		labels[i] = c.Label
	}
	return labels
}

// Rows returns the rows in file order.
func (t *Table) Rows() []Row {
	return t.rows
}

// Shape returns the number of rows and attempt-count columns.
func (t *Table) Shape() (int, int) {
	return len(t.rows), len(t.columns)
}

// FailureColumn returns the index of the failure column. Labels are tried
// in constants.FailureLabels order, so ">6" wins over "6+".
func (t *Table) FailureColumn() (int, bool) {
	for _, label := range constants.FailureLabels {
		for i, c := range t.columns {
			if c.Label == label {
				return i, true
			}
		}
	}
	return 0, false
}

// MaxValue returns the largest single cell across all rows and columns,
// or 0 for an empty table.
func (t *Table) MaxValue() float64 {
	max := 0.0
	for _, r := range t.rows {
		if len(r.Values) == 0 {
			continue
		}
		if m := floats.Max(r.Values); m > max {
			max = m
		}
	}
	return max
}
