package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/TommyTokk/parole-bot/internal/constants"
)

// CSVConfig controls how a table is read.
type CSVConfig struct {
	Delimiter rune
}

// CSVOption configures ReadCSV and Read.
type CSVOption func(*CSVConfig)

// WithDelimiter sets the field delimiter. The default is ','.
func WithDelimiter(delimiter rune) CSVOption {
	return func(c *CSVConfig) {
		c.Delimiter = delimiter
	}
}

// ReadCSV loads a table from the file at path.
func ReadCSV(path string, options ...CSVOption) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file, options...)
}

// Read loads a table from r. Whitespace around every field is trimmed and
// the header must contain a max_iterations column.
func Read(r io.Reader, options ...CSVOption) (*Table, error) {
	config := &CSVConfig{
		Delimiter: ',',
	}
	for _, option := range options {
		option(config)
	}

	reader := csv.NewReader(r)
	reader.Comma = config.Delimiter
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &ParseError{Line: perr.Line, Err: perr.Err}
		}
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	header := records[0]
	// Spreadsheet exports often start with a UTF-8 byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	iterIdx := -1
	labels := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == constants.IterationsColumn && iterIdx < 0 {
			iterIdx = i
			continue
		}
		labels = append(labels, name)
	}
	if iterIdx < 0 {
		return nil, ErrMissingIterations
	}

	rows := make([]Row, 0, len(records)-1)
	for n, record := range records[1:] {
		line := n + 2
		row := Row{Values: make([]float64, 0, len(labels))}
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if i == iterIdx {
				iters, err := parseIterations(cell)
				if err != nil {
					return nil, &ParseError{Line: line, Column: constants.IterationsColumn, Value: cell, Err: err}
				}
				row.MaxIterations = iters
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Column: strings.TrimSpace(header[i]), Value: cell, Err: unwrapNumError(err)}
			}
			row.Values = append(row.Values, v)
		}
		rows = append(rows, row)
	}

	return New(labels, rows)
}

// intLimit is the smallest float64 above every int value.
const intLimit = -float64(math.MinInt)

// parseIterations accepts integers and integral floats such as "100.0".
// Infinities and values outside the int range fail with strconv.ErrRange.
func parseIterations(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, unwrapNumError(err)
	}
	if math.IsInf(f, 0) || f < math.MinInt || f >= intLimit {
		return 0, strconv.ErrRange
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}

func unwrapNumError(err error) error {
	var nerr *strconv.NumError
	if errors.As(err, &nerr) {
		return nerr.Err
	}
	return err
}
