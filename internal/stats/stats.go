// Package stats computes per-configuration solver statistics from a
// result table.
package stats

import (
	"fmt"
	"math"

	"github.com/TommyTokk/parole-bot/internal/table"
	"gonum.org/v1/gonum/floats"
)

// Record holds the statistics of one configuration.
type Record struct {
	MaxIterations int     `json:"max_iterations"`
	TotalAttempts float64 `json:"total_attempts"`
	Failures      float64 `json:"failures"`
	Successes     float64 `json:"successes"`
	WeightedSum   float64 `json:"weighted_sum"`
	AvgAttempts   float64 `json:"avg_attempts"`
	Variance      float64 `json:"variance"`
	// SuccessRate is a percentage in [0, 100].
	SuccessRate float64 `json:"success_rate"`
}

// LabelWarning is raised for every row that has a column whose label is
// neither an attempt count nor a failure label.
type LabelWarning struct {
	MaxIterations int    `json:"max_iterations"`
	Label         string `json:"label"`
}

func (w LabelWarning) String() string {
	return fmt.Sprintf("Could not convert column '%s' to integer", w.Label)
}

// Summary is the result of Compute.
type Summary struct {
	// Records has one entry per row, in row order.
	Records []Record
	// ByIterations maps max_iterations to its record. When several rows
	// share a value the later row wins.
	ByIterations map[int]Record
	// Duplicates lists max_iterations values seen on more than one row,
	// in order of first repetition.
	Duplicates []int
	Warnings   []LabelWarning
}

// Lookup returns the record stored for iters.
func (s *Summary) Lookup(iters int) (Record, bool) {
	r, ok := s.ByIterations[iters]
	return r, ok
}

// Compute derives the statistics of every row of t.
func Compute(t *table.Table) *Summary {
	rows := t.Rows()
	s := &Summary{
		Records:      make([]Record, 0, len(rows)),
		ByIterations: make(map[int]Record, len(rows)),
	}

	failIdx, hasFailure := t.FailureColumn()
	seen := make(map[int]int, len(rows))

	for _, row := range rows {
		rec, warnings := computeRow(t.Columns(), row, failIdx, hasFailure)
		s.Records = append(s.Records, rec)
		s.Warnings = append(s.Warnings, warnings...)

		seen[row.MaxIterations]++
		if seen[row.MaxIterations] == 2 {
			s.Duplicates = append(s.Duplicates, row.MaxIterations)
		}
		s.ByIterations[row.MaxIterations] = rec
	}

	return s
}

func computeRow(cols []table.Column, row table.Row, failIdx int, hasFailure bool) (Record, []LabelWarning) {
	rec := Record{MaxIterations: row.MaxIterations}
	var warnings []LabelWarning

	if len(row.Values) > 0 {
		rec.TotalAttempts = floats.Sum(row.Values)
	}
	if hasFailure {
		rec.Failures = row.Values[failIdx]
	}
	rec.Successes = rec.TotalAttempts - rec.Failures

	for i, c := range cols {
		switch c.Kind {
		case table.KindAttempts:
			rec.WeightedSum += float64(c.Attempts) * row.Values[i]
		case table.KindUnrecognized:
			warnings = append(warnings, LabelWarning{MaxIterations: row.MaxIterations, Label: c.Label})
		}
	}

	if rec.Successes > 0 {
		rec.AvgAttempts = rec.WeightedSum / rec.Successes

		var sq float64
		for i, c := range cols {
			if c.Kind != table.KindAttempts {
				continue
			}
			sq += math.Pow(float64(c.Attempts)-rec.AvgAttempts, 2) * row.Values[i]
		}
		rec.Variance = sq / rec.Successes
	}

	if rec.TotalAttempts > 0 {
		rec.SuccessRate = rec.Successes / rec.TotalAttempts * 100
	}

	return rec, warnings
}
