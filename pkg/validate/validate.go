// Package validate checks a cost matrix for anomalies before it is solved.
//
// Validation is advisory. [Validate] returns every anomaly it finds as a
// [Warning] and only fails when the inputs cannot be checked at all; the
// caller decides whether to report, log or ignore the warnings.
//
// Two rules are applied to every row:
//
//   - each cell holds 0, 1, 2 or the matrix default cost;
//   - each of the ranks 0, 1 and 2 occurs exactly once.
//
// How the second rule counts is controlled by [Policy].
package validate

import (
	"fmt"

	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/roles"
)

// Kind identifies the rule a warning violates.
type Kind int

const (
	// KindUnexpectedValue marks a cell outside {0, 1, 2, default}.
	KindUnexpectedValue Kind = iota + 1
	// KindRankCount marks a rank that does not occur exactly once in a row.
	KindRankCount
)

func (k Kind) String() string {
	switch k {
	case KindUnexpectedValue:
		return "unexpected-value"
	case KindRankCount:
		return "rank-count"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Policy selects how rank occurrences are counted.
type Policy int

const (
	// PolicyStrict counts raw cell occurrences. A candidate who ranks a clone
	// group is warned about, since the rank lands in several slots.
	PolicyStrict Policy = iota
	// PolicyCloneAware counts a rank once per clone group, so broadcasting a
	// rank across one group's slots is not an anomaly.
	PolicyCloneAware
)

func (p Policy) String() string {
	if p == PolicyCloneAware {
		return "clone-aware"
	}
	return "strict"
}

// Options configures [Validate].
type Options struct {
	Policy Policy
	// Groups is required by PolicyCloneAware and must describe the matrix
	// columns.
	Groups *roles.CloneGroups
}

// Warning is one anomaly found in one row.
type Warning struct {
	Kind  Kind   `json:"kind"`
	Row   int    `json:"row"`
	Label string `json:"label"`
	// Col is the offending column for KindUnexpectedValue, -1 otherwise.
	Col int `json:"col"`
	// Value is the offending cell for KindUnexpectedValue and the rank for
	// KindRankCount.
	Value int `json:"value"`
	// Count is how often the rank occurred. Zero for KindUnexpectedValue.
	Count int `json:"count"`
}

func (w Warning) String() string {
	if w.Kind == KindUnexpectedValue {
		return fmt.Sprintf("row %s contains unexpected value %d", w.Label, w.Value)
	}
	return fmt.Sprintf("row %s does not contain exactly 1 %d", w.Label, w.Value)
}

// Validate checks every row of m and returns all warnings in row order.
// Within a row, unexpected values come first in column order, followed by
// rank counts for 0, 1 and 2.
//
// It fails with ErrCodeDimensionMismatch when rowLabels does not match the
// row count or Groups does not match the column count, and with
// ErrCodeInvalidInput when PolicyCloneAware is requested without Groups.
func Validate(m *cost.Matrix, rowLabels []string, opts Options) ([]Warning, error) {
	if len(rowLabels) != m.Rows() {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"%d row labels for %d matrix rows", len(rowLabels), m.Rows())
	}
	if opts.Policy == PolicyCloneAware {
		if opts.Groups == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "clone-aware validation needs clone groups")
		}
	}
	if opts.Groups != nil && opts.Groups.Len() != m.Cols() {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"%d slots for %d matrix columns", opts.Groups.Len(), m.Cols())
	}

	var warnings []Warning
	for i := range m.Rows() {
		row := m.Row(i)
		warnings = append(warnings, checkValues(i, rowLabels[i], row, m.Default())...)
		warnings = append(warnings, checkRanks(i, rowLabels[i], row, opts)...)
	}
	return warnings, nil
}

func checkValues(i int, label string, row []int, def int) []Warning {
	var out []Warning
	for j, v := range row {
		if v == def || (v >= 0 && v < roles.Ranks) {
			continue
		}
		out = append(out, Warning{Kind: KindUnexpectedValue, Row: i, Label: label, Col: j, Value: v})
	}
	return out
}

func checkRanks(i int, label string, row []int, opts Options) []Warning {
	var counts [roles.Ranks]int
	if opts.Policy == PolicyCloneAware {
		seen := make(map[[2]int]bool)
		for j, v := range row {
			if v < 0 || v >= roles.Ranks {
				continue
			}
			key := [2]int{v, opts.Groups.GroupOf(j)}
			if !seen[key] {
				seen[key] = true
				counts[v]++
			}
		}
	} else {
		for _, v := range row {
			if v >= 0 && v < roles.Ranks {
				counts[v]++
			}
		}
	}

	var out []Warning
	for rank, n := range counts {
		if n != 1 {
			out = append(out, Warning{Kind: KindRankCount, Row: i, Label: label, Col: -1, Value: rank, Count: n})
		}
	}
	return out
}
