// Package project turns solver output back into labelled assignment records.
package project

import (
	"cmp"
	"slices"

	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/hungarian"
)

// Record is one candidate and the slot they were given.
type Record struct {
	Candidate string `json:"candidate"`
	Cost      int    `json:"cost"`
	Role      string `json:"role"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
}

// Histogram counts assignments by cost.
type Histogram struct {
	First   int `json:"first"`   // cost 0
	Second  int `json:"second"`  // cost 1
	Third   int `json:"third"`   // cost 2
	Default int `json:"default"` // the matrix default cost
	Other   int `json:"other"`   // anything else
}

// Total returns the number of counted assignments.
func (h Histogram) Total() int {
	return h.First + h.Second + h.Third + h.Default + h.Other
}

func (h *Histogram) add(c, def int) {
	switch {
	case c == def:
		h.Default++
	case c == 0:
		h.First++
	case c == 1:
		h.Second++
	case c == 2:
		h.Third++
	default:
		h.Other++
	}
}

// Report is the labelled result of one solve.
type Report struct {
	// Records holds one entry per matched candidate, sorted by name.
	Records []Record `json:"records"`
	// Unmatched lists the display titles of slots nobody was given, in
	// column order.
	Unmatched []string `json:"unmatched"`
	// UnmatchedCandidates lists candidates left without a slot, in row
	// order. It is only non-empty when there are more candidates than slots.
	UnmatchedCandidates []string  `json:"unmatched_candidates,omitempty"`
	Histogram           Histogram `json:"histogram"`
	TotalCost           int       `json:"total_cost"`
}

// Project labels the pairs of a over m.
//
// rowLabels and colLabels must match the matrix dimensions, and every pair
// must lie inside the matrix with no row or column repeated; otherwise
// Project fails with ErrCodeDimensionMismatch or ErrCodeInvalidInput.
func Project(m *cost.Matrix, a hungarian.Assignment, rowLabels, colLabels []string) (*Report, error) {
	if len(rowLabels) != m.Rows() {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"%d row labels for %d matrix rows", len(rowLabels), m.Rows())
	}
	if len(colLabels) != m.Cols() {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"%d column labels for %d matrix columns", len(colLabels), m.Cols())
	}

	rowUsed := make([]bool, m.Rows())
	colUsed := make([]bool, m.Cols())
	report := &Report{
		Records:   make([]Record, 0, len(a)),
		Unmatched: []string{},
	}

	for _, p := range a {
		if p.Row < 0 || p.Row >= m.Rows() || p.Col < 0 || p.Col >= m.Cols() {
			return nil, errors.New(errors.ErrCodeDimensionMismatch,
				"pair (%d, %d) outside %dx%d matrix", p.Row, p.Col, m.Rows(), m.Cols())
		}
		if rowUsed[p.Row] || colUsed[p.Col] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "pair (%d, %d) reuses a row or column", p.Row, p.Col)
		}
		rowUsed[p.Row] = true
		colUsed[p.Col] = true

		c := m.At(p.Row, p.Col)
		report.Records = append(report.Records, Record{
			Candidate: rowLabels[p.Row],
			Cost:      c,
			Role:      colLabels[p.Col],
			Row:       p.Row,
			Col:       p.Col,
		})
		report.Histogram.add(c, m.Default())
		report.TotalCost += c
	}

	slices.SortStableFunc(report.Records, func(x, y Record) int {
		return cmp.Compare(x.Candidate, y.Candidate)
	})
	for j, used := range colUsed {
		if !used {
			report.Unmatched = append(report.Unmatched, colLabels[j])
		}
	}
	for i, used := range rowUsed {
		if !used {
			report.UnmatchedCandidates = append(report.UnmatchedCandidates, rowLabels[i])
		}
	}
	return report, nil
}

// Choice returns how many candidates got the given rank, 0 being the first
// choice. Ranks outside 0..2 return 0.
func (r *Report) Choice(rank int) int {
	switch rank {
	case 0:
		return r.Histogram.First
	case 1:
		return r.Histogram.Second
	case 2:
		return r.Histogram.Third
	}
	return 0
}
