// Package cost turns ranked preferences into the dense cost matrix consumed
// by the assignment solver.
//
// Rows are candidates and columns are role slots. Cell [i][j] holds the rank
// (0, 1 or 2) at which candidate i listed the role owning slot j, or the
// configured default cost when the candidate expressed no preference for it.
// A candidate ranking a clone-group role is treated as ranking every slot of
// the group at that rank.
package cost

import (
	"slices"

	"github.com/JHertz5/role-assignment/pkg/errors"
)

// DefaultCost is the cost of an unranked slot when none is configured.
// It sits above every rank so that any stated preference is cheaper.
const DefaultCost = 3

// Matrix is a dense, read-only rows × cols grid of non-negative costs.
type Matrix struct {
	rows, cols int
	def        int
	cells      []int
}

// NewMatrix returns a rows × cols matrix with every cell set to def.
func NewMatrix(rows, cols, def int) *Matrix {
	return newFilled(rows, cols, def)
}

func newFilled(rows, cols, def int) *Matrix {
	cells := make([]int, rows*cols)
	for i := range cells {
		cells[i] = def
	}
	return &Matrix{rows: rows, cols: cols, def: def, cells: cells}
}

// FromRows builds a Matrix from row slices, copying the data. def records the
// default cost the rows were written with; it is not applied to any cell.
// Ragged input fails with ErrCodeDimensionMismatch.
func FromRows(rows [][]int, def int) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := &Matrix{rows: len(rows), cols: cols, def: def, cells: make([]int, 0, len(rows)*cols)}
	for i, r := range rows {
		if len(r) != cols {
			return nil, errors.New(errors.ErrCodeDimensionMismatch, "row %d has %d columns, want %d", i, len(r), cols)
		}
		m.cells = append(m.cells, r...)
	}
	return m, nil
}

// Rows returns the number of rows (candidates).
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns (slots).
func (m *Matrix) Cols() int { return m.cols }

// Default returns the cost used for unranked cells.
func (m *Matrix) Default() int { return m.def }

// At returns the cost at row i, column j.
func (m *Matrix) At(i, j int) int {
	return m.cells[i*m.cols+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []int {
	return slices.Clone(m.cells[i*m.cols : (i+1)*m.cols])
}

// Ints returns the matrix as freshly allocated row slices.
func (m *Matrix) Ints() [][]int {
	out := make([][]int, m.rows)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// Permute returns a new matrix whose row k is row order[k] of m.
// order must be a permutation of [0, Rows()).
func (m *Matrix) Permute(order []int) *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, def: m.def, cells: make([]int, 0, len(m.cells))}
	for _, src := range order {
		out.cells = append(out.cells, m.cells[src*m.cols:(src+1)*m.cols]...)
	}
	return out
}

func (m *Matrix) set(i, j, v int) {
	m.cells[i*m.cols+j] = v
}
