// Package hungarian solves the minimum-cost assignment problem with the
// Hungarian (Kuhn–Munkres) algorithm.
//
// Given an r × c matrix of non-negative integer costs, [Solve] returns a
// matching that pairs min(r, c) rows with distinct columns and minimizes the
// sum of the selected cells. When r <= c every row is matched; when r > c
// every column is.
//
// # Algorithm
//
// The solver works on the matrix as n × m with n <= m, transposing it when
// there are more rows than columns; no dummy rows or columns are added. Rows
// are inserted one at a time; for each, a Dijkstra-like search over reduced
// costs c[i][j] - u[i] - v[j] finds the shortest augmenting path from the new
// row to a free column, and the dual potentials u, v are updated so that
// every edge on the matching stays tight. The whole solve is O(n²m), so a
// single row against thousands of columns stays linear in the columns.
//
// The search visits columns in index order and breaks ties towards the lower
// index, so identical input always yields the identical assignment.
package hungarian

import (
	"context"
	"math"
	"slices"

	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/errors"
)

// MaxCost is the largest cell value accepted. It keeps the potentials and
// path lengths of any matrix a few hundred rows wide well inside int64.
const MaxCost = math.MaxInt32

// Pair is one matched (row, column) cell.
type Pair struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Assignment is a set of matched pairs ordered by row.
type Assignment []Pair

// Total returns the summed cost of the assignment over costs.
func (a Assignment) Total(costs [][]int) int {
	total := 0
	for _, p := range a {
		total += costs[p.Row][p.Col]
	}
	return total
}

// RowToCol returns the assignment as a map from row to column.
func (a Assignment) RowToCol() map[int]int {
	out := make(map[int]int, len(a))
	for _, p := range a {
		out[p.Row] = p.Col
	}
	return out
}

// Cols returns the assigned column indices in row order.
func (a Assignment) Cols() []int {
	out := make([]int, len(a))
	for i, p := range a {
		out[i] = p.Col
	}
	return out
}

// Solve returns a minimum-cost assignment for costs.
//
// An empty matrix (no rows, or rows with no columns) yields an empty
// assignment. Ragged rows fail with ErrCodeDimensionMismatch; a negative
// cell or one above MaxCost fails with *errors.InvalidCostError.
func Solve(costs [][]int) (Assignment, error) {
	return SolveContext(context.Background(), costs)
}

// SolveContext is Solve with cancellation. ctx is checked before each row
// insertion; once it is done the solve stops and returns ctx.Err().
func SolveContext(ctx context.Context, costs [][]int) (Assignment, error) {
	rows, cols, err := checkInts(costs)
	if err != nil {
		return nil, err
	}
	if rows == 0 || cols == 0 {
		return Assignment{}, nil
	}
	return solve(ctx, costs, rows, cols)
}

func checkInts(costs [][]int) (rows, cols int, err error) {
	rows = len(costs)
	if rows == 0 {
		return 0, 0, nil
	}
	cols = len(costs[0])
	for i, row := range costs {
		if len(row) != cols {
			return 0, 0, errors.New(errors.ErrCodeDimensionMismatch, "cost row %d has %d columns, want %d", i, len(row), cols)
		}
		for j, v := range row {
			switch {
			case v < 0:
				return 0, 0, &errors.InvalidCostError{Row: i, Col: j, Value: float64(v), Reason: "negative"}
			case v > MaxCost:
				return 0, 0, &errors.InvalidCostError{Row: i, Col: j, Value: float64(v), Reason: "exceeds maximum cost"}
			}
		}
	}
	return rows, cols, nil
}

// solve runs the shortest augmenting path variant of Kuhn–Munkres over an
// n × m view with n <= m, transposing costs when it has more rows than
// columns. Arrays are 1-indexed; index 0 of the column arrays is a virtual
// column that holds the row currently being inserted.
func solve(ctx context.Context, costs [][]int, rows, cols int) (Assignment, error) {
	const inf = math.MaxInt64 / 4

	transposed := rows > cols
	n, m := rows, cols
	at := func(i, j int) int64 { return int64(costs[i-1][j-1]) }
	if transposed {
		n, m = cols, rows
		at = func(i, j int) int64 { return int64(costs[j-1][i-1]) }
	}

	u := make([]int64, n+1) // row potentials
	v := make([]int64, m+1) // column potentials
	p := make([]int, m+1)   // p[j] = row matched to column j, 0 if free
	way := make([]int, m+1) // way[j] = previous column on the shortest path to j
	minv := make([]int64, m+1)
	used := make([]bool, m+1)

	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p[0] = i
		j0 := 0
		for j := 0; j <= m; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := int64(inf)
			j1 := 0

			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				if cur := at(i0, j) - u[i0] - v[j]; cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Flip the alternating path back to the virtual column.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	out := make(Assignment, 0, n)
	for j := 1; j <= m; j++ {
		i := p[j]
		if i == 0 {
			continue
		}
		if transposed {
			out = append(out, Pair{Row: j - 1, Col: i - 1})
		} else {
			out = append(out, Pair{Row: i - 1, Col: j - 1})
		}
	}
	slices.SortFunc(out, func(a, b Pair) int { return a.Row - b.Row })
	return out, nil
}

// SolveFloat solves a matrix of float costs that must all be finite,
// non-negative integers. It exists for callers whose tables arrive as
// floating point; any NaN, ±Inf, negative or fractional cell fails with
// *errors.InvalidCostError.
func SolveFloat(costs [][]float64) (Assignment, error) {
	ints := make([][]int, len(costs))
	for i, row := range costs {
		ints[i] = make([]int, len(row))
		for j, f := range row {
			switch {
			case math.IsNaN(f) || math.IsInf(f, 0):
				return nil, &errors.InvalidCostError{Row: i, Col: j, Value: f, Reason: "not finite"}
			case f < 0:
				return nil, &errors.InvalidCostError{Row: i, Col: j, Value: f, Reason: "negative"}
			case f != math.Trunc(f):
				return nil, &errors.InvalidCostError{Row: i, Col: j, Value: f, Reason: "not an integer"}
			case f > MaxCost:
				return nil, &errors.InvalidCostError{Row: i, Col: j, Value: f, Reason: "exceeds maximum cost"}
			}
			ints[i][j] = int(f)
		}
	}
	return Solve(ints)
}

// SolveMatrix solves a cost matrix built by package cost.
func SolveMatrix(m *cost.Matrix) (Assignment, error) {
	return Solve(m.Ints())
}

// SolveMatrixContext is SolveMatrix with cancellation.
func SolveMatrixContext(ctx context.Context, m *cost.Matrix) (Assignment, error) {
	return SolveContext(ctx, m.Ints())
}
