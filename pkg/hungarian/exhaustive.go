package hungarian

import (
	"slices"

	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/perm"
)

// MaxExhaustive is the largest row or column count [Exhaustive] accepts.
// At 8 it scores at most 8! = 40320 mappings.
const MaxExhaustive = 8

// Exhaustive finds a minimum-cost assignment by scoring every injective
// mapping of the smaller dimension into the larger one. It is exponential and
// refuses matrices with more than MaxExhaustive rows or columns; it exists as
// an independent check on [Solve].
//
// Among equal-cost mappings the lexicographically first is returned.
func Exhaustive(costs [][]int) (Assignment, int, error) {
	rows, cols, err := checkInts(costs)
	if err != nil {
		return nil, 0, err
	}
	if rows == 0 || cols == 0 {
		return Assignment{}, 0, nil
	}
	if max(rows, cols) > MaxExhaustive {
		return nil, 0, errors.New(errors.ErrCodeUnsupported,
			"exhaustive search limited to %d rows and columns, got %dx%d", MaxExhaustive, rows, cols)
	}

	transposed := rows > cols
	small, large := rows, cols
	if transposed {
		small, large = cols, rows
	}
	cell := func(s, l int) int {
		if transposed {
			return costs[l][s]
		}
		return costs[s][l]
	}

	best := -1
	var bestMap []int
	perm.Partial(large, small, func(m []int) bool {
		total := 0
		for s, l := range m {
			total += cell(s, l)
		}
		if best < 0 || total < best {
			best = total
			bestMap = append(bestMap[:0], m...)
		}
		return true
	})

	out := make(Assignment, small)
	for s, l := range bestMap {
		if transposed {
			out[s] = Pair{Row: l, Col: s}
		} else {
			out[s] = Pair{Row: s, Col: l}
		}
	}
	slices.SortFunc(out, func(a, b Pair) int { return a.Row - b.Row })
	return out, best, nil
}
