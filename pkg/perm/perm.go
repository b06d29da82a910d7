// Package perm builds index sequences and enumerates partial permutations
// of index sets.
//
// It exists to back exhaustive checks of assignment results: for small
// matrices every injective row-to-column mapping can be listed and scored,
// which gives an independent oracle for the Hungarian solver. The enumeration
// grows factorially, so callers must bound n themselves.
package perm

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Partial calls visit once for every injective mapping of k positions into
// the values [0, n). The slice passed to visit has length k, where element i
// is the value chosen for position i; it is reused between calls and must be
// copied if retained. Mappings are produced in lexicographic order.
//
// If visit returns false the enumeration stops early. Nothing is visited when
// k > n; exactly one empty mapping is visited when k == 0.
func Partial(n, k int, visit func([]int) bool) {
	if k < 0 || k > n {
		return
	}
	chosen := make([]int, 0, k)
	used := make([]bool, n)

	var walk func() bool
	walk = func() bool {
		if len(chosen) == k {
			return visit(chosen)
		}
		for v := 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			chosen = append(chosen, v)
			if !walk() {
				return false
			}
			chosen = chosen[:len(chosen)-1]
			used[v] = false
		}
		return true
	}
	walk()
}
