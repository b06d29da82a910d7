package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/hungarian"
	"github.com/JHertz5/role-assignment/pkg/roles"
)

// run builds, solves and projects a roster the way the pipeline does.
func run(t *testing.T, titles []string, candidates []roles.Candidate, def int) *Report {
	t.Helper()
	groups, err := roles.DetectCloneGroups(titles)
	require.NoError(t, err)
	res, err := cost.Build(groups, candidates, cost.Options{DefaultCost: def})
	require.NoError(t, err)
	a, err := hungarian.SolveMatrix(res.Matrix)
	require.NoError(t, err)
	rep, err := Project(res.Matrix, a, res.RowLabels, res.ColLabels)
	require.NoError(t, err)
	return rep
}

func TestProjectEndToEndSquare(t *testing.T) {
	m, err := cost.FromRows([][]int{{0, 1}, {1, 0}}, 5)
	require.NoError(t, err)
	a, err := hungarian.SolveMatrix(m)
	require.NoError(t, err)

	rep, err := Project(m, a, []string{"A", "B"}, []string{"X", "Y"})
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{Candidate: "A", Cost: 0, Role: "X", Row: 0, Col: 0},
		{Candidate: "B", Cost: 0, Role: "Y", Row: 1, Col: 1},
	}, rep.Records)
	assert.Empty(t, rep.Unmatched)
	assert.Equal(t, Histogram{First: 2}, rep.Histogram)
	assert.Equal(t, 0, rep.TotalCost)
}

func TestProjectEndToEndExtraSlot(t *testing.T) {
	rep := run(t, []string{"X", "Y", "Z"}, []roles.Candidate{
		{Name: "A", Preferences: []string{"X", "Y", "Z"}},
		{Name: "B", Preferences: []string{"Y", "X", "Z"}},
	}, 5)

	require.Len(t, rep.Records, 2)
	assert.Equal(t, []string{"Z"}, rep.Unmatched)
	assert.Empty(t, rep.UnmatchedCandidates)
	assert.Equal(t, 2, rep.Choice(0))
}

func TestProjectCloneSlotsKeepDisplayTitles(t *testing.T) {
	rep := run(t, []string{"Lab (1)", "Lab (2)", "Ops", "Sales"}, []roles.Candidate{
		{Name: "D", Preferences: []string{"Lab (1)", "Ops", "Sales"}},
		{Name: "C", Preferences: []string{"Lab", "Sales", "Ops"}},
	}, 3)

	require.Len(t, rep.Records, 2)
	assert.Equal(t, "C", rep.Records[0].Candidate, "records sorted by name")
	assert.Equal(t, "Lab (2)", rep.Records[0].Role)
	assert.Equal(t, "Lab (1)", rep.Records[1].Role)
	assert.Equal(t, []string{"Ops", "Sales"}, rep.Unmatched)
	assert.Equal(t, 0, rep.TotalCost)
}

func TestProjectMoreCandidatesThanSlots(t *testing.T) {
	m, err := cost.FromRows([][]int{{0}, {1}, {2}}, 3)
	require.NoError(t, err)
	a, err := hungarian.SolveMatrix(m)
	require.NoError(t, err)

	rep, err := Project(m, a, []string{"A", "B", "C"}, []string{"X"})
	require.NoError(t, err)
	require.Len(t, rep.Records, 1)
	assert.Equal(t, "A", rep.Records[0].Candidate)
	assert.Equal(t, []string{"B", "C"}, rep.UnmatchedCandidates)
	assert.Empty(t, rep.Unmatched)
}

func TestProjectHistogram(t *testing.T) {
	m, err := cost.FromRows([][]int{
		{0, 9, 9, 9, 9},
		{9, 1, 9, 9, 9},
		{9, 9, 2, 9, 9},
		{9, 9, 9, 4, 9},
		{9, 9, 9, 9, 7},
	}, 4)
	require.NoError(t, err)
	a := hungarian.Assignment{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}, {Row: 4, Col: 4}}

	rep, err := Project(m, a, []string{"a", "b", "c", "d", "e"}, []string{"1", "2", "3", "4", "5"})
	require.NoError(t, err)
	assert.Equal(t, Histogram{First: 1, Second: 1, Third: 1, Default: 1, Other: 1}, rep.Histogram)
	assert.Equal(t, 5, rep.Histogram.Total())
	assert.Equal(t, 14, rep.TotalCost)
	assert.Equal(t, 0, rep.Choice(3))
}

func TestProjectErrors(t *testing.T) {
	m, err := cost.FromRows([][]int{{0, 1}, {1, 0}}, 3)
	require.NoError(t, err)
	rows := []string{"A", "B"}
	cols := []string{"X", "Y"}

	tests := []struct {
		name string
		a    hungarian.Assignment
		rows []string
		cols []string
		code errors.Code
	}{
		{"row labels", nil, []string{"A"}, cols, errors.ErrCodeDimensionMismatch},
		{"col labels", nil, rows, []string{"X", "Y", "Z"}, errors.ErrCodeDimensionMismatch},
		{"pair out of range", hungarian.Assignment{{Row: 0, Col: 2}}, rows, cols, errors.ErrCodeDimensionMismatch},
		{"column reused", hungarian.Assignment{{Row: 0, Col: 0}, {Row: 1, Col: 0}}, rows, cols, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project(m, tt.a, tt.rows, tt.cols)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}
