package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/roles"
)

func matrix(t *testing.T, def int, rows ...[]int) *cost.Matrix {
	t.Helper()
	m, err := cost.FromRows(rows, def)
	require.NoError(t, err)
	return m
}

func TestValidateClean(t *testing.T) {
	m := matrix(t, 3,
		[]int{0, 1, 2, 3},
		[]int{3, 2, 1, 0},
	)
	ws, err := Validate(m, []string{"A", "B"}, Options{})
	require.NoError(t, err)
	assert.Empty(t, ws)
}

func TestValidateUnexpectedValue(t *testing.T) {
	m := matrix(t, 3, []int{0, 1, 2, 7, 4})
	ws, err := Validate(m, []string{"A"}, Options{})
	require.NoError(t, err)

	require.Len(t, ws, 2)
	assert.Equal(t, Warning{Kind: KindUnexpectedValue, Row: 0, Label: "A", Col: 3, Value: 7}, ws[0])
	assert.Equal(t, Warning{Kind: KindUnexpectedValue, Row: 0, Label: "A", Col: 4, Value: 4}, ws[1])
	assert.Equal(t, "row A contains unexpected value 7", ws[0].String())
}

func TestValidateRankCount(t *testing.T) {
	m := matrix(t, 3,
		[]int{0, 0, 2, 3}, // two 0s, no 1
		[]int{3, 3, 3, 3}, // nothing ranked
	)
	ws, err := Validate(m, []string{"A", "B"}, Options{})
	require.NoError(t, err)

	want := []Warning{
		{Kind: KindRankCount, Row: 0, Label: "A", Col: -1, Value: 0, Count: 2},
		{Kind: KindRankCount, Row: 0, Label: "A", Col: -1, Value: 1, Count: 0},
		{Kind: KindRankCount, Row: 1, Label: "B", Col: -1, Value: 0, Count: 0},
		{Kind: KindRankCount, Row: 1, Label: "B", Col: -1, Value: 1, Count: 0},
		{Kind: KindRankCount, Row: 1, Label: "B", Col: -1, Value: 2, Count: 0},
	}
	assert.Equal(t, want, ws)
	assert.Equal(t, "row A does not contain exactly 1 0", ws[0].String())
}

func TestValidateEnumeratesEverything(t *testing.T) {
	m := matrix(t, 3, []int{9, 9, 9})
	ws, err := Validate(m, []string{"A"}, Options{})
	require.NoError(t, err)
	// three bad cells plus three missing ranks
	assert.Len(t, ws, 6)
}

func TestValidateCloneBroadcast(t *testing.T) {
	groups, err := roles.DetectCloneGroups([]string{"Lab (1)", "Lab (2)", "Ops", "Sales"})
	require.NoError(t, err)
	res, err := cost.Build(groups, []roles.Candidate{
		{Name: "C", Preferences: []string{"Lab", "Ops", "Sales"}},
	}, cost.Options{})
	require.NoError(t, err)

	strict, err := Validate(res.Matrix, res.RowLabels, Options{})
	require.NoError(t, err)
	require.Len(t, strict, 1)
	assert.Equal(t, Warning{Kind: KindRankCount, Row: 0, Label: "C", Col: -1, Value: 0, Count: 2}, strict[0])

	aware, err := Validate(res.Matrix, res.RowLabels, Options{Policy: PolicyCloneAware, Groups: groups})
	require.NoError(t, err)
	assert.Empty(t, aware)
}

func TestValidateCloneAwareStillFlagsAcrossGroups(t *testing.T) {
	groups, err := roles.DetectCloneGroups([]string{"Lab (1)", "Lab (2)", "Ops"})
	require.NoError(t, err)
	m := matrix(t, 3, []int{0, 0, 0})

	ws, err := Validate(m, []string{"C"}, Options{Policy: PolicyCloneAware, Groups: groups})
	require.NoError(t, err)
	require.Len(t, ws, 3)
	assert.Equal(t, 2, ws[0].Count, "Lab and Ops are different roles")
	assert.Equal(t, 1, ws[1].Value)
	assert.Equal(t, 2, ws[2].Value)
}

func TestValidateErrors(t *testing.T) {
	m := matrix(t, 3, []int{0, 1, 2})
	groups, err := roles.DetectCloneGroups([]string{"X", "Y"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		labels []string
		opts   Options
		code   errors.Code
	}{
		{"too few labels", nil, Options{}, errors.ErrCodeDimensionMismatch},
		{"too many labels", []string{"A", "B"}, Options{}, errors.ErrCodeDimensionMismatch},
		{"clone-aware without groups", []string{"A"}, Options{Policy: PolicyCloneAware}, errors.ErrCodeInvalidInput},
		{"groups of wrong width", []string{"A"}, Options{Policy: PolicyCloneAware, Groups: groups}, errors.ErrCodeDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(m, tt.labels, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestKindAndPolicyString(t *testing.T) {
	assert.Equal(t, "unexpected-value", KindUnexpectedValue.String())
	assert.Equal(t, "rank-count", KindRankCount.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Equal(t, "strict", PolicyStrict.String())
	assert.Equal(t, "clone-aware", PolicyCloneAware.String())
}
