package tableio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/project"
	"github.com/JHertz5/role-assignment/pkg/roles"
)

const sampleTable = `Roles,Lab (1),Lab (2),Ops,Sales,,
Name,1st,2nd,3rd
Alice, Ops ,Lab,Sales
Bob,Lab (2),Sales,Ops,,

Cara,Sales,Ops,Lab
`

func TestReadTable(t *testing.T) {
	roster, err := ReadTable(strings.NewReader(sampleTable))
	require.NoError(t, err)

	assert.Equal(t, []string{"Lab (1)", "Lab (2)", "Ops", "Sales"}, roster.Roles)
	assert.Equal(t, []roles.Candidate{
		{Name: "Alice", Preferences: []string{"Ops", "Lab", "Sales"}},
		{Name: "Bob", Preferences: []string{"Lab (2)", "Sales", "Ops"}},
		{Name: "Cara", Preferences: []string{"Sales", "Ops", "Lab"}},
	}, roster.Candidates)
}

func TestReadTableWithoutNameHeader(t *testing.T) {
	roster, err := ReadTable(strings.NewReader("roles,X,Y,Z\nA,X,Y,Z\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, roster.Names())
}

func TestReadTableErrors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":        "",
		"no roles row": "Name,1st,2nd,3rd\nA,X,Y,Z\n",
		"bad quoting":  "Roles,\"X\nA,X",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
		})
	}
}

func TestWriteTableReadsBack(t *testing.T) {
	roster := roles.Roster{
		Roles:      []string{"X", "Y, Z", "W"},
		Candidates: []roles.Candidate{{Name: "A", Preferences: []string{"X", "Y, Z", "W"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, roster))

	got, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, roster, got)
}

func TestReadTableFileNotFound(t *testing.T) {
	_, err := ReadTableFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestWriteMatrix(t *testing.T) {
	m, err := cost.FromRows([][]int{{1, 1, 0, 2}, {3, 0, 2, 1}}, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m, []string{"Alice", "Bob"}, []string{"Lab (1)", "Lab (2)", "Ops", "Sales"}))
	assert.Equal(t, "3,Lab (1),Lab (2),Ops,Sales\nAlice,1,1,0,2\nBob,,0,2,1\n", buf.String())
}

func TestMatrixReadsBack(t *testing.T) {
	m, err := cost.FromRows([][]int{{0, 5, 1, 2}, {5, 5, 0, 5}}, 5)
	require.NoError(t, err)
	rows := []string{"A", "B"}
	cols := []string{"W", "X", "Y", "Z"}

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m, rows, cols))
	mf, err := ReadMatrix(&buf)
	require.NoError(t, err)

	assert.Equal(t, m.Ints(), mf.Matrix.Ints())
	assert.Equal(t, 5, mf.Matrix.Default())
	assert.Equal(t, rows, mf.RowLabels)
	assert.Equal(t, cols, mf.ColLabels)
}

func TestReadMatrixShortRowsTakeDefault(t *testing.T) {
	mf, err := ReadMatrix(strings.NewReader("4,X,Y,Z\nA,0\nB,,1,\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 4, 4}, {4, 1, 4}}, mf.Matrix.Ints())
}

func TestReadMatrixNoCandidates(t *testing.T) {
	mf, err := ReadMatrix(strings.NewReader("3,X,Y\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, mf.Matrix.Rows())
	assert.Equal(t, 2, mf.Matrix.Cols())
	assert.Empty(t, mf.RowLabels)
}

func TestReadMatrixErrors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":           "",
		"bad default":     "x,A,B\n",
		"bad cell":        "3,A,B\nn,1,two\n",
		"row too long":    "3,A\nn,1,2\n",
		"fractional cell": "3,A,B\nn,0.5,1\n",
		"rank as default": "1,A,B,C\nn,0,,2\n",
		"zero default":    "0,A,B\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadMatrix(strings.NewReader(in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
		})
	}
}

func TestWriteMatrixLabelMismatch(t *testing.T) {
	m := cost.NewMatrix(1, 2, 3)
	err := WriteMatrix(&bytes.Buffer{}, m, []string{"A"}, []string{"X"})
	assert.True(t, errors.Is(err, errors.ErrCodeDimensionMismatch))
}

func TestWriteResults(t *testing.T) {
	rep := &project.Report{
		Records: []project.Record{
			{Candidate: "Alice", Cost: 0, Role: "Ops"},
			{Candidate: "Bob", Cost: 2, Role: "Lab (2)"},
		},
		UnmatchedCandidates: []string{"Zed"},
		Unmatched:           []string{"Lab (1)", "Sales"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, rep))
	assert.Equal(t, "Grad,Cost,Role\nAlice,0,Ops\nBob,2,Lab (2)\nZed,,\n,,Lab (1)\n,,Sales\n", buf.String())
}

func TestWriteResultsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	rep := &project.Report{Records: []project.Record{{Candidate: "A", Cost: 1, Role: "X"}}}
	require.NoError(t, WriteResultsFile(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Grad,Cost,Role\nA,1,X\n", string(data))
}

const sampleYAML = `default_cost: 4
seed: 7
roles: [Lab (1), Lab (2), Ops]
candidates:
  - name: Alice
    preferences: [Ops, Lab, Lab (2)]
`

func TestDecodeProblemYAML(t *testing.T) {
	p, err := DecodeProblem(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 4, p.DefaultCost)
	require.NotNil(t, p.Seed)
	assert.Equal(t, uint64(7), *p.Seed)
	assert.Equal(t, []string{"Lab (1)", "Lab (2)", "Ops"}, p.Roles)
	assert.Equal(t, []roles.Candidate{{Name: "Alice", Preferences: []string{"Ops", "Lab", "Lab (2)"}}}, p.Candidates)
}

func TestDecodeProblemJSON(t *testing.T) {
	in := `{"roles":["X","Y","Z"],"candidates":[{"name":"A","preferences":["X","Y","Z"]}]}`
	p, err := DecodeProblem(strings.NewReader(in), FormatJSON)
	require.NoError(t, err)
	assert.Nil(t, p.Seed)
	assert.Zero(t, p.DefaultCost)
	assert.Equal(t, roles.Roster{
		Roles:      []string{"X", "Y", "Z"},
		Candidates: []roles.Candidate{{Name: "A", Preferences: []string{"X", "Y", "Z"}}},
	}, p.Roster())
}

func TestDecodeProblemErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		format Format
		code   errors.Code
	}{
		{"unknown json field", `{"roles":["X"],"bogus":1}`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"unknown yaml field", "roles: [X]\nbogus: 1\n", FormatYAML, errors.ErrCodeInvalidFormat},
		{"empty yaml", "", FormatYAML, errors.ErrCodeInvalidFormat},
		{"no roles", `{"candidates":[]}`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"unknown format", "x", Format("toml"), errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProblem(strings.NewReader(tt.in), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestProblemFileFormats(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("p.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("p.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("p.yml"))

	seed := uint64(9)
	p := &Problem{
		DefaultCost: 5,
		Seed:        &seed,
		Roles:       []string{"X", "Y", "Z"},
		Candidates:  []roles.Candidate{{Name: "A", Preferences: []string{"Z", "Y", "X"}}},
	}
	dir := t.TempDir()
	for _, name := range []string{"p.yaml", "p.json"} {
		path := filepath.Join(dir, name)
		var buf bytes.Buffer
		require.NoError(t, EncodeProblem(&buf, p, FormatFromPath(path)))
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

		got, err := ReadProblemFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, p, got, name)
	}
}
