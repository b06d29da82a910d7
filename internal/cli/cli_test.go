package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `Roles,Lab (1),Lab (2),Ops,Sales,Analyst
Name,1st,2nd,3rd
Alice,Ops,Lab,Sales
Bob,Lab,Ops,Analyst
Cara,Lab,Sales,Ops
Dan,Sales,Ops,Analyst
`

const sampleProblemYAML = `seed: 7
roles: ["Lab (1)", "Lab (2)", "Ops", "Sales", "Analyst"]
candidates:
  - name: Alice
    preferences: [Ops, Lab, Sales]
  - name: Bob
    preferences: [Lab, Ops, Analyst]
  - name: Cara
    preferences: [Lab, Sales, Ops]
  - name: Dan
    preferences: [Sales, Ops, Analyst]
`

// testEnv points config, cache and history at temp dirs.
type testEnv struct {
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return &testEnv{dir: dir}
}

func (e *testEnv) write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (e *testEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

// run executes the CLI with args and returns what it printed.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, log.InfoLevel)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertSampleResults(t *testing.T, csv string) {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 6, "header, four candidates, one unfilled slot")
	assert.Equal(t, "Grad,Cost,Role", lines[0])
	assert.Equal(t, "Alice,0,Ops", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Bob,0,Lab"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "Cara,0,Lab"), lines[3])
	assert.Equal(t, "Dan,0,Sales", lines[4])
	assert.Equal(t, ",,Analyst", lines[5])
}

func TestAssignTable(t *testing.T) {
	env := newTestEnv(t)
	table := env.write(t, "prefs.csv", sampleTable)
	results := env.path("out.csv")

	out, err := env.run(t, "assign", table, "-o", results, "--verify")
	require.NoError(t, err)
	assertSampleResults(t, readFile(t, results))

	assert.Contains(t, out, "4 got 1st choice")
	assert.Contains(t, out, "fresh")
	assert.Contains(t, out, "Optimum confirmed")
	assert.Contains(t, out, "does not contain exactly 1", "strict validation warns on clone groups")

	out, err = env.run(t, "assign", table, "-o", results)
	require.NoError(t, err)
	assert.Contains(t, out, "cached")
	assertSampleResults(t, readFile(t, results))
}

func TestAssignCloneAwareHasNoWarnings(t *testing.T) {
	env := newTestEnv(t)
	table := env.write(t, "prefs.csv", sampleTable)

	out, err := env.run(t, "assign", table, "-o", env.path("out.csv"), "--clone-aware", "--no-cache")
	require.NoError(t, err)
	assert.NotContains(t, out, "does not contain exactly 1")
}

func TestAssignProblemFile(t *testing.T) {
	env := newTestEnv(t)
	problem := env.write(t, "cohort.yaml", sampleProblemYAML)
	results := env.path("out.csv")

	_, err := env.run(t, "assign", "--problem", problem, "-o", results, "--no-cache")
	require.NoError(t, err)
	assertSampleResults(t, readFile(t, results))
}

func TestAssignGraph(t *testing.T) {
	env := newTestEnv(t)
	table := env.write(t, "prefs.csv", sampleTable)
	graph := env.path("out.dot")

	_, err := env.run(t, "assign", table, "-o", env.path("out.csv"), "--graph", graph, "--no-cache")
	require.NoError(t, err)
	dot := readFile(t, graph)
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "Alice")

	_, err = env.run(t, "assign", table, "-o", env.path("out.csv"), "--graph", env.path("out.gif"), "--no-cache")
	assert.Error(t, err)
}

func TestAssignArgs(t *testing.T) {
	env := newTestEnv(t)
	table := env.write(t, "prefs.csv", sampleTable)
	problem := env.write(t, "cohort.yaml", sampleProblemYAML)

	_, err := env.run(t, "assign")
	assert.Error(t, err, "no input")

	_, err = env.run(t, "assign", table, "--problem", problem)
	assert.Error(t, err, "two inputs")

	_, err = env.run(t, "assign", env.path("missing.csv"))
	assert.Error(t, err)
}

func TestMatrixThenSolve(t *testing.T) {
	env := newTestEnv(t)
	table := env.write(t, "prefs.csv", sampleTable)
	matrix := env.path("matrix.csv")
	results := env.path("out.csv")

	_, err := env.run(t, "matrix", table, "-o", matrix, "--no-shuffle")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(readFile(t, matrix)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "3,Lab (1),Lab (2),Ops,Sales,Analyst", lines[0])
	assert.Equal(t, "Alice,1,1,0,2,", lines[1])

	_, err = env.run(t, "solve", matrix, "-o", results, "--verify")
	require.NoError(t, err)
	assertSampleResults(t, readFile(t, results))
}

func TestConfigFileSetsDefaults(t *testing.T) {
	env := newTestEnv(t)
	table := env.write(t, "prefs.csv", sampleTable)
	cfg := env.write(t, "config.toml", "default_cost = 7\nshuffle = false\n")
	matrix := env.path("matrix.csv")

	_, err := env.run(t, "--config", cfg, "matrix", table, "-o", matrix)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(readFile(t, matrix), "7,"))

	_, err = env.run(t, "--config", cfg, "matrix", table, "-o", matrix, "--default-cost", "4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(readFile(t, matrix), "4,"), "flags override the config file")

	_, err = env.run(t, "--config", env.path("missing.toml"), "matrix", table)
	assert.Error(t, err)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)
	table := env.write(t, "prefs.csv", sampleTable)

	out, err := env.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")

	_, err = env.run(t, "assign", table, "-o", env.path("out.csv"), "--no-cache")
	require.NoError(t, err)
	_, err = env.run(t, "assign", table, "-o", env.path("out.csv"), "--no-cache", "--history=false")
	require.NoError(t, err)

	runDir := filepath.Join(env.dir, "config", "gradassign", "runs")
	entries, err := os.ReadDir(runDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "--history=false skips recording")
	id := strings.TrimSuffix(entries[0].Name(), ".json")

	out, err = env.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "prefs.csv")

	out, err = env.run(t, "history", "--run", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Total cost")

	_, err = env.run(t, "history", "--run", "nope")
	assert.Error(t, err)
}

func TestCacheCommands(t *testing.T) {
	env := newTestEnv(t)
	table := env.write(t, "prefs.csv", sampleTable)

	out, err := env.run(t, "cache", "path")
	require.NoError(t, err)
	dir := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(env.dir, "cache", "gradassign"), dir)

	_, err = env.run(t, "assign", table, "-o", env.path("out.csv"))
	require.NoError(t, err)

	out, err = env.run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")

	out, err = env.run(t, "assign", table, "-o", env.path("out.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "fresh", "cleared cache forces a new solve")
}

func TestCompletion(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "gradassign")

	_, err = env.run(t, "completion", "tcsh")
	assert.Error(t, err)
}
