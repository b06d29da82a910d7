package tableio

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/project"
)

// DefaultResultsFile is the results path used when none is given.
const DefaultResultsFile = "grad_assignments.csv"

// WriteResults writes a report in results format.
func WriteResults(w io.Writer, rep *project.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Grad", "Cost", "Role"}); err != nil {
		return err
	}
	for _, r := range rep.Records {
		if err := cw.Write([]string{r.Candidate, strconv.Itoa(r.Cost), r.Role}); err != nil {
			return err
		}
	}
	for _, name := range rep.UnmatchedCandidates {
		if err := cw.Write([]string{name, "", ""}); err != nil {
			return err
		}
	}
	for _, role := range rep.Unmatched {
		if err := cw.Write([]string{"", "", role}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultsFile writes a report to path, creating parent directories.
func WriteResultsFile(path string, rep *project.Report) error {
	return writeFile(path, func(w io.Writer) error { return WriteResults(w, rep) })
}

// writeFile creates path and runs fn on it, closing the file before
// returning fn's error or the close error.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
