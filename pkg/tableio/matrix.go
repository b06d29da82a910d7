package tableio

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/JHertz5/role-assignment/pkg/cost"
	"github.com/JHertz5/role-assignment/pkg/errors"
)

// MatrixFile is a cost matrix with its labels.
type MatrixFile struct {
	Matrix    *cost.Matrix
	RowLabels []string
	ColLabels []string
}

// WriteMatrix writes m in cost-matrix format. Cells equal to the default
// cost are left blank.
func WriteMatrix(w io.Writer, m *cost.Matrix, rowLabels, colLabels []string) error {
	if len(rowLabels) != m.Rows() || len(colLabels) != m.Cols() {
		return errors.New(errors.ErrCodeDimensionMismatch,
			"labels %dx%d for %dx%d matrix", len(rowLabels), len(colLabels), m.Rows(), m.Cols())
	}

	cw := csv.NewWriter(w)
	def := m.Default()
	if err := cw.Write(append([]string{strconv.Itoa(def)}, colLabels...)); err != nil {
		return err
	}
	rec := make([]string, m.Cols()+1)
	for i := range m.Rows() {
		rec[0] = rowLabels[i]
		for j := range m.Cols() {
			if v := m.At(i, j); v == def {
				rec[j+1] = ""
			} else {
				rec[j+1] = strconv.Itoa(v)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMatrix parses a cost-matrix file. Blank cells and cells missing from
// the end of a short row take the default cost; a row longer than the
// header, a cell that is not an integer or a header default cost that
// collides with a rank fails with ErrCodeInvalidFormat.
// Negative cells are accepted here and rejected by the solver.
func ReadMatrix(r io.Reader) (*MatrixFile, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "matrix file is empty")
	}

	head := trimTrailing(records[0])
	if len(head) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "matrix header is empty")
	}
	def, err := strconv.Atoi(strings.TrimSpace(head[0]))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "default cost %q", head[0])
	}
	if err := errors.ValidateDefaultCost(def); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "matrix header")
	}
	cols := trimCells(head[1:])

	var rowLabels []string
	var rows [][]int
	for n, rec := range records[1:] {
		line := n + 2
		rec = trimTrailing(rec)
		if len(rec) == 0 {
			continue
		}
		if len(rec)-1 > len(cols) {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"line %d has %d cells for %d roles", line, len(rec)-1, len(cols))
		}
		row := make([]int, len(cols))
		for j := range row {
			row[j] = def
			if j+1 >= len(rec) {
				continue
			}
			cell := strings.TrimSpace(rec[j+1])
			if cell == "" {
				continue
			}
			v, err := strconv.Atoi(cell)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d column %q", line, cols[j])
			}
			row[j] = v
		}
		rowLabels = append(rowLabels, strings.TrimSpace(rec[0]))
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return &MatrixFile{Matrix: cost.NewMatrix(0, len(cols), def), RowLabels: []string{}, ColLabels: cols}, nil
	}
	m, err := cost.FromRows(rows, def)
	if err != nil {
		return nil, err
	}
	return &MatrixFile{Matrix: m, RowLabels: rowLabels, ColLabels: cols}, nil
}

// ReadMatrixFile reads a cost-matrix file from path.
func ReadMatrixFile(path string) (*MatrixFile, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mf, err := ReadMatrix(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return mf, nil
}

// WriteMatrixFile writes a cost-matrix file to path.
func WriteMatrixFile(path string, m *cost.Matrix, rowLabels, colLabels []string) error {
	return writeFile(path, func(w io.Writer) error { return WriteMatrix(w, m, rowLabels, colLabels) })
}
