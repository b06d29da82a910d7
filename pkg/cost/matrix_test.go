package cost

import (
	"testing"

	"github.com/JHertz5/role-assignment/pkg/errors"
)

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]int{{0, 1, 3}, {3, 0, 1}}, 3)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", m.Rows(), m.Cols())
	}
	if got := m.At(1, 2); got != 1 {
		t.Errorf("At(1,2) = %d, want 1", got)
	}
	if m.Default() != 3 {
		t.Errorf("Default() = %d, want 3", m.Default())
	}
}

func TestFromRowsCopies(t *testing.T) {
	src := [][]int{{0, 1}, {1, 0}}
	m, err := FromRows(src, 3)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	src[0][0] = 42
	if m.At(0, 0) != 0 {
		t.Error("FromRows should copy its input")
	}

	row := m.Row(0)
	row[1] = 42
	if m.At(0, 1) != 1 {
		t.Error("Row should return a copy")
	}
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows([][]int{{0, 1}, {1}}, 3)
	if !errors.Is(err, errors.ErrCodeDimensionMismatch) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeDimensionMismatch)
	}
}

func TestFromRowsEmpty(t *testing.T) {
	m, err := FromRows(nil, 3)
	if err != nil {
		t.Fatalf("FromRows(nil): %v", err)
	}
	if m.Rows() != 0 || m.Cols() != 0 {
		t.Errorf("shape = %dx%d, want 0x0", m.Rows(), m.Cols())
	}
	if len(m.Ints()) != 0 {
		t.Error("Ints() of empty matrix should be empty")
	}
}

func TestPermute(t *testing.T) {
	m, _ := FromRows([][]int{{0, 1}, {1, 0}, {3, 3}}, 3)
	p := m.Permute([]int{2, 0, 1})
	want := [][]int{{3, 3}, {0, 1}, {1, 0}}
	got := p.Ints()
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("Permute = %v, want %v", got, want)
			}
		}
	}
	if m.At(0, 0) != 0 {
		t.Error("Permute must not modify the receiver")
	}
}

func TestNewMatrix(t *testing.T) {
	m := NewMatrix(0, 4, 3)
	if m.Rows() != 0 || m.Cols() != 4 || m.Default() != 3 {
		t.Fatalf("NewMatrix(0,4,3) = %dx%d def %d", m.Rows(), m.Cols(), m.Default())
	}
	m = NewMatrix(2, 2, 5)
	if m.At(1, 1) != 5 {
		t.Errorf("At(1,1) = %d, want 5", m.At(1, 1))
	}
}
