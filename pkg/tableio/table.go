package tableio

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/roles"
)

// ReadTable parses a preference table into a roster. Rows are returned in
// file order; preference counts and role names are checked later by the
// cost model.
func ReadTable(r io.Reader) (roles.Roster, error) {
	records, err := readAll(r)
	if err != nil {
		return roles.Roster{}, err
	}
	if len(records) == 0 {
		return roles.Roster{}, errors.New(errors.ErrCodeInvalidFormat, "preference table is empty")
	}

	head := trimTrailing(records[0])
	if len(head) == 0 || !strings.EqualFold(strings.TrimSpace(head[0]), "roles") {
		return roles.Roster{}, errors.New(errors.ErrCodeInvalidFormat, `first row must start with "Roles"`)
	}
	roster := roles.Roster{Roles: trimCells(head[1:])}

	for n, rec := range records[1:] {
		rec = trimTrailing(rec)
		if len(rec) == 0 {
			continue
		}
		if n == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		roster.Candidates = append(roster.Candidates, roles.Candidate{
			Name:        strings.TrimSpace(rec[0]),
			Preferences: trimCells(rec[1:]),
		})
	}
	return roster, nil
}

// ReadTableFile reads a preference table from path.
func ReadTableFile(path string) (roles.Roster, error) {
	f, err := open(path)
	if err != nil {
		return roles.Roster{}, err
	}
	defer f.Close()

	roster, err := ReadTable(f)
	if err != nil {
		return roles.Roster{}, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return roster, nil
}

// WriteTable writes a roster as a preference table with a Name header row.
func WriteTable(w io.Writer, roster roles.Roster) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Roles"}, roster.Roles...)); err != nil {
		return err
	}
	if err := cw.Write([]string{"Name", "1st", "2nd", "3rd"}); err != nil {
		return err
	}
	for _, c := range roster.Candidates {
		if err := cw.Write(append([]string{c.Name}, c.Preferences...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse csv")
	}
	return records, nil
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}

// trimTrailing drops empty cells at the end of a record, as spreadsheets pad
// short rows to the widest one.
func trimTrailing(rec []string) []string {
	end := len(rec)
	for end > 0 && strings.TrimSpace(rec[end-1]) == "" {
		end--
	}
	return rec[:end]
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
