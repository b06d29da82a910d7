package tableio

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/roles"
)

// Problem is a self-contained assignment problem.
//
//	default_cost: 3
//	seed: 7
//	roles: [Lab (1), Lab (2), Ops, Sales]
//	candidates:
//	  - name: Alice
//	    preferences: [Ops, Lab, Sales]
//
// A zero DefaultCost and a nil Seed leave the run defaults in place.
type Problem struct {
	DefaultCost int               `json:"default_cost,omitempty" yaml:"default_cost,omitempty"`
	Seed        *uint64           `json:"seed,omitempty" yaml:"seed,omitempty"`
	Roles       []string          `json:"roles" yaml:"roles"`
	Candidates  []roles.Candidate `json:"candidates" yaml:"candidates"`
}

// Roster returns the roles and candidates of p.
func (p Problem) Roster() roles.Roster {
	return roles.Roster{Roles: p.Roles, Candidates: p.Candidates}
}

// Format is a problem file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format by file extension; anything other than
// .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// DecodeProblem reads a problem in the given format. Unknown fields are
// rejected.
func DecodeProblem(r io.Reader, format Format) (*Problem, error) {
	var p Problem
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json problem")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			if err == io.EOF {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "problem file is empty")
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml problem")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown problem format %q", format)
	}
	if len(p.Roles) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "problem lists no roles")
	}
	return &p, nil
}

// ReadProblemFile reads a problem from path, choosing the format by
// extension.
func ReadProblemFile(path string) (*Problem, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := DecodeProblem(f, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return p, nil
}

// EncodeProblem writes p in the given format.
func EncodeProblem(w io.Writer, p *Problem, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown problem format %q", format)
	}
}
