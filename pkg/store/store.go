// Package store keeps a history of assignment runs.
//
// Backends:
//   - [FileStore]: one JSON file per run in a directory, for the CLI
//   - [MongoStore]: a MongoDB collection, for the HTTP server
//   - [NullStore]: discards everything
//
// Runs are listed newest first.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/JHertz5/role-assignment/pkg/project"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// DefaultListLimit bounds List when the caller passes a limit <= 0.
const DefaultListLimit = 20

// Run is one stored pipeline execution.
type Run struct {
	ID         string          `json:"id" bson:"_id"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
	Source     string          `json:"source" bson:"source"`
	InputHash  string          `json:"input_hash" bson:"input_hash"`
	Seed       uint64          `json:"seed" bson:"seed"`
	Shuffle    bool            `json:"shuffle" bson:"shuffle"`
	Candidates int             `json:"candidates" bson:"candidates"`
	Slots      int             `json:"slots" bson:"slots"`
	Warnings   int             `json:"warnings" bson:"warnings"`
	CacheHit   bool            `json:"cache_hit" bson:"cache_hit"`
	Report     *project.Report `json:"report,omitempty" bson:"report,omitempty"`
}

// Store is the interface for run history backends.
type Store interface {
	// Save records a run. Saving an ID twice replaces the earlier run.
	Save(ctx context.Context, run *Run) error
	// Get returns the run with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)
	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// NullStore discards runs.
type NullStore struct{}

func (NullStore) Save(context.Context, *Run) error { return nil }

func (NullStore) Get(context.Context, string) (*Run, error) { return nil, ErrNotFound }

func (NullStore) List(context.Context, int) ([]Run, error) { return nil, nil }

func (NullStore) Close() error { return nil }

var _ Store = NullStore{}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
