// Package store archives analysis reports keyed by graph content hash.
//
// The cache (pkg/cache) answers "have I analyzed this exact graph
// recently"; the store keeps the full history: every analyzed graph and
// its report, queryable by record ID or graph hash. Backends:
//   - memory: for development and tests
//   - mongo: for deployments that keep a corpus-wide archive
package store

import (
	"context"
	"errors"
	"time"

	"github.com/proofscope/proofscope/pkg/analysis"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Record is one archived analysis run.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	GraphHash string           `json:"graph_hash" bson:"graph_hash"`
	Name      string           `json:"name,omitempty" bson:"name,omitempty"` // caller-supplied label, e.g. the input filename
	NodeCount int              `json:"node_count" bson:"node_count"`
	EdgeCount int              `json:"edge_count" bson:"edge_count"`
	Report    *analysis.Report `json:"report" bson:"report"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// Store is the interface for report archive backends.
type Store interface {
	// Put stores a record. An existing record with the same ID is
	// replaced.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// GetByGraphHash retrieves the most recent record for a graph
	// hash. Returns ErrNotFound if the graph was never archived.
	GetByGraphHash(ctx context.Context, hash string) (*Record, error)

	// List returns up to limit records, most recent first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
