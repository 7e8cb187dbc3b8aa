// Package cache provides the report cache owned by the calling layer.
//
// The analysis engine itself is a pure function of its input graph and
// holds no state. Callers that want memoization (the CLI, a serving
// layer) key a Cache by the graph's content hash and an options
// fingerprint, with time-based expiry handled by the backend. Backends:
// in-memory, file-based, redis, and a no-op null cache.
package cache

import (
	"context"
	"time"
)

// Default expirations for cached artifacts.
const (
	// DefaultReportTTL bounds how long a structural report is served
	// without recomputation. Reports are pure functions of the graph,
	// so expiry only matters to cap storage, not for correctness.
	DefaultReportTTL = 24 * time.Hour

	// DefaultRenderTTL bounds rendered DOT/SVG artifacts.
	DefaultRenderTTL = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss;
	// expired entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ReportKeyOpts fingerprint the analysis options baked into a cached
// report, so the same graph analyzed with different options never
// collides.
type ReportKeyOpts struct {
	TopK int `json:"top_k"`
}

// RenderKeyOpts fingerprint rendering options for cached artifacts.
type RenderKeyOpts struct {
	Format        string `json:"format"` // "dot" or "svg"
	CollapseCycle bool   `json:"collapse_cycles"`
	Highlight     bool   `json:"highlight"`
	Detailed      bool   `json:"detailed"`
}

// Keyer generates cache keys. All content addressing goes through the
// graph's serialized hash, so renaming a file or re-reading the same
// graph from a different path still hits.
type Keyer interface {
	// ReportKey generates a key for a cached structural report.
	ReportKey(graphHash string, opts ReportKeyOpts) string

	// RenderKey generates a key for a cached rendered artifact.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard key scheme: prefix:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// ReportKey generates a key for a cached structural report.
func (k *DefaultKeyer) ReportKey(graphHash string, opts ReportKeyOpts) string {
	return hashKey("report", graphHash, opts)
}

// RenderKey generates a key for a cached rendered artifact.
func (k *DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}
