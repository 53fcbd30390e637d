package ratelimit

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot is one observed quota window. Values are stored as received;
// derived quantities are clamped on read.
type Snapshot struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Used returns Limit - Remaining clamped to [0, Limit].
func (s Snapshot) Used() int {
	limit := s.Limit
	if limit < 0 {
		limit = 0
	}
	used := limit - s.Remaining
	if used < 0 {
		return 0
	}
	if used > limit {
		return limit
	}
	return used
}

// FractionRemaining returns Remaining / Limit in [0, 1].
// A zero (or negative) limit yields 0.
func (s Snapshot) FractionRemaining() float64 {
	if s.Limit <= 0 {
		return 0
	}
	f := float64(s.Remaining) / float64(s.Limit)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// SecondsToReset returns whole seconds from now until ResetAt.
// Negative once the reset time has passed.
func (s Snapshot) SecondsToReset(now time.Time) int64 {
	return s.ResetAt.Unix() - now.Unix()
}

// Resource names a quota bucket in the /rate_limit response.
type Resource string

const (
	ResourceCore    Resource = "core"
	ResourceSearch  Resource = "search"
	ResourceGraphQL Resource = "graphql"
)

// Resources lists the supported buckets in display order.
var Resources = []Resource{ResourceCore, ResourceSearch, ResourceGraphQL}

// ParseResource validates a resource name (case-insensitive).
func ParseResource(name string) (Resource, error) {
	r := Resource(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Resources {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource %q (expected core, search or graphql)", name)
}

// Quotas holds a snapshot for each bucket returned by one request.
type Quotas struct {
	Core    Snapshot
	Search  Snapshot
	GraphQL Snapshot

	// Missing lists buckets absent from the response. Their snapshots are zero.
	Missing []Resource
}

// Has reports whether the response carried bucket r.
func (q Quotas) Has(r Resource) bool {
	for _, m := range q.Missing {
		if m == r {
			return false
		}
	}
	return true
}

// Pick returns the snapshot for r. Unknown resources fall back to core.
func (q Quotas) Pick(r Resource) Snapshot {
	switch r {
	case ResourceSearch:
		return q.Search
	case ResourceGraphQL:
		return q.GraphQL
	default:
		return q.Core
	}
}
