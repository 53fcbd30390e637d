package monitor

import (
	"sync"
	"time"

	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

// Config is the validated input to the monitor.
type Config struct {
	// PollInterval is the time between the starts of two fetches.
	PollInterval time.Duration
	// Auth selects the credentials sent with every fetch.
	Auth ratelimit.AuthMode
	// Resource is the quota bucket being watched. Display only.
	Resource ratelimit.Resource
}

// Validate checks the config before the loops start.
func (c Config) Validate() error {
	if c.PollInterval < time.Second {
		return errors.New(errors.ErrConfig,
			"Poll interval must be at least 1 second",
			"Pass --frequency with a whole number of seconds, e.g. --frequency 10")
	}
	return nil
}

// FetchStatus summarizes recent poll outcomes.
type FetchStatus struct {
	LastAttempt time.Time
	LastSuccess time.Time
	LastError   error
	// Failures counts consecutive failed fetches since the last success.
	Failures int
}

// Stale reports whether the displayed snapshot predates the latest attempt.
func (s FetchStatus) Stale() bool {
	return s.LastError != nil
}

// State is shared between the poller (single writer) and the renderer.
// The snapshot is replaced only on a successful fetch; readers always get
// a complete copy.
type State struct {
	interval time.Duration
	auth     ratelimit.AuthMode
	resource ratelimit.Resource
	now      func() time.Time

	mu          sync.RWMutex
	snapshot    ratelimit.Snapshot
	hasSnapshot bool
	status      FetchStatus
}

// NewState creates the shared state for cfg. It starts without a snapshot.
func NewState(cfg Config) *State {
	resource := cfg.Resource
	if resource == "" {
		resource = ratelimit.ResourceCore
	}
	return &State{
		interval: cfg.PollInterval,
		auth:     cfg.Auth,
		resource: resource,
		now:      time.Now,
	}
}

// PollInterval returns the configured interval. Immutable.
func (s *State) PollInterval() time.Duration {
	return s.interval
}

// AuthMode returns the configured credentials. Immutable.
func (s *State) AuthMode() ratelimit.AuthMode {
	return s.auth
}

// Resource returns the watched quota bucket. Immutable.
func (s *State) Resource() ratelimit.Resource {
	return s.resource
}

// ReplaceSnapshot commits a freshly fetched snapshot and clears the failure streak.
func (s *State) ReplaceSnapshot(snap ratelimit.Snapshot) {
	now := s.now()

	s.mu.Lock()
	s.snapshot = snap
	s.hasSnapshot = true
	s.status.LastAttempt = now
	s.status.LastSuccess = now
	s.status.LastError = nil
	s.status.Failures = 0
	s.mu.Unlock()
}

// RecordFailure notes a failed fetch. The current snapshot is kept.
func (s *State) RecordFailure(err error) {
	now := s.now()

	s.mu.Lock()
	s.status.LastAttempt = now
	s.status.LastError = err
	s.status.Failures++
	s.mu.Unlock()
}

// ReadSnapshot returns the latest snapshot and whether one exists yet.
func (s *State) ReadSnapshot() (ratelimit.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.hasSnapshot
}

// Status returns the current fetch status.
func (s *State) Status() FetchStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// read returns snapshot and status under a single lock acquisition.
func (s *State) read() (ratelimit.Snapshot, bool, FetchStatus) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.hasSnapshot, s.status
}
