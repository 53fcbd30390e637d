package monitor

import (
	"context"
	"time"

	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/logger"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

// Fetcher performs one rate limit request.
type Fetcher interface {
	Fetch(ctx context.Context, auth ratelimit.AuthMode) (ratelimit.Snapshot, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, auth ratelimit.AuthMode) (ratelimit.Snapshot, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, auth ratelimit.AuthMode) (ratelimit.Snapshot, error) {
	return f(ctx, auth)
}

// Observer is notified after every completed fetch attempt.
type Observer interface {
	ObserveFetch(snap ratelimit.Snapshot, err error, took time.Duration)
}

// Poller fetches on a fixed cadence and is the only writer of the snapshot.
//
// Failed fetches are retried at the normal interval, indefinitely, with no
// backoff. /rate_limit requests are not counted against the quota.
type Poller struct {
	state    *State
	fetcher  Fetcher
	log      logger.Logger
	observer Observer
}

// NewPoller creates a poller writing into state.
func NewPoller(state *State, fetcher Fetcher, log logger.Logger) *Poller {
	if log == nil {
		log = logger.Noop()
	}
	return &Poller{
		state:   state,
		fetcher: fetcher,
		log:     log,
	}
}

// SetObserver registers an observer for fetch outcomes.
func (p *Poller) SetObserver(o Observer) {
	p.observer = o
}

// Run fetches immediately, then once per interval measured from the start of
// the previous fetch. A fetch that overruns the interval is followed by the
// next one straight away. Run returns when ctx is done.
func (p *Poller) Run(ctx context.Context) {
	interval := p.state.PollInterval()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		start := time.Now()
		// PollOnce has already recorded and logged any failure.
		_ = p.PollOnce(ctx)

		wait := interval - time.Since(start)
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
	}
}

// PollOnce performs a single fetch, bounded by the poll interval, and commits
// the outcome. The error is returned for callers that want it; the poller
// itself only logs it.
func (p *Poller) PollOnce(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, p.state.PollInterval())
	defer cancel()

	start := time.Now()
	snap, err := p.fetcher.Fetch(fetchCtx, p.state.AuthMode())
	took := time.Since(start)

	if err != nil {
		// Shutting down; not a fetch failure worth recording.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.state.RecordFailure(err)
		p.log.Warn("rate limit fetch failed after %s: %s", took.Round(time.Millisecond), errors.Summary(err))
		p.notify(ratelimit.Snapshot{}, err, took)
		return err
	}

	p.state.ReplaceSnapshot(snap)
	p.log.Debug("rate limit %d/%d remaining, resets %s", snap.Remaining, snap.Limit, snap.ResetAt.Format(time.RFC3339))
	p.notify(snap, nil, took)
	return nil
}

func (p *Poller) notify(snap ratelimit.Snapshot, err error, took time.Duration) {
	if p.observer != nil {
		p.observer.ObserveFetch(snap, err, took)
	}
}
