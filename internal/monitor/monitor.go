package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/grlm/internal/logger"
)

// Option customizes Start.
type Option func(*options)

type options struct {
	log            logger.Logger
	observer       Observer
	renderInterval time.Duration
	onState        func(*State)
}

// WithLogger sets the logger used by the poller. Defaults to logger.Default().
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver registers an observer for fetch outcomes.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithRenderInterval overrides RenderInterval.
func WithRenderInterval(d time.Duration) Option {
	return func(o *options) { o.renderInterval = d }
}

// WithStateHook is called with the shared state before the loops start.
func WithStateHook(fn func(*State)) Option {
	return func(o *options) { o.onState = fn }
}

// Start runs the poller and the renderer until ctx is cancelled, then waits
// for both loops to return. With a context that is never cancelled it does
// not return.
func Start(ctx context.Context, cfg Config, fetcher Fetcher, display Display, opts ...Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	o := options{log: logger.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	state := NewState(cfg)
	if o.onState != nil {
		o.onState(state)
	}

	poller := NewPoller(state, fetcher, o.log)
	if o.observer != nil {
		poller.SetObserver(o.observer)
	}

	renderer := NewRenderer(state, display)
	renderer.SetInterval(o.renderInterval)

	o.log.Info("monitoring %s quota every %s (%s)", state.Resource(), cfg.PollInterval, cfg.Auth)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		poller.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		renderer.Run(ctx)
	}()
	wg.Wait()

	return nil
}
