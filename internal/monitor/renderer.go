package monitor

import (
	"context"
	"time"
)

// RenderInterval is the UI refresh period, about 30 frames per second.
const RenderInterval = time.Second / 30

// Display draws frames. Draw must not block for long; the renderer calls it
// on every tick.
type Display interface {
	Draw(p Presentation)
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(p Presentation)

// Draw calls f.
func (f DisplayFunc) Draw(p Presentation) {
	f(p)
}

// Renderer periodically derives a Presentation from State and draws it.
// It never performs I/O of its own besides the Draw call.
type Renderer struct {
	state    *State
	display  Display
	interval time.Duration
	now      func() time.Time
}

// NewRenderer creates a renderer ticking at RenderInterval.
func NewRenderer(state *State, display Display) *Renderer {
	return &Renderer{
		state:    state,
		display:  display,
		interval: RenderInterval,
		now:      time.Now,
	}
}

// SetInterval overrides the tick period.
func (r *Renderer) SetInterval(d time.Duration) {
	if d > 0 {
		r.interval = d
	}
}

// Frame derives the presentation for now without drawing it.
func (r *Renderer) Frame(now time.Time) Presentation {
	snap, ok, status := r.state.read()

	p := Derive(snap, ok, now, r.state.AuthMode().InitialCapacity())
	p.Resource = r.state.Resource()
	p.Auth = r.state.AuthMode()
	p.Interval = r.state.PollInterval()
	p.Status = status
	return p
}

// Tick derives the presentation for now and draws it.
func (r *Renderer) Tick(now time.Time) Presentation {
	p := r.Frame(now)
	r.display.Draw(p)
	return p
}

// Run draws a frame immediately and then on every tick until ctx is done.
func (r *Renderer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Tick(r.now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick(r.now())
		}
	}
}
