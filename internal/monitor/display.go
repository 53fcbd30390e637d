package monitor

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/ui"
)

// messageSender is the part of *tea.Program TeaDisplay needs.
type messageSender interface {
	Send(msg tea.Msg)
}

// TeaDisplay forwards frames to a running Bubble Tea program. Draw never
// blocks: it leaves the frame in a single slot, replacing any frame the
// program has not taken yet, and Run hands slot contents to the program.
type TeaDisplay struct {
	program messageSender
	frames  chan Presentation
}

// NewTeaDisplay wraps p. Run must be started for frames to reach p.
func NewTeaDisplay(p *tea.Program) *TeaDisplay {
	return newTeaDisplay(p)
}

func newTeaDisplay(s messageSender) *TeaDisplay {
	return &TeaDisplay{program: s, frames: make(chan Presentation, 1)}
}

// Draw stores the frame as the latest one for the program.
func (d *TeaDisplay) Draw(p Presentation) {
	for {
		select {
		case d.frames <- p:
			return
		default:
		}
		// Slot full: drop the stale frame and retry.
		select {
		case <-d.frames:
		default:
		}
	}
}

// Run sends frames to the program until ctx is done. Send itself returns
// once the program has exited.
func (d *TeaDisplay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case p := <-d.frames:
			d.program.Send(frameMsg(p))
		}
	}
}

// lineBarWidth is the bar width used by LineDisplay.
const lineBarWidth = 30

// LineDisplay writes a single status line for terminals without a TUI, or for
// piped output. In-place mode redraws the line with a carriage return;
// otherwise a new line is written only when the content changes.
type LineDisplay struct {
	w       io.Writer
	inPlace bool
	last    string
}

// NewLineDisplay creates a LineDisplay writing to w.
func NewLineDisplay(w io.Writer, inPlace bool) *LineDisplay {
	return &LineDisplay{w: w, inPlace: inPlace}
}

// Draw renders p if it differs from the previous frame.
func (d *LineDisplay) Draw(p Presentation) {
	line := FormatLine(p)
	if line == d.last {
		return
	}
	d.last = line

	if d.inPlace {
		fmt.Fprint(d.w, "\r\033[K"+line)
		return
	}
	fmt.Fprintln(d.w, line)
}

// FormatLine renders a presentation as a single line.
func FormatLine(p Presentation) string {
	var b strings.Builder

	resource := string(p.Resource)
	if resource == "" {
		resource = "core"
	}
	b.WriteString(resource)
	b.WriteString(" ")

	if !p.Ready {
		b.WriteString(ui.RenderTierBar(0, lineBarWidth, ui.TierNone))
		b.WriteString(fmt.Sprintf(" waiting for data (assuming %d)", p.GaugeLength))
	} else {
		b.WriteString(ui.RenderTierBar(p.Fraction(), lineBarWidth, p.Color.BarTier()))
		b.WriteString(fmt.Sprintf(" %d/%d used, %d left", p.GaugePosition, p.GaugeLength, p.Remaining))
		if p.SecondsToReset < 0 {
			b.WriteString(", reset pending")
		} else {
			b.WriteString(", resets in " + p.Text + "s")
			if p.Message == MessageImminent {
				b.WriteString(" " + ui.SymbolImminent)
			}
		}
	}

	if p.Status.LastError != nil {
		b.WriteString(" " + ui.SymbolFail + " " + errors.Summary(p.Status.LastError))
	}
	return b.String()
}

// BarTier maps the tier onto the ui package's bar tiers.
func (t ColorTier) BarTier() ui.Tier {
	switch t {
	case ColorNormal:
		return ui.TierNormal
	case ColorWarning:
		return ui.TierWarning
	case ColorCritical:
		return ui.TierCritical
	default:
		return ui.TierNone
	}
}
