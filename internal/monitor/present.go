package monitor

import (
	"strconv"
	"time"

	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

// Tier thresholds. A value sitting exactly on a boundary belongs to the
// more severe tier. There is no hysteresis, so inputs oscillating across a
// boundary make the tier flip between ticks.
const (
	CriticalFraction = 0.08
	WarningFraction  = 0.5
	ImminentSeconds  = 120
)

// ColorTier buckets the remaining fraction of the quota.
type ColorTier int

const (
	// ColorNone is used before any snapshot has arrived.
	ColorNone ColorTier = iota
	ColorNormal
	ColorWarning
	ColorCritical
)

// String returns the tier name.
func (c ColorTier) String() string {
	switch c {
	case ColorNormal:
		return "normal"
	case ColorWarning:
		return "warning"
	case ColorCritical:
		return "critical"
	default:
		return "none"
	}
}

// MessageTier buckets the time left until the window resets.
type MessageTier int

const (
	MessageNormal MessageTier = iota
	MessageImminent
)

// String returns the tier name.
func (m MessageTier) String() string {
	if m == MessageImminent {
		return "imminent"
	}
	return "normal"
}

// ClassifyColor returns the color tier for a snapshot. A zero limit is critical.
func ClassifyColor(s ratelimit.Snapshot) ColorTier {
	if s.Limit <= 0 {
		return ColorCritical
	}
	f := s.FractionRemaining()
	switch {
	case f <= CriticalFraction:
		return ColorCritical
	case f <= WarningFraction:
		return ColorWarning
	default:
		return ColorNormal
	}
}

// ClassifyMessage returns the message tier for the given seconds to reset.
func ClassifyMessage(secondsToReset int64) MessageTier {
	if secondsToReset < ImminentSeconds {
		return MessageImminent
	}
	return MessageNormal
}

// Presentation is everything a display needs to draw one frame.
type Presentation struct {
	// Ready is false until the first successful fetch.
	Ready bool

	GaugeLength   int
	GaugePosition int
	Color         ColorTier
	Message       MessageTier
	// Text is the seconds until reset as a plain integer.
	Text string

	Remaining      int
	SecondsToReset int64
	ResetAt        time.Time

	Resource ratelimit.Resource
	Auth     ratelimit.AuthMode
	Interval time.Duration
	Status   FetchStatus
	Now      time.Time
}

// Derive computes a frame from the latest snapshot (if any) and the current time.
// Without a snapshot the gauge is sized to capacity and left empty.
func Derive(snap ratelimit.Snapshot, ok bool, now time.Time, capacity int) Presentation {
	if !ok {
		return Presentation{
			GaugeLength: capacity,
			Color:       ColorNone,
			Message:     MessageNormal,
			Now:         now,
		}
	}

	length := snap.Limit
	if length < 0 {
		length = 0
	}
	used := snap.Used()
	secs := snap.SecondsToReset(now)

	return Presentation{
		Ready:          true,
		GaugeLength:    length,
		GaugePosition:  used,
		Color:          ClassifyColor(snap),
		Message:        ClassifyMessage(secs),
		Text:           strconv.FormatInt(secs, 10),
		Remaining:      length - used,
		SecondsToReset: secs,
		ResetAt:        snap.ResetAt,
		Now:            now,
	}
}

// Fraction returns the gauge fill in [0, 1].
func (p Presentation) Fraction() float64 {
	if p.GaugeLength <= 0 {
		return 0
	}
	return float64(p.GaugePosition) / float64(p.GaugeLength)
}
