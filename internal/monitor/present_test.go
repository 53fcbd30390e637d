package monitor

import (
	"testing"
	"time"

	"github.com/rileyhilliard/grlm/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestClassifyColor_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		remaining int
		want      ColorTier
	}{
		{"exactly 8% is critical", 1000, 80, ColorCritical},
		{"8.1% is warning", 1000, 81, ColorWarning},
		{"exactly 50% is warning", 1000, 500, ColorWarning},
		{"50.1% is normal", 1000, 501, ColorNormal},
		{"full is normal", 60, 60, ColorNormal},
		{"empty is critical", 60, 0, ColorCritical},
		{"zero limit is critical", 0, 0, ColorCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ratelimit.Snapshot{Limit: tt.limit, Remaining: tt.remaining}
			assert.Equal(t, tt.want, ClassifyColor(s))
		})
	}
}

func TestClassifyMessage_Boundaries(t *testing.T) {
	tests := []struct {
		secs int64
		want MessageTier
	}{
		{119, MessageImminent},
		{120, MessageNormal},
		{121, MessageNormal},
		{0, MessageImminent},
		{-5, MessageImminent},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMessage(tt.secs), "secs=%d", tt.secs)
		})
	}
}

func TestDerive_NoSnapshot(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	p := Derive(ratelimit.Snapshot{}, false, now, 60)

	assert.False(t, p.Ready)
	assert.Equal(t, 60, p.GaugeLength)
	assert.Equal(t, 0, p.GaugePosition)
	assert.Equal(t, ColorNone, p.Color)
	assert.Equal(t, MessageNormal, p.Message)
	assert.Empty(t, p.Text)
	assert.Equal(t, 0.0, p.Fraction())
}

func TestDerive_FreshAnonymousWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	snap := ratelimit.Snapshot{Limit: 60, Remaining: 60, ResetAt: now.Add(3600 * time.Second)}

	p := Derive(snap, true, now, 60)

	assert.True(t, p.Ready)
	assert.Equal(t, 60, p.GaugeLength)
	assert.Equal(t, 0, p.GaugePosition)
	assert.Equal(t, ColorNormal, p.Color)
	assert.Equal(t, MessageNormal, p.Message)
	assert.Equal(t, "3600", p.Text)
	assert.Equal(t, 60, p.Remaining)
}

func TestDerive_NearlyExhausted(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	snap := ratelimit.Snapshot{Limit: 5000, Remaining: 300, ResetAt: now.Add(90 * time.Second)}

	p := Derive(snap, true, now, 5000)

	assert.Equal(t, 5000, p.GaugeLength)
	assert.Equal(t, 4700, p.GaugePosition)
	assert.InDelta(t, 0.06, snap.FractionRemaining(), 1e-9)
	assert.Equal(t, ColorCritical, p.Color)
	assert.Equal(t, int64(90), p.SecondsToReset)
	assert.Equal(t, MessageImminent, p.Message)
	assert.Equal(t, "90", p.Text)
}

func TestDerive_ClampsUntrustedValues(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name string
		snap ratelimit.Snapshot
	}{
		{"remaining above limit", ratelimit.Snapshot{Limit: 60, Remaining: 90}},
		{"negative remaining", ratelimit.Snapshot{Limit: 60, Remaining: -10}},
		{"zero limit", ratelimit.Snapshot{Limit: 0, Remaining: 5}},
		{"negative limit", ratelimit.Snapshot{Limit: -1, Remaining: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Derive(tt.snap, true, now, 60)
			assert.GreaterOrEqual(t, p.GaugePosition, 0)
			assert.LessOrEqual(t, p.GaugePosition, p.GaugeLength)
			assert.GreaterOrEqual(t, p.Remaining, 0)
			assert.LessOrEqual(t, p.Remaining, p.GaugeLength)
			assert.GreaterOrEqual(t, p.Fraction(), 0.0)
			assert.LessOrEqual(t, p.Fraction(), 1.0)
		})
	}
}

func TestDerive_GaugePositionWithinLength(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	for limit := 0; limit <= 50; limit++ {
		for remaining := -5; remaining <= limit+5; remaining++ {
			p := Derive(ratelimit.Snapshot{Limit: limit, Remaining: remaining}, true, now, 60)
			if p.GaugePosition < 0 || p.GaugePosition > p.GaugeLength {
				t.Fatalf("limit=%d remaining=%d: position %d outside [0, %d]",
					limit, remaining, p.GaugePosition, p.GaugeLength)
			}
		}
	}
}

func TestDerive_ResetInThePast(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	snap := ratelimit.Snapshot{Limit: 60, Remaining: 10, ResetAt: now.Add(-30 * time.Second)}

	p := Derive(snap, true, now, 60)

	assert.Equal(t, int64(-30), p.SecondsToReset)
	assert.Equal(t, "-30", p.Text)
	assert.Equal(t, MessageImminent, p.Message)
}

func TestTierStrings(t *testing.T) {
	assert.Equal(t, "none", ColorNone.String())
	assert.Equal(t, "normal", ColorNormal.String())
	assert.Equal(t, "warning", ColorWarning.String())
	assert.Equal(t, "critical", ColorCritical.String())
	assert.Equal(t, "normal", MessageNormal.String())
	assert.Equal(t, "imminent", MessageImminent.String())
}
