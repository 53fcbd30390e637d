package monitor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/grlm/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		PollInterval: 10 * time.Second,
		Auth:         ratelimit.Anonymous(),
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, testConfig().Validate())

	cfg := testConfig()
	cfg.PollInterval = 500 * time.Millisecond
	assert.Error(t, cfg.Validate())

	cfg.PollInterval = 0
	assert.Error(t, cfg.Validate())
}

func TestNewState(t *testing.T) {
	s := NewState(testConfig())

	_, ok := s.ReadSnapshot()
	assert.False(t, ok, "no snapshot before the first fetch")
	assert.Equal(t, 10*time.Second, s.PollInterval())
	assert.Equal(t, ratelimit.AuthAnonymous, s.AuthMode().Kind)
	assert.Equal(t, ratelimit.ResourceCore, s.Resource())
	assert.Equal(t, FetchStatus{}, s.Status())
}

func TestState_ReplaceAndFailure(t *testing.T) {
	s := NewState(testConfig())
	clock := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return clock }

	snap := ratelimit.Snapshot{Limit: 60, Remaining: 42, ResetAt: clock.Add(time.Hour)}
	s.ReplaceSnapshot(snap)

	got, ok := s.ReadSnapshot()
	require.True(t, ok)
	assert.Equal(t, snap, got)
	assert.Equal(t, clock, s.Status().LastSuccess)

	clock = clock.Add(10 * time.Second)
	boom := errors.New("boom")
	s.RecordFailure(boom)
	s.RecordFailure(boom)

	got, ok = s.ReadSnapshot()
	require.True(t, ok)
	assert.Equal(t, snap, got, "failure keeps the previous snapshot")

	st := s.Status()
	assert.Equal(t, 2, st.Failures)
	assert.Equal(t, boom, st.LastError)
	assert.True(t, st.Stale())
	assert.Equal(t, clock, st.LastAttempt)
	assert.Equal(t, clock.Add(-10*time.Second), st.LastSuccess)

	s.ReplaceSnapshot(snap)
	st = s.Status()
	assert.Equal(t, 0, st.Failures)
	assert.Nil(t, st.LastError)
	assert.False(t, st.Stale())
}

// Every committed snapshot satisfies Remaining == Limit - k for its own k, so
// a torn read would show a Remaining that belongs to a different Limit.
func TestState_ConcurrentReadersNeverSeeTornSnapshots(t *testing.T) {
	s := NewState(testConfig())

	const writers = 8
	const readers = 8
	const iterations = 2000

	committed := func(w, i int) ratelimit.Snapshot {
		limit := 1000 + w*10000 + i
		return ratelimit.Snapshot{
			Limit:     limit,
			Remaining: limit - w,
			ResetAt:   time.Unix(int64(limit), 0),
		}
	}

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				s.ReplaceSnapshot(committed(w, i))
			}
		}(w)
	}

	var mu sync.Mutex
	var torn []ratelimit.Snapshot
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				snap, ok := s.ReadSnapshot()
				if !ok {
					continue
				}
				w := (snap.Limit - 1000) / 10000
				idx := (snap.Limit - 1000) % 10000
				if snap != committed(w, idx) || snap.Remaining > snap.Limit {
					mu.Lock()
					torn = append(torn, snap)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, torn)
}
