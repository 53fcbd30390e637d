package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

func TestCollector_ObserveSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, ratelimit.ResourceCore)
	reset := time.Unix(1_700_000_000, 0)

	c.ObserveFetch(ratelimit.Snapshot{Limit: 5000, Remaining: 4200, ResetAt: reset}, nil, 120*time.Millisecond)

	assert.Equal(t, 5000.0, testutil.ToFloat64(c.limit))
	assert.Equal(t, 4200.0, testutil.ToFloat64(c.remaining))
	assert.Equal(t, 1_700_000_000.0, testutil.ToFloat64(c.resetTime))
	assert.Positive(t, testutil.ToFloat64(c.lastSuccess))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fetches.WithLabelValues("ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.fetchDuration))
}

func TestCollector_FailureKeepsGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, ratelimit.ResourceSearch)

	c.ObserveFetch(ratelimit.Snapshot{Limit: 30, Remaining: 29}, nil, time.Millisecond)
	c.ObserveFetch(ratelimit.Snapshot{}, errors.New(errors.ErrAuth, "bad credentials", ""), time.Millisecond)

	assert.Equal(t, 30.0, testutil.ToFloat64(c.limit))
	assert.Equal(t, 29.0, testutil.ToFloat64(c.remaining))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fetches.WithLabelValues("auth")))
}

func TestCollector_ResourceLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg, ratelimit.ResourceGraphQL)

	families, err := reg.Gather()
	assert.NoError(t, err)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var found bool
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "resource" {
					found = true
					assert.Equal(t, "graphql", lp.GetValue())
				}
			}
			assert.True(t, found, mf.GetName())
		}
	}
}

func TestFetchStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{errors.New(errors.ErrAuth, "x", ""), "auth"},
		{errors.New(errors.ErrDecode, "x", ""), "decode"},
		{errors.Wrap(fmt.Errorf("dial"), "x"), "fetch"},
		{fmt.Errorf("plain"), "error"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, fetchStatus(tc.err))
	}
}
