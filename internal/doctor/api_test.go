package doctor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

type fakeFetcher struct {
	quotas ratelimit.Quotas
	err    error
	calls  int
}

func (f *fakeFetcher) FetchAll(ctx context.Context, auth ratelimit.AuthMode) (ratelimit.Quotas, error) {
	f.calls++
	return f.quotas, f.err
}

func TestCredentialsCheck(t *testing.T) {
	tests := []struct {
		auth ratelimit.AuthMode
		want CheckStatus
	}{
		{ratelimit.Anonymous(), StatusWarn},
		{ratelimit.BasicLogin("octocat", "pw"), StatusWarn},
		{ratelimit.Token("ghp_abcdef"), StatusPass},
	}
	for _, tc := range tests {
		t.Run(tc.auth.Kind.String(), func(t *testing.T) {
			res := (&CredentialsCheck{Auth: tc.auth}).Run(context.Background())
			assert.Equal(t, tc.want, res.Status)
			assert.NotContains(t, res.Message, "ghp_abcdef")
		})
	}
}

func TestAPIChecks_ShareOneRequest(t *testing.T) {
	now := time.Now()
	f := &fakeFetcher{quotas: ratelimit.Quotas{
		Core:   ratelimit.Snapshot{Limit: 5000, Remaining: 4900, ResetAt: now.Add(time.Hour)},
		Search: ratelimit.Snapshot{Limit: 30, Remaining: 1, ResetAt: now.Add(time.Minute)},
	}}

	checks := NewAPIChecks(f, ratelimit.Token("tok"), ratelimit.ResourceCore, time.Second)
	results := RunAll(context.Background(), checks)

	require.Len(t, results, 3)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, StatusPass, results[1].Status)
	assert.Contains(t, results[1].Message, "answered in")
	assert.Equal(t, "quota_core", results[2].Name)
	assert.Equal(t, StatusPass, results[2].Status)
	assert.Contains(t, results[2].Message, "4900 of 5000 core requests left")
}

func TestQuotaCheck_Tiers(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tests := []struct {
		remaining int
		want      CheckStatus
	}{
		{5000, StatusPass},
		{2500, StatusWarn},
		{400, StatusFail},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.remaining), func(t *testing.T) {
			p := &probe{
				fetcher: &fakeFetcher{quotas: ratelimit.Quotas{
					GraphQL: ratelimit.Snapshot{Limit: 5000, Remaining: tc.remaining, ResetAt: now.Add(90 * time.Second)},
				}},
				timeout: time.Second,
			}
			res := (&QuotaCheck{Resource: ratelimit.ResourceGraphQL, probe: p, now: func() time.Time { return now }}).Run(context.Background())
			assert.Equal(t, tc.want, res.Status)
			assert.Contains(t, res.Message, "resets in 90s")
		})
	}
}

func TestQuotaCheck_MissingBucket(t *testing.T) {
	p := &probe{
		fetcher: &fakeFetcher{quotas: ratelimit.Quotas{
			Core:    ratelimit.Snapshot{Limit: 5000, Remaining: 5000},
			Missing: []ratelimit.Resource{ratelimit.ResourceGraphQL},
		}},
		timeout: time.Second,
	}

	res := (&QuotaCheck{Resource: ratelimit.ResourceGraphQL, probe: p, now: time.Now}).Run(context.Background())
	assert.Equal(t, StatusFail, res.Status)
	assert.Contains(t, res.Message, "no graphql quota")
	assert.Contains(t, res.Suggestion, "--resource")
}

func TestAPIChecks_Failure(t *testing.T) {
	f := &fakeFetcher{err: errors.New(errors.ErrAuth, "GitHub rejected the credentials", "")}

	results := RunAll(context.Background(), NewAPIChecks(f, ratelimit.BasicLogin("octocat", "pw"), ratelimit.ResourceCore, time.Second))

	assert.Equal(t, StatusFail, results[1].Status)
	assert.Contains(t, results[1].Message, "rejected the credentials")
	assert.Contains(t, results[1].Suggestion, "--access-token")
	assert.Equal(t, StatusFail, results[2].Status)
	assert.Equal(t, 1, f.calls)
}

func TestTerminalCheck(t *testing.T) {
	assert.Equal(t, StatusWarn, (&TerminalCheck{}).Run(context.Background()).Status)

	res := (&TerminalCheck{IsTTY: true, NoColor: true}).Run(context.Background())
	assert.Equal(t, StatusPass, res.Status)
	assert.Contains(t, res.Message, "colors disabled")
}
