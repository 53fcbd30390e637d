package doctor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/monitor"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
)

// QuotaFetcher is the subset of ratelimit.Client the API checks use.
type QuotaFetcher interface {
	FetchAll(ctx context.Context, auth ratelimit.AuthMode) (ratelimit.Quotas, error)
}

// probe performs the /rate_limit request once and shares the outcome
// between the checks that need it.
type probe struct {
	fetcher QuotaFetcher
	auth    ratelimit.AuthMode
	timeout time.Duration

	once    sync.Once
	quotas  ratelimit.Quotas
	err     error
	latency time.Duration
}

func (p *probe) run(ctx context.Context) (ratelimit.Quotas, time.Duration, error) {
	p.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		start := time.Now()
		p.quotas, p.err = p.fetcher.FetchAll(ctx, p.auth)
		p.latency = time.Since(start)
	})
	return p.quotas, p.latency, p.err
}

// CredentialsCheck reports the auth mode and its quota.
type CredentialsCheck struct {
	Auth ratelimit.AuthMode
}

func (c *CredentialsCheck) Name() string     { return "credentials" }
func (c *CredentialsCheck) Category() string { return "AUTH" }

func (c *CredentialsCheck) Run(context.Context) CheckResult {
	switch c.Auth.Kind {
	case ratelimit.AuthAnonymous:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Anonymous requests are limited to %d per hour", ratelimit.AnonymousCapacity),
			Suggestion: "Pass --access-token (or set GRLM_ACCESS_TOKEN) for the authenticated quota",
		}
	case ratelimit.AuthBasic:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Using basic auth as " + c.Auth.Login,
			Suggestion: "GitHub.com rejects account passwords for API calls; use a token as the password or --access-token",
		}
	default:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Using " + c.Auth.String(),
		}
	}
}

// APIReachableCheck performs one /rate_limit request.
type APIReachableCheck struct {
	probe *probe
}

func (c *APIReachableCheck) Name() string     { return "api_reachable" }
func (c *APIReachableCheck) Category() string { return "API" }

func (c *APIReachableCheck) Run(ctx context.Context) CheckResult {
	_, latency, err := c.probe.run(ctx)
	if err != nil {
		result := CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Summary(err),
			Suggestion: "Check your network connection and --api-url",
		}
		if errors.IsCode(err, errors.ErrAuth) {
			result.Suggestion = "Check --login/--password or --access-token"
		}
		return result
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("GET /rate_limit answered in %s", latency.Round(time.Millisecond)),
	}
}

// QuotaCheck reports how much of the monitored bucket is left.
type QuotaCheck struct {
	Resource ratelimit.Resource
	probe    *probe
	now      func() time.Time
}

func (c *QuotaCheck) Name() string     { return "quota_" + string(c.Resource) }
func (c *QuotaCheck) Category() string { return "QUOTA" }

func (c *QuotaCheck) Run(ctx context.Context) CheckResult {
	quotas, _, err := c.probe.run(ctx)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: "Quota unknown: the API request failed",
		}
	}

	if !quotas.Has(c.Resource) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("The API response has no %s quota", c.Resource),
			Suggestion: "Pick another --resource, or check that --api-url points at a GitHub API root",
		}
	}

	snap := quotas.Pick(c.Resource)
	secs := snap.SecondsToReset(c.now())
	msg := fmt.Sprintf("%d of %d %s requests left, resets in %ds", snap.Remaining, snap.Limit, c.Resource, secs)

	switch monitor.ClassifyColor(snap) {
	case monitor.ColorCritical:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    msg,
			Suggestion: "Wait for the window to reset before running heavy jobs",
		}
	case monitor.ColorWarning:
		return CheckResult{Name: c.Name(), Status: StatusWarn, Message: msg}
	default:
		return CheckResult{Name: c.Name(), Status: StatusPass, Message: msg}
	}
}

// NewAPIChecks returns the AUTH, API and QUOTA checks. They share a single
// request to the API.
func NewAPIChecks(fetcher QuotaFetcher, auth ratelimit.AuthMode, resource ratelimit.Resource, timeout time.Duration) []Check {
	p := &probe{fetcher: fetcher, auth: auth, timeout: timeout}
	return []Check{
		&CredentialsCheck{Auth: auth},
		&APIReachableCheck{probe: p},
		&QuotaCheck{Resource: resource, probe: p, now: time.Now},
	}
}
