// Package ratelimit talks to GitHub's rate limit endpoint.
//
// It defines the point-in-time Snapshot of a quota window, the AuthMode used
// to authenticate the request, and Client, which performs a single
// GET /rate_limit round trip and decodes the per-resource quotas.
//
// Requests to /rate_limit do not count against the caller's quota, so the
// endpoint can be polled at a fixed interval without consuming the budget
// being monitored.
package ratelimit
