package doctor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status   CheckStatus
		expected string
	}{
		{StatusPass, "pass"},
		{StatusWarn, "warn"},
		{StatusFail, "fail"},
		{CheckStatus(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestCheckResult_JSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "x", Status: StatusWarn, Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","status":"warn","message":"m"}`, string(data))
}

// mockCheck is a test implementation of Check.
type mockCheck struct {
	name     string
	category string
	result   CheckResult
	runs     int
}

func (m *mockCheck) Name() string     { return m.name }
func (m *mockCheck) Category() string { return m.category }
func (m *mockCheck) Run(context.Context) CheckResult {
	m.runs++
	return m.result
}

func TestRunAll(t *testing.T) {
	first := &mockCheck{name: "check1", category: "TEST", result: CheckResult{Name: "check1", Status: StatusPass}}
	second := &mockCheck{name: "check2", category: "TEST", result: CheckResult{Name: "check2", Status: StatusFail}}

	results := RunAll(context.Background(), []Check{first, second})

	require.Len(t, results, 2)
	assert.Equal(t, "check1", results[0].Name)
	assert.Equal(t, StatusFail, results[1].Status)
	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 1, second.runs)
}

func TestCountsAndSummary(t *testing.T) {
	pass := CheckResult{Status: StatusPass}
	warn := CheckResult{Status: StatusWarn}
	fail := CheckResult{Status: StatusFail}

	assert.Equal(t, "Everything looks good", Summary([]CheckResult{pass, pass}))
	assert.False(t, HasIssues([]CheckResult{pass}))
	assert.False(t, HasFailures([]CheckResult{pass, warn}))

	results := []CheckResult{pass, warn, fail}
	assert.True(t, HasIssues(results))
	assert.True(t, HasFailures(results))
	assert.Equal(t, "2 issues found", Summary(results))
	assert.Equal(t, "1 issue found", Summary([]CheckResult{warn}))

	counts := CountByStatus(results)
	assert.Equal(t, 1, counts[StatusPass])
	assert.Equal(t, 1, counts[StatusWarn])
	assert.Equal(t, 1, counts[StatusFail])
}

func TestCheckStatus_UnmarshalText(t *testing.T) {
	var r CheckResult
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","status":"fail"}`), &r))
	assert.Equal(t, StatusFail, r.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"maybe"}`), &r))
}
