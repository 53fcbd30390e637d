package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/grlm/internal/errors"
)

func TestDoctor_Text(t *testing.T) {
	isolate(t)
	srv := newAPIServer(t, okHandler(time.Now().Add(time.Hour)))

	out, err := runCmd(t, context.Background(), "doctor", "--no-color", "--api-url", srv.URL, "-t", "ghp_abcdefgh1234")
	require.NoError(t, err)

	for _, want := range []string{"grlm diagnostic report", "CONFIG", "AUTH", "API", "QUOTA", "TERMINAL", "4000 of 5000 core requests left"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "1 issue found", "not a terminal under test")
}

func TestDoctor_JSONWithFailure(t *testing.T) {
	isolate(t)
	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	out, err := runCmd(t, context.Background(), "doctor", "--json", "--api-url", srv.URL, "-t", "bad")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	var report DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Summary.AllClear)
	assert.Equal(t, 2, report.Summary.Fail, "api and quota checks fail")

	names := make([]string, 0, len(report.Categories))
	for _, c := range report.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"CONFIG", "AUTH", "API", "QUOTA", "TERMINAL"}, names)
}
