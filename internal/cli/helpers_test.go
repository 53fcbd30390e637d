package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/grlm/internal/config"
)

// isolate points HOME at an empty directory and clears GRLM_* variables.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range config.Keys {
		name := config.EnvPrefix + "_" + strings.ToUpper(key)
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func rateLimitBody(reset time.Time) string {
	r := reset.Unix()
	return fmt.Sprintf(`{
  "resources": {
    "core":    {"limit": 5000, "remaining": 4000, "reset": %d},
    "search":  {"limit": 30,   "remaining": 2,    "reset": %d},
    "graphql": {"limit": 5000, "remaining": 2000, "reset": %d}
  }
}`, r, r, r)
}

func newAPIServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func okHandler(reset time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rateLimitBody(reset))
	}
}
