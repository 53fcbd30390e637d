package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/grlm/internal/config"
	"github.com/rileyhilliard/grlm/internal/monitor"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
	"github.com/rileyhilliard/grlm/internal/ui"
)

// statusTimeout bounds the single request made by status.
const statusTimeout = config.DefaultFrequency * time.Second

// QuotaStatus is one bucket in the --json output.
type QuotaStatus struct {
	Resource       string    `json:"resource"`
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	Used           int       `json:"used"`
	ResetAt        time.Time `json:"reset_at"`
	SecondsToReset int64     `json:"seconds_to_reset"`
	Tier           string    `json:"tier"`
}

// StatusOutput is the --json payload of the status command.
type StatusOutput struct {
	Auth      string        `json:"auth"`
	APIURL    string        `json:"api_url"`
	Resources []QuotaStatus `json:"resources"`
}

func newStatusCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show every quota bucket once and exit",
		Long: `Fetch /rate_limit once and print the core, search and graphql buckets.

Examples:
  grlm status
  grlm status --access-token $GITHUB_TOKEN
  grlm status --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func (a *app) runStatus(cmd *cobra.Command, asJSON bool) error {
	out := cmd.OutOrStdout()

	fail := func(err error) error {
		if asJSON {
			_ = WriteJSONFromError(out, err)
		}
		return err
	}

	if err := a.resolvePassword(cmd); err != nil {
		return fail(err)
	}
	if err := config.Validate(a.cfg); err != nil {
		return fail(err)
	}

	auth := a.cfg.AuthMode()
	client := newClient(a.cfg, ratelimit.ResourceCore)

	ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
	defer cancel()

	quotas, err := client.FetchAll(ctx, auth)
	if err != nil {
		return fail(err)
	}

	now := time.Now()
	if asJSON {
		return WriteJSONSuccess(out, buildStatusOutput(a.cfg, auth, quotas, now))
	}

	fmt.Fprintf(out, "%s  %s\n\n", ui.SymbolSuccess, auth)
	fmt.Fprintln(out, ui.RenderQuotaTable(buildQuotaRows(quotas, now)))
	return nil
}

func buildStatusOutput(cfg *config.Config, auth ratelimit.AuthMode, q ratelimit.Quotas, now time.Time) StatusOutput {
	out := StatusOutput{Auth: auth.String(), APIURL: cfg.APIURL}
	for _, r := range ratelimit.Resources {
		if !q.Has(r) {
			continue
		}
		snap := q.Pick(r)
		out.Resources = append(out.Resources, QuotaStatus{
			Resource:       string(r),
			Limit:          snap.Limit,
			Remaining:      snap.Remaining,
			Used:           snap.Used(),
			ResetAt:        snap.ResetAt.UTC(),
			SecondsToReset: snap.SecondsToReset(now),
			Tier:           monitor.ClassifyColor(snap).String(),
		})
	}
	return out
}

func buildQuotaRows(q ratelimit.Quotas, now time.Time) []ui.QuotaRow {
	rows := make([]ui.QuotaRow, 0, len(ratelimit.Resources))
	for _, r := range ratelimit.Resources {
		if !q.Has(r) {
			continue
		}
		snap := q.Pick(r)
		rows = append(rows, ui.QuotaRow{
			Resource:  string(r),
			Limit:     snap.Limit,
			Remaining: snap.Remaining,
			Fraction:  snap.FractionRemaining(),
			Tier:      monitor.ClassifyColor(snap).BarTier(),
			ResetIn:   formatResetIn(snap.SecondsToReset(now)),
		})
	}
	return rows
}

// formatResetIn renders seconds until reset as e.g. "42m05s".
func formatResetIn(secs int64) string {
	if secs <= 0 {
		return "now"
	}
	d := time.Duration(secs) * time.Second
	if d < time.Minute {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}
