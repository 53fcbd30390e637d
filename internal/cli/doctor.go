package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/grlm/internal/doctor"
	"github.com/rileyhilliard/grlm/internal/errors"
	"github.com/rileyhilliard/grlm/internal/ratelimit"
	"github.com/rileyhilliard/grlm/internal/ui"
)

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

func newDoctorCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check config, credentials and API access",
		Long: `Run diagnostic checks: config validity, credentials, a single
/rate_limit request, the remaining quota and terminal support.

Exits non-zero when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

// collectChecks gathers the diagnostic checks for the loaded config.
func (a *app) collectChecks(cmd *cobra.Command) []doctor.Check {
	cfg := a.cfg
	checks := doctor.NewConfigChecks(cfg)

	resource, err := ratelimit.ParseResource(cfg.Resource)
	if err != nil {
		resource = ratelimit.ResourceCore
	}
	client := newClient(cfg, resource)
	checks = append(checks, doctor.NewAPIChecks(client, cfg.AuthMode(), resource, statusTimeout)...)

	checks = append(checks, &doctor.TerminalCheck{
		IsTTY:   writerIsTerminal(cmd.OutOrStdout()),
		NoColor: !ui.ColorsEnabled(),
	})
	return checks
}

func (a *app) runDoctor(cmd *cobra.Command, asJSON bool) error {
	checks := a.collectChecks(cmd)
	results := doctor.RunAll(cmd.Context(), checks)

	out := cmd.OutOrStdout()
	var err error
	if asJSON {
		err = outputDoctorJSON(out, checks, results)
	} else {
		outputDoctorText(out, checks, results)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrConfig,
			doctor.Summary(results),
			"Fix the failed checks above and run 'grlm doctor' again")
	}
	return nil
}

// groupResults returns result indices per category in report order.
func groupResults(checks []doctor.Check) map[string][]int {
	grouped := make(map[string][]int)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], i)
	}
	return grouped
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := groupResults(checks)

	output := DoctorOutput{}
	for _, cat := range doctor.Categories {
		indices, ok := grouped[cat]
		if !ok {
			continue
		}
		co := CategoryOutput{Name: cat}
		for _, idx := range indices {
			co.Results = append(co.Results, results[idx])
		}
		output.Categories = append(output.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("grlm diagnostic report"))
	fmt.Fprintln(w)

	grouped := groupResults(checks)
	for _, cat := range doctor.Categories {
		indices, ok := grouped[cat]
		if !ok {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(cat))
		for _, idx := range indices {
			r := results[idx]
			var symbol string
			switch r.Status {
			case doctor.StatusPass:
				symbol = successStyle.Render(ui.SymbolSuccess)
			case doctor.StatusWarn:
				symbol = warnStyle.Render(ui.SymbolWarning)
			default:
				symbol = errorStyle.Render(ui.SymbolFail)
			}
			fmt.Fprintf(w, "  %s %s\n", symbol, r.Message)
			if r.Suggestion != "" && r.Status != doctor.StatusPass {
				fmt.Fprintf(w, "    %s\n", mutedStyle.Render(r.Suggestion))
			}
		}
		fmt.Fprintln(w)
	}

	summary := doctor.Summary(results)
	if doctor.HasIssues(results) {
		fmt.Fprintln(w, warnStyle.Render(summary))
	} else {
		fmt.Fprintln(w, successStyle.Render(summary))
	}
}
