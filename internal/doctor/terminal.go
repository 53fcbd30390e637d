package doctor

import (
	"context"
)

// TerminalCheck reports which display the monitor will use.
type TerminalCheck struct {
	IsTTY   bool
	NoColor bool
}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return "TERMINAL" }

func (c *TerminalCheck) Run(context.Context) CheckResult {
	if !c.IsTTY {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "stdout is not a terminal, the monitor will print status lines",
			Suggestion: "Run grlm directly in a terminal for the full-screen gauge",
		}
	}

	msg := "Full-screen gauge available"
	if c.NoColor {
		msg += " (colors disabled)"
	}
	return CheckResult{Name: c.Name(), Status: StatusPass, Message: msg}
}
