// Package ui provides terminal UI primitives for grlm's CLI output.
//
// It holds the shared color palette, status symbols, bar rendering used by
// the plain line display, and table rendering used by the status command.
// Styling is done with Lip Gloss.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Healthy quota
//	ColorError     (red)    - Critical quota, failures
//	ColorWarning   (yellow) - Quota at or below half
//	ColorMuted     (gray)   - Secondary text, no data yet
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
//
// # Bars
//
// Bars use block characters colored by tier:
//
//	ui.RenderTierBar(0.94, 20, ui.TierCritical)  // ██████████████████░░
package ui
