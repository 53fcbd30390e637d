// Package monitor implements the live rate limit gauge.
//
// Two loops share a single State:
//
//	Poller   - fetches the quota every poll interval and is the only writer
//	Renderer - derives a Presentation about 30 times per second and draws it
//
// Data flows one way, Poller → State → Renderer. The renderer never waits on
// a fetch; it may show a snapshot up to one poll interval old. Failed fetches
// leave the previous snapshot in place so the gauge keeps showing the last
// known good data.
//
// # Derivation
//
// Each frame is a pure function of the latest snapshot and the current time
// (see Derive):
//
//	gauge length   = limit
//	gauge position = used, clamped to [0, limit]
//	color tier     = critical (≤ 8% left), warning (≤ 50% left), normal
//	message tier   = imminent when the reset is less than 120s away
//
// Before the first snapshot the gauge is sized to the credential's assumed
// capacity and drawn empty.
//
// # Displays
//
// The Display interface decouples derivation from drawing:
//
//	TeaDisplay  - pushes frames into a Bubble Tea program running Model
//	LineDisplay - writes a single status line, for pipes and dumb terminals
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	?           - Toggle help overlay
//	Esc         - Close help
package monitor
