package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Width limits for the gauge card
const (
	defaultCardWidth = 64
	maxCardWidth     = 96
	minCardWidth     = 32
)

// spinnerInterval is the frame rate of the waiting spinner.
const spinnerInterval = 150 * time.Millisecond

// Model is the Bubble Tea model for the gauge. It holds no monitor state of
// its own; every frame arrives as a frameMsg pushed by TeaDisplay.
type Model struct {
	frame    Presentation
	frames   int
	gauge    progress.Model
	spinner  spinner.Model
	width    int
	height   int
	quitting bool
	showHelp bool
}

// frameMsg carries one rendered Presentation into the Bubble Tea loop.
type frameMsg Presentation

// NewModel creates an empty gauge model.
func NewModel() Model {
	gauge := progress.New(
		progress.WithSolidFill(string(TierColor(ColorNone))),
		progress.WithoutPercentage(),
	)
	gauge.Width = defaultCardWidth - 4

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: WaitingSpinnerFrames, FPS: spinnerInterval}
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		gauge:   gauge,
		spinner: sp,
	}
}

// Init starts the waiting spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.gauge.Width = m.cardWidth() - 4

	case frameMsg:
		m.frame = Presentation(msg)
		m.frames++
		m.gauge.FullColor = string(TierColor(m.frame.Color))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the gauge.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Frame returns the most recently received presentation.
func (m Model) Frame() Presentation {
	return m.frame
}

// cardWidth sizes the card to the terminal within fixed bounds.
func (m Model) cardWidth() int {
	if m.width == 0 {
		return defaultCardWidth
	}
	w := m.width - 2
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}
