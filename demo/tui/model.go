package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the application state machine
type State string

const (
	StateInput    State = "input"
	StateChecking State = "checking"
	StateComplete State = "complete"
	StateError    State = "error"
)

// Model represents the TUI client state
type Model struct {
	APIClient *APIClient

	State  State
	Input  string
	Result *CheckResult
	Err    error

	// EvidenceCount is the store size reported by the server; -1 while
	// unknown or when the server has no store attached.
	EvidenceCount int
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{
		APIClient:     NewAPIClient(serverURL),
		State:         StateInput,
		EvidenceCount: -1,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return fetchEvidenceCount(m.APIClient)
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateInput:
		return HighlightStyle.Render("Enter an article URL") + "\n\n" +
			InfoStyle.Render("> ") + m.Input + InfoStyle.Render("█")
	case StateChecking:
		return StatusStyle.Render("⏳ Checking " + m.Input + " ...")
	case StateComplete:
		return HighlightStyle.Render("✅ Check complete")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %s", errMsg))
	default:
		return ""
	}
}
