package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case CheckCompleteMsg:
		return m.handleCheckComplete(msg)
	case EvidenceCountMsg:
		return m.handleEvidenceCount(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.State != StateChecking {
			m.State = StateInput
			m.Input = ""
			m.Result = nil
			m.Err = nil
		}
		return m, nil
	}

	switch m.State {
	case StateInput:
		return m.handleInputKey(msg)
	case StateComplete, StateError:
		// Any key starts a fresh input round; 'q' quits.
		if msg.String() == "q" {
			return m, tea.Quit
		}
		m.State = StateInput
		m.Input = ""
		m.Result = nil
		m.Err = nil
		return m, nil
	}
	return m, nil
}

// handleInputKey edits the URL being typed
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		url := strings.TrimSpace(m.Input)
		if url == "" {
			return m, nil
		}
		m.Input = url
		m.State = StateChecking
		return m, runCheck(m.APIClient, url)
	case tea.KeyBackspace:
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.Input += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

// handleCheckComplete processes check completion
func (m Model) handleCheckComplete(msg CheckCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Result = msg.Result
	m.State = StateComplete
	return m, nil
}

// handleEvidenceCount records the store size; failures just leave it unknown
func (m Model) handleEvidenceCount(msg EvidenceCountMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil {
		m.EvidenceCount = msg.Count
	}
	return m, nil
}
