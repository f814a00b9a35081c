package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// runCheck creates a command to submit a URL for checking
func runCheck(client *APIClient, url string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Check(url)
		return CheckCompleteMsg{
			Result: result,
			Err:    err,
		}
	}
}

// fetchEvidenceCount creates a command to fetch the evidence store size
func fetchEvidenceCount(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		count, err := client.EvidenceCount()
		return EvidenceCountMsg{
			Count: count,
			Err:   err,
		}
	}
}
