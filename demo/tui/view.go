package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("📰 Credibility Check"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Evidence store info
	if m.EvidenceCount >= 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("📚 Evidence store: %d documents", m.EvidenceCount)))
		b.WriteString("\n\n")
	}

	// Results
	if m.State == StateComplete && m.Result != nil {
		b.WriteString(BoxStyle.Render(m.formatResult()))
		b.WriteString("\n\n")
	}

	// Help text
	switch m.State {
	case StateInput:
		b.WriteString(InfoStyle.Render(TextFooterInput))
	case StateChecking:
		b.WriteString(InfoStyle.Render(TextFooterChecking))
	default:
		b.WriteString(InfoStyle.Render(TextFooterDone))
	}

	return b.String()
}

// formatResult formats a finished check for display
func (m Model) formatResult() string {
	result := m.Result
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Credibility Verdict"))
	b.WriteString("\n\n")

	if result.Score != nil {
		b.WriteString(fmt.Sprintf("Score: %s\n", ScoreStyle(*result.Score).Render(fmt.Sprintf("%d / 100", *result.Score))))
	} else {
		b.WriteString(fmt.Sprintf("Score: %s\n", WarningStyle.Render("unavailable")))
	}
	b.WriteString(fmt.Sprintf("Reason: %s\n\n", result.Reason))

	if len(result.Documents) > 0 {
		b.WriteString(fmt.Sprintf("Evidence snippets used: %d\n", len(result.Documents)))
		for _, link := range result.Links {
			b.WriteString(InfoStyle.Render("  " + link))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if result.Article != "" {
		articlePreview := result.Article
		if len(articlePreview) > 200 {
			articlePreview = articlePreview[:200] + "..."
		}
		b.WriteString(fmt.Sprintf("Article Preview:\n%s\n", InfoStyle.Render(articlePreview)))
	}

	return b.String()
}
