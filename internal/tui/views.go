package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/spamsift/internal/cli"
	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render("📱 SMS Spam Detector"),
		m.theme.Subtitle.Render("Rule-based patterns first, statistical model (TF-IDF + linear SVM) second."),
		"",
		m.input.View(),
		m.renderExampleHint(),
		m.renderStatus(),
	}

	if m.verdict != nil {
		sections = append(sections, m.renderVerdict(m.verdict))
	}

	sections = append(sections,
		m.renderStats(),
		m.help.View(m.keymap),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderExampleHint() string {
	if m.exampleIdx < 0 {
		return m.theme.StatusIdle.Render("Press tab to load an example message.")
	}
	return m.theme.StatusIdle.Render(fmt.Sprintf("Example %d of %d", m.exampleIdx+1, len(m.config.Examples)))
}

func (m Model) renderStatus() string {
	switch {
	case m.predicting:
		return m.spinner.View() + " Classifying..."
	case m.warning != "":
		return m.theme.StatusWarn.Render(cli.WarningIcon + " " + m.warning)
	case m.lastError != nil:
		return m.theme.StatusErr.Render(cli.ErrorIcon + " " + common.UserMessage(m.lastError))
	case m.notice != "":
		return m.theme.StatusInfo.Render(m.notice)
	}
	return ""
}

func (m Model) renderVerdict(v *model.Verdict) string {
	var headline string
	if v.IsSpam() {
		headline = m.theme.SpamLabel.Render("The message is classified as SPAM " + cli.SpamIcon)
	} else {
		headline = m.theme.HamLabel.Render("The message is classified as HAM (not spam) " + cli.HamIcon)
	}

	var b strings.Builder
	b.WriteString(headline)
	b.WriteString("\n\n")
	b.WriteString(m.theme.Bold.Render("Explanation"))
	b.WriteString("\n")
	b.WriteString(cli.FormatExplanation(v, m.config.GroupOrder))

	return m.theme.RoundedBox.Render(b.String())
}

func (m Model) renderStats() string {
	total := m.stats.spam + m.stats.ham
	if total == 0 {
		return ""
	}
	return m.theme.Subtitle.Render(fmt.Sprintf("Session: %d checked, %d spam, %d ham", total, m.stats.spam, m.stats.ham))
}
