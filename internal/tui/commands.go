package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/spamsift/internal/model"
)

// predict classifies text off the UI goroutine.
func (m Model) predict(text string) tea.Cmd {
	ctx, classifier := m.ctx, m.config.Classifier
	return func() tea.Msg {
		verdict, err := classifier.Classify(ctx, text)
		return predictionMsg{text: text, verdict: verdict, err: err}
	}
}

// save records a verdict in the history store, if one is configured.
func (m Model) save(text string, verdict *model.Verdict) tea.Cmd {
	if m.config.Storage == nil {
		return nil
	}
	ctx, store := m.ctx, m.config.Storage
	return func() tea.Msg {
		record, err := store.SaveVerdict(ctx, text, verdict)
		if err != nil {
			slog.Warn("Failed to record prediction", "error", err)
		}
		return savedMsg{record: record, err: err}
	}
}

// contextOrBackground guards against a nil context from callers.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
