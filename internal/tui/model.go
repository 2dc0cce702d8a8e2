// Package tui implements the interactive prediction screen.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/tui/themes"
)

// sessionStats counts predictions made since the screen opened.
type sessionStats struct {
	spam int
	ham  int
}

// Model holds the TUI state.
type Model struct {
	ctx        context.Context
	lastError  error
	verdict    *model.Verdict
	theme      themes.Theme
	warning    string
	notice     string
	keymap     KeyMap
	config     Config
	help       help.Model
	spinner    spinner.Model
	input      textarea.Model
	stats      sessionStats
	exampleIdx int
	width      int
	height     int
	predicting bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	input := textarea.New()
	input.Placeholder = "Type your message..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(5)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.StatusInfo

	m := Model{
		ctx:        contextOrBackground(ctx),
		config:     cfg,
		theme:      cfg.Theme,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		input:      input,
		exampleIdx: -1,
		width:      cfg.Width,
		height:     cfg.Height,
	}
	m.resize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}

	case predictionMsg:
		m.predicting = false
		if msg.err != nil {
			m.lastError = msg.err
			m.verdict = nil
			return m, nil
		}
		m.verdict = msg.verdict
		if msg.verdict.IsSpam() {
			m.stats.spam++
		} else {
			m.stats.ham++
		}
		return m, m.save(msg.text, msg.verdict)

	case savedMsg:
		if msg.err != nil {
			m.notice = "History not recorded: " + msg.err.Error()
		} else if msg.record != nil {
			m.notice = "Saved as " + msg.record.ID
		}
		return m, nil

	case spinner.TickMsg:
		if !m.predicting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes bound keys. Unbound keys go to the text area.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Predict):
		return m.startPrediction(), true

	case key.Matches(msg, m.keymap.NextExample):
		m.cycleExample(1)
		return nil, true

	case key.Matches(msg, m.keymap.PrevExample):
		m.cycleExample(-1)
		return nil, true

	case key.Matches(msg, m.keymap.Clear):
		m.input.Reset()
		m.clearResult()
		m.exampleIdx = -1
		return nil, true

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}
	return nil, false
}

func (m *Model) startPrediction() tea.Cmd {
	if m.predicting {
		return nil
	}

	text := strings.TrimSpace(m.input.Value())
	m.clearResult()
	if text == "" {
		m.warning = common.UserMessage(common.ErrInvalidInput)
		return nil
	}
	if m.config.Classifier == nil {
		m.lastError = common.ErrModelUnavailable
		return nil
	}

	m.predicting = true
	return tea.Batch(m.spinner.Tick, m.predict(text))
}

func (m *Model) cycleExample(step int) {
	n := len(m.config.Examples)
	if n == 0 {
		return
	}
	if m.exampleIdx < 0 && step < 0 {
		m.exampleIdx = n - 1
	} else {
		m.exampleIdx = ((m.exampleIdx+step)%n + n) % n
	}
	m.input.SetValue(m.config.Examples[m.exampleIdx])
	m.clearResult()
}

func (m *Model) clearResult() {
	m.verdict = nil
	m.lastError = nil
	m.warning = ""
	m.notice = ""
}

// resize adjusts component sizes to the terminal.
func (m *Model) resize() {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	m.input.SetWidth(w)
	m.help.Width = m.width
}
