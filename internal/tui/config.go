package tui

import (
	"context"

	"github.com/Veraticus/spamsift/internal/cli"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/service"
	"github.com/Veraticus/spamsift/internal/tui/themes"
)

// Classifier labels a single message.
type Classifier interface {
	Classify(ctx context.Context, text string) (*model.Verdict, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Classifier Classifier
	Storage    service.Storage
	Examples   []string
	GroupOrder []string
	Width      int
	Height     int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Width:    80,
		Height:   24,
		Examples: cli.ExampleMessages,
	}
}

// WithClassifier sets the classifier used for predictions.
func WithClassifier(classifier Classifier) Option {
	return func(c *Config) {
		c.Classifier = classifier
	}
}

// WithStorage records every prediction in the history store.
func WithStorage(storage service.Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithExamples replaces the example messages cycled with tab.
func WithExamples(examples []string) Option {
	return func(c *Config) {
		c.Examples = examples
	}
}

// WithGroupOrder sets the order in which rule group hits are listed.
func WithGroupOrder(order []string) Option {
	return func(c *Config) {
		c.GroupOrder = order
	}
}
