package statmodel

import (
	"fmt"
	"os"
	"sync"

	"github.com/Veraticus/spamsift/internal/common"
)

// Loader reads the vectorizer and model files at most once. Every call to
// Load after the first returns the same artifacts or the same error.
type Loader struct {
	vectorizer     *TFIDFVectorizer
	model          *LinearModel
	err            error
	modelPath      string
	vectorizerPath string
	once           sync.Once
}

// NewLoader creates a loader for the given artifact paths.
func NewLoader(modelPath, vectorizerPath string) *Loader {
	return &Loader{
		modelPath:      modelPath,
		vectorizerPath: vectorizerPath,
	}
}

// Load returns the loaded vectorizer and model. Failures wrap
// common.ErrModelUnavailable.
func (l *Loader) Load() (*TFIDFVectorizer, *LinearModel, error) {
	l.once.Do(func() {
		l.vectorizer, l.model, l.err = l.load()
	})
	return l.vectorizer, l.model, l.err
}

func (l *Loader) load() (*TFIDFVectorizer, *LinearModel, error) {
	if l.modelPath == "" || l.vectorizerPath == "" {
		return nil, nil, fmt.Errorf("%w: model and vectorizer paths must both be set", common.ErrModelUnavailable)
	}

	vf, err := os.Open(l.vectorizerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrModelUnavailable, err)
	}
	defer func() {
		_ = vf.Close()
	}()

	vec, err := ReadVectorizer(vf)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", common.ErrModelUnavailable, l.vectorizerPath, err)
	}

	mf, err := os.Open(l.modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrModelUnavailable, err)
	}
	defer func() {
		_ = mf.Close()
	}()

	lin, err := ReadLinearModel(mf)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", common.ErrModelUnavailable, l.modelPath, err)
	}

	return vec, lin, nil
}
