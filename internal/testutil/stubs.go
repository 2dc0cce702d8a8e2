package testutil

import (
	"sync"

	"github.com/Veraticus/spamsift/internal/model"
)

// StubVectorizer returns a fixed-size empty vector and records every call.
type StubVectorizer struct {
	Err   error
	texts []string
	Dim   int
	mu    sync.Mutex
}

// Transform records text and returns an empty vector of size Dim.
func (s *StubVectorizer) Transform(text string) (model.FeatureVector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.texts = append(s.texts, text)
	if s.Err != nil {
		return model.FeatureVector{}, s.Err
	}
	return model.FeatureVector{Dim: s.Dim}, nil
}

// Calls returns the number of Transform calls.
func (s *StubVectorizer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.texts)
}

// Texts returns the texts passed to Transform, in call order.
func (s *StubVectorizer) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

// StubPredictor returns a canned label and counts calls.
type StubPredictor struct {
	Err   error
	Label string
	calls int
	mu    sync.Mutex
}

// Predict returns Label, or Err when set.
func (s *StubPredictor) Predict(_ model.FeatureVector) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.Err != nil {
		return "", s.Err
	}
	return s.Label, nil
}

// Calls returns the number of Predict calls.
func (s *StubPredictor) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
