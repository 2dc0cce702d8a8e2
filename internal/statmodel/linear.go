package statmodel

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
)

// LinearSpec is the serialized form of a binary linear classifier such as a
// linear SVM. Classes holds the negative class first.
type LinearSpec struct {
	Classes   []string  `json:"classes"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// LinearModel scores a feature vector with w·x + b.
type LinearModel struct {
	classes   [2]string
	coef      []float64
	intercept float64
}

// NewLinearModel validates spec and builds a model from it.
func NewLinearModel(spec LinearSpec) (*LinearModel, error) {
	if len(spec.Classes) != 2 {
		return nil, fmt.Errorf("%w: expected 2 classes, got %d", common.ErrInvalidConfig, len(spec.Classes))
	}
	if len(spec.Coef) == 0 {
		return nil, fmt.Errorf("%w: model has no coefficients", common.ErrInvalidConfig)
	}

	return &LinearModel{
		classes:   [2]string{spec.Classes[0], spec.Classes[1]},
		coef:      spec.Coef,
		intercept: spec.Intercept,
	}, nil
}

// ReadLinearModel decodes a JSON model spec from r.
func ReadLinearModel(r io.Reader) (*LinearModel, error) {
	var spec LinearSpec
	if err := json.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: failed to decode model: %v", common.ErrInvalidConfig, err)
	}
	return NewLinearModel(spec)
}

// Dim returns the number of features the model expects.
func (m *LinearModel) Dim() int {
	return len(m.coef)
}

// Classes returns the negative and positive class labels.
func (m *LinearModel) Classes() (negative, positive string) {
	return m.classes[0], m.classes[1]
}

// Decision returns the signed distance of v from the separating hyperplane.
func (m *LinearModel) Decision(v model.FeatureVector) (float64, error) {
	if v.Dim != len(m.coef) {
		return 0, fmt.Errorf("%w: vector has %d features, model expects %d",
			common.ErrVectorizationMismatch, v.Dim, len(m.coef))
	}
	if len(v.Indices) != len(v.Values) {
		return 0, fmt.Errorf("%w: %d indices for %d values",
			common.ErrVectorizationMismatch, len(v.Indices), len(v.Values))
	}

	sum := m.intercept
	for i, col := range v.Indices {
		if col < 0 || col >= len(m.coef) {
			return 0, fmt.Errorf("%w: feature index %d outside [0,%d)",
				common.ErrVectorizationMismatch, col, len(m.coef))
		}
		sum += m.coef[col] * v.Values[i]
	}

	return sum, nil
}

// Predict returns the positive class when the decision value is above zero
// and the negative class otherwise.
func (m *LinearModel) Predict(v model.FeatureVector) (string, error) {
	d, err := m.Decision(v)
	if err != nil {
		return "", err
	}
	if d > 0 {
		return m.classes[1], nil
	}
	return m.classes[0], nil
}
