// Package classifier combines the rule engine with the statistical model to
// label SMS messages as spam or ham.
package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/rules"
)

// Vectorizer converts text into the feature space of a Predictor.
type Vectorizer interface {
	Transform(text string) (model.FeatureVector, error)
}

// Predictor returns a raw class label for a feature vector.
type Predictor interface {
	Predict(v model.FeatureVector) (string, error)
}

// Classifier runs the rule engine first and consults the statistical model
// only when no rule group qualifies.
type Classifier struct {
	vectorizer Vectorizer
	predictor  Predictor
	modelErr   error
	matcher    *rules.Matcher
	policy     *rules.Policy
	registry   *rules.Registry
}

// Option customizes a Classifier.
type Option func(*Classifier)

// WithModel sets the statistical fallback.
func WithModel(v Vectorizer, p Predictor) Option {
	return func(c *Classifier) {
		c.vectorizer = v
		c.predictor = p
	}
}

// WithPolicy replaces the default decision policy.
func WithPolicy(p *rules.Policy) Option {
	return func(c *Classifier) {
		c.policy = p
	}
}

// WithModelError records why the model could not be loaded. Messages that
// need the fallback fail with this error instead of a generic one.
func WithModelError(err error) Option {
	return func(c *Classifier) {
		c.modelErr = err
	}
}

// New creates a classifier over registry.
func New(registry *rules.Registry, opts ...Option) *Classifier {
	c := &Classifier{
		registry: registry,
		matcher:  rules.NewMatcher(registry),
		policy:   rules.DefaultPolicy(registry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the rule registry the classifier matches against.
func (c *Classifier) Registry() *rules.Registry {
	return c.registry
}

// HasModel reports whether a statistical fallback is configured.
func (c *Classifier) HasModel() bool {
	return c.vectorizer != nil && c.predictor != nil
}

// Classify labels text. Rule matches that satisfy the policy short-circuit
// to spam; everything else, including the empty string, goes to the model.
func (c *Classifier) Classify(ctx context.Context, text string) (*model.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := c.matcher.Analyze(text)
	decision := c.policy.Decide(result)

	if decision.Spam {
		slog.Debug("message classified by rules",
			"triggered_by", decision.TriggeredBy,
			"total_score", result.TotalScore)
		return &model.Verdict{
			Label: model.LabelSpam,
			Explanation: model.Explanation{
				GroupHits:   result.GroupHits,
				Via:         model.ViaRules,
				TriggeredBy: decision.TriggeredBy,
				TotalScore:  result.TotalScore,
			},
			Matches: result.Matches,
		}, nil
	}

	label, err := c.predict(text)
	if err != nil {
		return nil, err
	}

	slog.Debug("message classified by model",
		"label", label,
		"total_score", result.TotalScore,
		"reason", decision.Reason)

	return &model.Verdict{
		Label: label,
		Explanation: model.Explanation{
			GroupHits:  result.GroupHits,
			Via:        model.ViaModel,
			TotalScore: result.TotalScore,
		},
		Matches: result.Matches,
	}, nil
}

func (c *Classifier) predict(text string) (model.Label, error) {
	if !c.HasModel() {
		if c.modelErr != nil {
			return "", c.modelErr
		}
		return "", common.ErrModelUnavailable
	}

	fv, err := c.vectorizer.Transform(text)
	if err != nil {
		return "", fmt.Errorf("failed to vectorize message: %w", err)
	}

	raw, err := c.predictor.Predict(fv)
	if err != nil {
		return "", fmt.Errorf("model prediction failed: %w", err)
	}

	label, ok := model.ParseLabel(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q", common.ErrUnknownLabel, raw)
	}

	return label, nil
}
