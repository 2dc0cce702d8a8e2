package classifier

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/rules"
	"github.com/Veraticus/spamsift/internal/statmodel"
	"github.com/Veraticus/spamsift/internal/testutil"
)

func newStubbed(label string) (*Classifier, *testutil.StubVectorizer, *testutil.StubPredictor) {
	vec := &testutil.StubVectorizer{Dim: 8}
	pred := &testutil.StubPredictor{Label: label}
	c := New(rules.MustNewRegistry(rules.DefaultGroups()), WithModel(vec, pred))
	return c, vec, pred
}

func TestClassify_Scenarios(t *testing.T) {
	tests := []struct {
		wantHits    map[string]int
		name        string
		text        string
		wantLabel   model.Label
		wantVia     model.Via
		wantTrigger string
		wantScore   int
		modelCalls  int
	}{
		{
			name:        "work from home scam",
			text:        "You have been selected to earn $5000 per week working from home. No investment required. Call now!",
			wantLabel:   model.LabelSpam,
			wantVia:     model.ViaRules,
			wantTrigger: rules.GroupFinancial,
			wantHits:    map[string]int{rules.GroupFinancial: 2, rules.GroupPromo: 1},
			wantScore:   7,
		},
		{
			name:        "prize notification",
			text:        "Congratulations! You have won a brand new iPhone 15. Click the link to claim your prize.",
			wantLabel:   model.LabelSpam,
			wantVia:     model.ViaRules,
			wantTrigger: rules.GroupLottery,
			wantHits:    map[string]int{rules.GroupLottery: 1, rules.GroupPromo: 1},
			wantScore:   3,
		},
		{
			name:        "account phishing",
			text:        "Your account will be suspended. Verify your bank details immediately.",
			wantLabel:   model.LabelSpam,
			wantVia:     model.ViaRules,
			wantTrigger: rules.GroupPhishing,
			wantHits:    map[string]int{rules.GroupPhishing: 2},
			wantScore:   6,
		},
		{
			name:       "benign message goes to model",
			text:       "Hey, are we still meeting for coffee tomorrow?",
			wantLabel:  model.LabelHam,
			wantVia:    model.ViaModel,
			wantHits:   map[string]int{},
			modelCalls: 1,
		},
		{
			name:       "single promotional hit goes to model",
			text:       "Call now to hear more.",
			wantLabel:  model.LabelHam,
			wantVia:    model.ViaModel,
			wantHits:   map[string]int{rules.GroupPromo: 1},
			wantScore:  1,
			modelCalls: 1,
		},
		{
			name:       "two promotional hits around a dash go to model",
			text:       "Limited time offer \u2014 call now!",
			wantLabel:  model.LabelHam,
			wantVia:    model.ViaModel,
			wantHits:   map[string]int{rules.GroupPromo: 2},
			wantScore:  2,
			modelCalls: 1,
		},
		{
			name:        "three promotional hits",
			text:        "Limited time offer! Click the link or call now.",
			wantLabel:   model.LabelSpam,
			wantVia:     model.ViaRules,
			wantTrigger: rules.GroupPromo,
			wantHits:    map[string]int{rules.GroupPromo: 3},
			wantScore:   3,
		},
		{
			name:        "no-break spaces still match rules",
			text:        "Work\u00a0from\u00a0home and make\u00a0money fast",
			wantLabel:   model.LabelSpam,
			wantVia:     model.ViaRules,
			wantTrigger: rules.GroupFinancial,
			wantHits:    map[string]int{rules.GroupFinancial: 2},
			wantScore:   6,
		},
		{
			name:       "empty message goes to model",
			text:       "",
			wantLabel:  model.LabelHam,
			wantVia:    model.ViaModel,
			wantHits:   map[string]int{},
			modelCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, vec, pred := newStubbed("ham")

			v, err := c.Classify(context.Background(), tt.text)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLabel, v.Label)
			assert.Equal(t, tt.wantVia, v.Explanation.Via)
			assert.Equal(t, tt.wantTrigger, v.Explanation.TriggeredBy)
			assert.Equal(t, tt.wantHits, v.Explanation.GroupHits)
			assert.Equal(t, tt.wantScore, v.Explanation.TotalScore)
			assert.Equal(t, tt.modelCalls, vec.Calls())
			assert.Equal(t, tt.modelCalls, pred.Calls())
		})
	}
}

func TestClassify_ModelLabelPassesThrough(t *testing.T) {
	c, vec, _ := newStubbed("spam")

	v, err := c.Classify(context.Background(), "see you at the game tonight")
	require.NoError(t, err)
	assert.True(t, v.IsSpam())
	assert.Equal(t, model.ViaModel, v.Explanation.Via)
	assert.Empty(t, v.Explanation.TriggeredBy)
	assert.Equal(t, []string{"see you at the game tonight"}, vec.Texts())
}

func TestClassify_RulesVerdictIgnoresModel(t *testing.T) {
	// A model that always fails must not matter when a rule group qualifies.
	vec := &testutil.StubVectorizer{Err: errors.New("boom")}
	pred := &testutil.StubPredictor{Err: errors.New("boom")}
	c := New(rules.MustNewRegistry(rules.DefaultGroups()), WithModel(vec, pred))

	v, err := c.Classify(context.Background(), "Your pre-approved loan is ready")
	require.NoError(t, err)
	assert.Equal(t, model.LabelSpam, v.Label)
	assert.Equal(t, rules.GroupLoan, v.Explanation.TriggeredBy)
	assert.Zero(t, vec.Calls())
	assert.Zero(t, pred.Calls())
}

func TestClassify_Errors(t *testing.T) {
	mismatch := errors.Join(common.ErrVectorizationMismatch, errors.New("dim 3 != 12"))

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "no model configured",
			wantErr: common.ErrModelUnavailable,
		},
		{
			name:    "model failed to load",
			opts:    []Option{WithModelError(common.ErrModelUnavailable)},
			wantErr: common.ErrModelUnavailable,
		},
		{
			name: "vectorizer fails",
			opts: []Option{WithModel(
				&testutil.StubVectorizer{Err: mismatch},
				&testutil.StubPredictor{Label: "ham"},
			)},
			wantErr: common.ErrVectorizationMismatch,
		},
		{
			name: "predictor fails",
			opts: []Option{WithModel(
				&testutil.StubVectorizer{},
				&testutil.StubPredictor{Err: mismatch},
			)},
			wantErr: common.ErrVectorizationMismatch,
		},
		{
			name: "unknown label",
			opts: []Option{WithModel(
				&testutil.StubVectorizer{},
				&testutil.StubPredictor{Label: "maybe"},
			)},
			wantErr: common.ErrUnknownLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(rules.MustNewRegistry(rules.DefaultGroups()), tt.opts...)

			v, err := c.Classify(context.Background(), "see you soon")
			assert.Nil(t, v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClassify_WithoutModelStillRunsRules(t *testing.T) {
	c := New(rules.MustNewRegistry(rules.DefaultGroups()))
	assert.False(t, c.HasModel())

	v, err := c.Classify(context.Background(), "Verify your account now")
	require.NoError(t, err)
	assert.Equal(t, model.ViaRules, v.Explanation.Via)
}

func TestClassify_CanceledContext(t *testing.T) {
	c, _, pred := newStubbed("ham")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Classify(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, pred.Calls())
}

func TestClassify_CustomPolicy(t *testing.T) {
	registry := rules.MustNewRegistry(rules.DefaultGroups())
	c := New(registry,
		WithModel(&testutil.StubVectorizer{}, &testutil.StubPredictor{Label: "ham"}),
		WithPolicy(rules.NewPolicy(registry, rules.GroupPromo, 10)),
	)

	v, err := c.Classify(context.Background(), "Limited time offer! Click the link or call now.")
	require.NoError(t, err)
	assert.Equal(t, model.ViaModel, v.Explanation.Via)
	assert.Equal(t, 3, v.Explanation.TotalScore)
}

func TestClassify_Deterministic(t *testing.T) {
	c, _, _ := newStubbed("ham")
	faker := gofakeit.New(42)

	for range 50 {
		text := faker.Sentence(12)
		first, err := c.Classify(context.Background(), text)
		require.NoError(t, err)
		second, err := c.Classify(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, first, second, text)
	}
}

func TestClassify_WithTrainedArtifacts(t *testing.T) {
	vec, lin, err := statmodel.NewLoader(
		filepath.Join("..", "statmodel", "testdata", "model.json"),
		filepath.Join("..", "statmodel", "testdata", "vectorizer.json"),
	).Load()
	require.NoError(t, err)

	c := New(rules.MustNewRegistry(rules.DefaultGroups()), WithModel(vec, lin))

	v, err := c.Classify(context.Background(), "Urgent: claim your cash money today")
	require.NoError(t, err)
	assert.Equal(t, model.LabelSpam, v.Label)
	assert.Equal(t, model.ViaModel, v.Explanation.Via)

	v, err = c.Classify(context.Background(), "Hey, are we still meeting for lunch tomorrow?")
	require.NoError(t, err)
	assert.Equal(t, model.LabelHam, v.Label)
}
