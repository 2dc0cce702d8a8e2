package rules

import (
	"testing"

	"github.com/Veraticus/spamsift/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_Decide(t *testing.T) {
	r := MustNewRegistry(DefaultGroups())
	m := NewMatcher(r)
	p := DefaultPolicy(r)

	tests := []struct {
		name        string
		text        string
		wantTrigger string
		wantSpam    bool
	}{
		{
			name:        "high priority financial",
			text:        "You have been selected to earn $5000 per week working from home. No investment required. Call now!",
			wantSpam:    true,
			wantTrigger: GroupFinancial,
		},
		{
			name:        "medium priority lottery",
			text:        "Congratulations! You have won a brand new iPhone 15. Click the link to claim your prize.",
			wantSpam:    true,
			wantTrigger: GroupLottery,
		},
		{
			name:        "high priority phishing",
			text:        "Your account will be suspended. Verify your bank details immediately.",
			wantSpam:    true,
			wantTrigger: GroupPhishing,
		},
		{
			name:        "medium priority loan",
			text:        "Get an instant loan today",
			wantSpam:    true,
			wantTrigger: GroupLoan,
		},
		{
			name:     "no hits",
			text:     "Hey, are we still meeting for coffee tomorrow?",
			wantSpam: false,
		},
		{
			name:     "empty text",
			text:     "",
			wantSpam: false,
		},
		{
			name:     "single promotional phrase",
			text:     "Call now to hear more.",
			wantSpam: false,
		},
		{
			// Two promotional hits only reach a total score of 2.
			name:     "two promotional phrases stay below the aggregate score",
			text:     "Limited time offer, call now!",
			wantSpam: false,
		},
		{
			name:     "two promotional phrases around a dash stay below the aggregate score",
			text:     "Limited time offer \u2014 call now!",
			wantSpam: false,
		},
		{
			name:        "three promotional phrases reach the aggregate score",
			text:        "Limited time offer! Click the link or call now.",
			wantSpam:    true,
			wantTrigger: GroupPromo,
		},
		{
			name:        "first qualifying group in registry order is reported",
			text:        "Confirm your PIN and start to work from home",
			wantSpam:    true,
			wantTrigger: GroupFinancial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.Decide(m.Analyze(tt.text))

			assert.Equal(t, tt.wantSpam, d.Spam)
			assert.Equal(t, tt.wantTrigger, d.TriggeredBy)
			assert.NotEmpty(t, d.Reason)
		})
	}
}

func TestPolicy_OrderDoesNotChangeOutcome(t *testing.T) {
	groups := DefaultGroups()
	reversed := make([]model.PatternGroup, len(groups))
	for i, g := range groups {
		reversed[len(groups)-1-i] = g
	}

	forward := MustNewRegistry(groups)
	backward := MustNewRegistry(reversed)

	text := "Confirm your PIN and start to work from home"

	fd := DefaultPolicy(forward).Decide(NewMatcher(forward).Analyze(text))
	bd := DefaultPolicy(backward).Decide(NewMatcher(backward).Analyze(text))

	assert.True(t, fd.Spam)
	assert.True(t, bd.Spam)
	assert.Equal(t, GroupFinancial, fd.TriggeredBy)
	assert.Equal(t, GroupPhishing, bd.TriggeredBy)
}

func TestPolicy_AggregateUsesGlobalScore(t *testing.T) {
	r := MustNewRegistry([]model.PatternGroup{
		{Name: "strict-medium", Patterns: []string{`\balpha\b`, `\bbeta\b`}, Priority: model.PriorityMedium, MinHits: 2},
		{Name: "promo", Patterns: []string{`\bgamma\b`, `\bdelta\b`}, Priority: model.PriorityLow, MinHits: 2},
	})
	m := NewMatcher(r)
	p := NewPolicy(r, "promo", 3)

	// One medium hit below its own min_hits plus one promo hit totals 3.
	d := p.Decide(m.Analyze("alpha gamma"))
	assert.True(t, d.Spam)
	assert.Equal(t, "promo", d.TriggeredBy)

	// Without a promo hit the same medium evidence does not qualify.
	d = p.Decide(m.Analyze("alpha"))
	assert.False(t, d.Spam)
	assert.Empty(t, d.TriggeredBy)
}

func TestPolicy_LowPriorityNeverTriggersAlone(t *testing.T) {
	r := MustNewRegistry([]model.PatternGroup{
		{Name: "chatter", Patterns: []string{`\bhello\b`, `\bthere\b`, `\bfriend\b`, `\bagain\b`}, Priority: model.PriorityLow, MinHits: 1},
		{Name: "promo", Patterns: []string{`\bsale\b`}, Priority: model.PriorityLow, MinHits: 2},
	})
	p := NewPolicy(r, "promo", 3)

	res := NewMatcher(r).Analyze("hello there friend, hello again")
	assert.Equal(t, 4, res.TotalScore)
	assert.False(t, p.Decide(res).Spam)
}

func TestPolicy_DecideOnHandBuiltResult(t *testing.T) {
	r := MustNewRegistry(DefaultGroups())
	p := DefaultPolicy(r)

	tests := []struct {
		result   model.MatchResult
		name     string
		wantSpam bool
	}{
		{
			name:     "empty result",
			result:   model.MatchResult{GroupHits: map[string]int{}},
			wantSpam: false,
		},
		{
			name:     "nil hits map",
			result:   model.MatchResult{},
			wantSpam: false,
		},
		{
			name:     "promo with score at threshold",
			result:   model.MatchResult{GroupHits: map[string]int{GroupPromo: 1}, TotalScore: 3},
			wantSpam: true,
		},
		{
			name:     "score without promo hits",
			result:   model.MatchResult{GroupHits: map[string]int{"unknown-group": 5}, TotalScore: 10},
			wantSpam: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantSpam, p.Decide(tt.result).Spam)
		})
	}
}
