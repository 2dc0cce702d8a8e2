package rules

import (
	"testing"

	"github.com/Veraticus/spamsift/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Analyze(t *testing.T) {
	m := NewMatcher(MustNewRegistry(DefaultGroups()))

	tests := []struct {
		wantHits  map[string]int
		name      string
		text      string
		wantScore int
	}{
		{
			name:      "empty string",
			text:      "",
			wantHits:  map[string]int{},
			wantScore: 0,
		},
		{
			name:      "benign message",
			text:      "Hey, are we still meeting for coffee tomorrow?",
			wantHits:  map[string]int{},
			wantScore: 0,
		},
		{
			name: "work from home scam",
			text: "You have been selected to earn $5000 per week working from home. No investment required. Call now!",
			wantHits: map[string]int{
				GroupFinancial: 2,
				GroupPromo:     1,
			},
			wantScore: 7,
		},
		{
			name: "prize notification",
			text: "Congratulations! You have won a brand new iPhone 15. Click the link to claim your prize.",
			wantHits: map[string]int{
				GroupLottery: 1,
				GroupPromo:   1,
			},
			wantScore: 3,
		},
		{
			name: "account phishing",
			text: "Your account will be suspended. Verify your bank details immediately.",
			wantHits: map[string]int{
				GroupPhishing: 2,
			},
			wantScore: 6,
		},
		{
			name: "case insensitive",
			text: "PRE-APPROVED LOAN waiting, NO DOCUMENTS needed",
			wantHits: map[string]int{
				GroupLoan: 2,
			},
			wantScore: 4,
		},
		{
			name:      "phrase inside a larger word does not match",
			text:      "I want to learn 50 new words and recall now what we read",
			wantHits:  map[string]int{},
			wantScore: 0,
		},
		{
			name: "repeated pattern counts once",
			text: "call now, call now, CALL NOW",
			wantHits: map[string]int{
				GroupPromo: 1,
			},
			wantScore: 1,
		},
		{
			name:     "anchor phrases too far apart",
			text:     "please verify that the parcel you ordered has arrived at the bank",
			wantHits: map[string]int{},
		},
		{
			name: "no-break spaces between words",
			text: "Work\u00a0from\u00a0home, make\u00a0money",
			wantHits: map[string]int{
				GroupFinancial: 2,
			},
			wantScore: 6,
		},
		{
			name: "ideographic and narrow spaces",
			text: "Instant\u3000loan with lower\u202finterest",
			wantHits: map[string]int{
				GroupLoan: 2,
			},
			wantScore: 4,
		},
		{
			name: "arabic-indic digits",
			text: "earn \u0665\u0660\u0660\u0660 weekly",
			wantHits: map[string]int{
				GroupFinancial: 1,
			},
			wantScore: 3,
		},
		{
			name: "fullwidth digits",
			text: "Earn \uff15\uff10\uff10 a day",
			wantHits: map[string]int{
				GroupFinancial: 1,
			},
			wantScore: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Analyze(tt.text)

			assert.Equal(t, tt.wantHits, res.GroupHits)
			assert.Equal(t, tt.wantScore, res.TotalScore)

			matched := 0
			for _, hits := range tt.wantHits {
				matched += hits
			}
			assert.Len(t, res.Matches, matched)
		})
	}
}

func TestMatcher_MatchesInRegistryOrder(t *testing.T) {
	m := NewMatcher(MustNewRegistry(DefaultGroups()))

	res := m.Analyze("You have been selected to earn $5000 per week working from home. No investment required. Call now!")

	assert.Equal(t, []model.MatchedPattern{
		{Group: GroupFinancial, Pattern: `\bearn\b.{0,20}\b\d{2,}\b`},
		{Group: GroupFinancial, Pattern: `\bno\s+investment\b`},
		{Group: GroupPromo, Pattern: `\bcall\s+now\b`},
	}, res.Matches)
}

func TestMatcher_Deterministic(t *testing.T) {
	m := NewMatcher(MustNewRegistry(DefaultGroups()))
	text := "Limited time offer! Verify your card to get a free voucher. Act now."

	first := m.Analyze(text)
	for range 5 {
		m.Analyze("unrelated message in between")
		assert.Equal(t, first, m.Analyze(text))
	}
}

func TestMatcher_FreshResultPerCall(t *testing.T) {
	m := NewMatcher(MustNewRegistry(DefaultGroups()))

	a := m.Analyze("Call now")
	a.GroupHits[GroupPromo] = 99
	a.GroupHits["injected"] = 1

	b := m.Analyze("Call now")
	assert.Equal(t, map[string]int{GroupPromo: 1}, b.GroupHits)
}

func TestMatcher_ScoreMonotonicity(t *testing.T) {
	r := MustNewRegistry(DefaultGroups())
	m := NewMatcher(r)

	base := m.Analyze("Call now to hear more.")
	require.Equal(t, 1, base.TotalScore)

	// Another occurrence of an already matched pattern changes nothing.
	repeated := m.Analyze("Call now to hear more. Seriously, call now.")
	assert.Equal(t, base.TotalScore, repeated.TotalScore)
	assert.Equal(t, base.GroupHits, repeated.GroupHits)

	// A pattern from a previously silent group adds exactly its priority.
	loan, ok := r.Lookup(GroupLoan)
	require.True(t, ok)
	extended := m.Analyze("Call now to hear more. Lower interest for members.")
	assert.Equal(t, base.TotalScore+int(loan.Priority), extended.TotalScore)
	assert.Equal(t, 1, extended.Hits(GroupLoan))
}

func TestMatcher_EmptyRegistry(t *testing.T) {
	m := NewMatcher(MustNewRegistry(nil))

	res := m.Analyze("Congratulations, you won!")
	assert.Empty(t, res.GroupHits)
	assert.Zero(t, res.TotalScore)
	assert.Nil(t, res.Matches)
}

func TestNormalizeForMatch(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii untouched", in: "Call NOW 123", want: "call now 123"},
		{name: "no-break space", in: "call\u00a0now", want: "call now"},
		{name: "em space and tab", in: "act\u2003now\tplease", want: "act now\tplease"},
		{name: "arabic-indic digits", in: "\u0660\u0661\u0669", want: "019"},
		{name: "devanagari digits", in: "\u0967\u0968\u0969", want: "123"},
		{name: "fullwidth letters and digits", in: "\uff26\uff32\uff25\uff25 \uff17", want: "free 7"},
		{name: "accents kept", in: "Café", want: "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeForMatch(tt.in))
		})
	}
}

func TestDigitValue(t *testing.T) {
	for _, zero := range []rune{'0', '\u0660', '\u06f0', '\u0966', '\u0e50', '\uff10'} {
		for i := rune(0); i < 10; i++ {
			require.Equal(t, i, digitValue(zero+i), "digit %U", zero+i)
		}
	}
}
