package rules

import (
	"testing"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		errMsg  string
		groups  []model.PatternGroup
	}{
		{
			name:   "default groups",
			groups: DefaultGroups(),
		},
		{
			name:   "empty registry",
			groups: []model.PatternGroup{},
		},
		{
			name: "invalid regex",
			groups: []model.PatternGroup{
				{Name: "broken", Patterns: []string{`\bok\b`, `[invalid regex`}, Priority: model.PriorityHigh, MinHits: 1},
			},
			wantErr: common.ErrPatternCompilation,
			errMsg:  "group broken",
		},
		{
			name: "missing name",
			groups: []model.PatternGroup{
				{Name: "  ", Patterns: []string{`x`}, Priority: model.PriorityLow, MinHits: 1},
			},
			wantErr: common.ErrInvalidGroup,
			errMsg:  "missing name",
		},
		{
			name: "no patterns",
			groups: []model.PatternGroup{
				{Name: "empty", Priority: model.PriorityLow, MinHits: 1},
			},
			wantErr: common.ErrInvalidGroup,
			errMsg:  "no patterns",
		},
		{
			name: "priority out of range",
			groups: []model.PatternGroup{
				{Name: "urgent", Patterns: []string{`x`}, Priority: 4, MinHits: 1},
			},
			wantErr: common.ErrInvalidGroup,
			errMsg:  "priority 4",
		},
		{
			name: "zero priority",
			groups: []model.PatternGroup{
				{Name: "unset", Patterns: []string{`x`}, MinHits: 1},
			},
			wantErr: common.ErrInvalidGroup,
			errMsg:  "priority 0",
		},
		{
			name: "min hits below one",
			groups: []model.PatternGroup{
				{Name: "lenient", Patterns: []string{`x`}, Priority: model.PriorityMedium},
			},
			wantErr: common.ErrInvalidGroup,
			errMsg:  "min_hits 0",
		},
		{
			name: "duplicate names",
			groups: []model.PatternGroup{
				{Name: "dup", Patterns: []string{`a`}, Priority: model.PriorityLow, MinHits: 1},
				{Name: "dup", Patterns: []string{`b`}, Priority: model.PriorityLow, MinHits: 1},
			},
			wantErr: common.ErrInvalidGroup,
			errMsg:  "duplicate group name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(tt.groups)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, r)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, r)
			assert.Equal(t, len(tt.groups), r.Len())
		})
	}
}

func TestRegistry_Order(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{GroupFinancial, GroupLoan, GroupPhishing, GroupLottery, GroupPromo}, r.Names())

	groups := r.Groups()
	require.Len(t, groups, 5)
	for i, g := range groups {
		assert.Equal(t, r.Names()[i], g.Name)
	}
}

func TestRegistry_DefaultsMatchDocumentedSettings(t *testing.T) {
	r := MustNewRegistry(DefaultGroups())

	tests := []struct {
		name     string
		priority model.Priority
		minHits  int
	}{
		{GroupFinancial, model.PriorityHigh, 1},
		{GroupLoan, model.PriorityMedium, 1},
		{GroupPhishing, model.PriorityHigh, 1},
		{GroupLottery, model.PriorityMedium, 1},
		{GroupPromo, model.PriorityLow, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := r.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.priority, g.Priority)
			assert.Equal(t, tt.minHits, g.MinHits)
			assert.NotEmpty(t, g.Patterns)
		})
	}

	_, ok := r.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_IsImmutable(t *testing.T) {
	input := []model.PatternGroup{
		{Name: "promo", Patterns: []string{`\bcall\s+now\b`}, Priority: model.PriorityLow, MinHits: 1},
	}
	r := MustNewRegistry(input)

	// Mutating the input after construction must not leak in.
	input[0].Patterns[0] = `changed`
	input[0].Name = "renamed"

	groups := r.Groups()
	groups[0].Patterns[0] = `mutated`
	groups[0].Priority = model.PriorityHigh

	g, ok := r.Lookup("promo")
	require.True(t, ok)
	assert.Equal(t, []string{`\bcall\s+now\b`}, g.Patterns)
	assert.Equal(t, model.PriorityLow, g.Priority)

	res := NewMatcher(r).Analyze("Call now!")
	assert.Equal(t, 1, res.Hits("promo"))
}

func TestMustNewRegistryPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewRegistry([]model.PatternGroup{
			{Name: "bad", Patterns: []string{`(`}, Priority: model.PriorityLow, MinHits: 1},
		})
	})
}
