package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/Veraticus/spamsift/internal/model"
)

// Matcher evaluates messages against a registry.
type Matcher struct {
	registry *Registry
}

// NewMatcher creates a matcher over the given registry.
func NewMatcher(registry *Registry) *Matcher {
	return &Matcher{registry: registry}
}

// Analyze scans text against every group in registry order. Each pattern
// contributes at most one hit to its group no matter how often it occurs.
// The result is freshly allocated on every call.
func (m *Matcher) Analyze(text string) model.MatchResult {
	lowered := normalizeForMatch(text)

	result := model.MatchResult{
		GroupHits: make(map[string]int),
	}

	for _, g := range m.registry.groups {
		hits := 0
		for i, re := range g.regexes {
			if re.MatchString(lowered) {
				hits++
				result.Matches = append(result.Matches, model.MatchedPattern{
					Group:   g.Name,
					Pattern: g.Patterns[i],
				})
			}
		}

		if hits > 0 {
			result.GroupHits[g.Name] = hits
			result.TotalScore += int(g.Priority) * hits
		}
	}

	return result
}

// normalizeForMatch lowercases text and maps Unicode spaces and decimal
// digits to their ASCII forms. RE2's \s, \d and \b are ASCII-only, so a
// phrase separated by no-break spaces or written with Arabic-Indic digits
// would otherwise never match.
func normalizeForMatch(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r <= unicode.MaxASCII:
			return r
		case unicode.IsSpace(r):
			return ' '
		case unicode.Is(unicode.Nd, r):
			return '0' + digitValue(r)
		}
		return r
	}, strings.ToLower(norm.NFKC.String(text)))
}

// digitValue returns the value of decimal digit r. Every Nd range is a run of
// ten code points starting at zero, so the offset from the start of the run
// is the value.
func digitValue(r rune) rune {
	start := r
	for unicode.Is(unicode.Nd, start-1) {
		start--
	}
	return (r - start) % 10
}
