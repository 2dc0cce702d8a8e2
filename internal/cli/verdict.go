package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/spamsift/internal/model"
)

// NoMatchesText is shown when no rule group matched a message.
const NoMatchesText = "No rule-based pattern matches were found."

// LabelText returns the headline for a verdict label.
func LabelText(label model.Label) string {
	if label == model.LabelSpam {
		return "Spam Message"
	}
	return "Legitimate Message (Ham)"
}

// FormatLabel renders a verdict label with its color and icon.
func FormatLabel(label model.Label) string {
	if label == model.LabelSpam {
		return SpamStyle.Render(SpamIcon + " " + LabelText(label))
	}
	return HamStyle.Render(HamIcon + " " + LabelText(label))
}

// ExplanationText says which decision layer produced the verdict.
func ExplanationText(e model.Explanation) string {
	if e.Via == model.ViaRules {
		text := RulesIcon + " Classified using rule-based patterns"
		if e.TriggeredBy != "" {
			text += fmt.Sprintf(" (%s)", e.TriggeredBy)
		}
		return text + "."
	}
	return ModelIcon + " Classified using the statistical model."
}

// GroupHitLines lists "group: N match(es)" lines. Groups in order come first
// in that order; any others follow alphabetically.
func GroupHitLines(hits map[string]int, order []string) []string {
	if len(hits) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(hits))
	names := make([]string, 0, len(hits))
	for _, name := range order {
		if _, ok := hits[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}

	var rest []string
	for name := range hits {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		n := hits[name]
		noun := "matches"
		if n == 1 {
			noun = "match"
		}
		lines = append(lines, fmt.Sprintf("%s: %d %s", name, n, noun))
	}
	return lines
}

// FormatExplanation renders the explanation block for a verdict.
func FormatExplanation(v *model.Verdict, order []string) string {
	var b strings.Builder

	b.WriteString(ExplanationText(v.Explanation))
	b.WriteString("\n")

	lines := GroupHitLines(v.Explanation.GroupHits, order)
	if len(lines) == 0 {
		b.WriteString(SubtleStyle.Render(NoMatchesText))
	} else {
		b.WriteString(BoldStyle.Render("Rule group hits:"))
		for _, line := range lines {
			b.WriteString("\n  • " + line)
		}
	}

	fmt.Fprintf(&b, "\nTotal score: %d", v.Explanation.TotalScore)
	return b.String()
}

// FormatVerdict renders a verdict box for display in the terminal.
func FormatVerdict(v *model.Verdict, order []string) string {
	return RenderBox("Prediction", FormatLabel(v.Label)+"\n\n"+FormatExplanation(v, order))
}

// FormatMatches renders the matched (group, pattern) pairs, one per line.
func FormatMatches(matches []model.MatchedPattern) string {
	if len(matches) == 0 {
		return SubtleStyle.Render(NoMatchesText)
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("%s  %s", InfoStyle.Render(m.Group), SubtleStyle.Render(m.Pattern)))
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens s to at most n runes, adding an ellipsis when cut.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
