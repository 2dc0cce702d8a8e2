// Package model defines the core data structures for the spamsift application.
package model

// Priority ranks how strong a pattern group is as a spam signal.
type Priority int

// Priority levels used by the rule decision policy.
const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Valid reports whether p is one of the supported priority levels.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// PatternGroup is a named set of regular expressions that share a priority
// and a minimum number of distinct pattern hits.
type PatternGroup struct {
	Name     string   `json:"name" yaml:"name"`
	Patterns []string `json:"patterns" yaml:"patterns"`
	Priority Priority `json:"priority" yaml:"priority"`
	MinHits  int      `json:"min_hits" yaml:"min_hits"`
}

// MatchedPattern records one pattern that matched, in match order.
type MatchedPattern struct {
	Group   string `json:"group"`
	Pattern string `json:"pattern"`
}

// MatchResult is the output of running the rule matcher over one message.
// GroupHits only contains groups with at least one hit.
type MatchResult struct {
	GroupHits  map[string]int   `json:"group_hits"`
	Matches    []MatchedPattern `json:"matches"`
	TotalScore int              `json:"total_score"`
}

// Hits returns the hit count for a group, zero when the group did not match.
func (r MatchResult) Hits(group string) int {
	return r.GroupHits[group]
}
