package model

import "time"

// Label is the final classification of a message.
type Label string

// Label constants.
const (
	LabelSpam Label = "spam"
	LabelHam  Label = "ham"
)

// ParseLabel converts a raw label produced by a model into a Label.
func ParseLabel(s string) (Label, bool) {
	switch Label(s) {
	case LabelSpam, LabelHam:
		return Label(s), true
	default:
		return "", false
	}
}

// Via indicates which decision layer produced a verdict.
type Via string

// Decision layer constants.
const (
	ViaRules Via = "rules"
	ViaModel Via = "model"
)

// Explanation describes why a message received its label. Rule evidence is
// always present, even when the statistical model made the call.
type Explanation struct {
	GroupHits   map[string]int `json:"group_hits"`
	Via         Via            `json:"via"`
	TriggeredBy string         `json:"triggered_by,omitempty"`
	TotalScore  int            `json:"total_score"`
}

// Verdict is the result of classifying one message.
type Verdict struct {
	Label       Label            `json:"label"`
	Explanation Explanation      `json:"explanation"`
	Matches     []MatchedPattern `json:"matches,omitempty"`
}

// IsSpam reports whether the verdict label is spam.
func (v Verdict) IsSpam() bool {
	return v.Label == LabelSpam
}

// VerdictRecord is a persisted verdict in the classification history.
type VerdictRecord struct {
	ClassifiedAt time.Time `json:"classified_at"`
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	Verdict      Verdict   `json:"verdict"`
}

// VerdictStats summarizes the classification history.
type VerdictStats struct {
	ByLabel map[Label]int `json:"by_label"`
	ByVia   map[Via]int   `json:"by_via"`
	Total   int           `json:"total"`
}
