package tui

import "github.com/Veraticus/spamsift/internal/model"

// predictionMsg carries the result of classifying the current input.
type predictionMsg struct {
	err     error
	verdict *model.Verdict
	text    string
}

// savedMsg reports the outcome of recording a prediction in history.
type savedMsg struct {
	err    error
	record *model.VerdictRecord
}
