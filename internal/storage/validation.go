// Package storage provides the data persistence layer for classification history.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/spamsift/internal/model"
)

// MaxHistoryLimit caps the number of records returned by one history query.
const MaxHistoryLimit = 1000

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidVerdict = errors.New("invalid verdict")
	ErrInvalidLimit   = errors.New("invalid limit")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateVerdict checks that a verdict carries a known label and layer.
func validateVerdict(v *model.Verdict) error {
	if v == nil {
		return fmt.Errorf("%w: verdict", ErrNilParameter)
	}
	if _, ok := model.ParseLabel(string(v.Label)); !ok {
		return fmt.Errorf("%w: unknown label %q", ErrInvalidVerdict, v.Label)
	}
	switch v.Explanation.Via {
	case model.ViaRules, model.ViaModel:
	default:
		return fmt.Errorf("%w: unknown decision layer %q", ErrInvalidVerdict, v.Explanation.Via)
	}
	return nil
}

// validateLimit ensures a history limit is positive and bounded.
func validateLimit(limit int) error {
	if limit <= 0 || limit > MaxHistoryLimit {
		return fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidLimit, limit, MaxHistoryLimit)
	}
	return nil
}
