package common

import (
	"fmt"
	"regexp"
)

// CompilePattern compiles a rule pattern, wrapping any syntax error in
// ErrPatternCompilation so callers can abort initialization on it.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrPatternCompilation, pattern, err)
	}
	return re, nil
}
