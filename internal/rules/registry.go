// Package rules implements the rule layer of the spam classifier: an
// immutable registry of regular-expression pattern groups, a matcher that
// counts distinct pattern hits per group, and the policy that turns those
// hits into a spam decision.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
)

// compiledGroup holds a group with its patterns compiled in group order.
type compiledGroup struct {
	regexes []*regexp.Regexp
	model.PatternGroup
}

// Registry is an ordered, read-only collection of compiled pattern groups.
// It is safe for concurrent use because nothing mutates it after NewRegistry.
type Registry struct {
	index  map[string]int
	groups []compiledGroup
}

// NewRegistry validates the groups and compiles every pattern eagerly.
// Any invalid group or pattern aborts construction; a partially loaded
// registry is never returned.
func NewRegistry(groups []model.PatternGroup) (*Registry, error) {
	r := &Registry{
		index:  make(map[string]int, len(groups)),
		groups: make([]compiledGroup, 0, len(groups)),
	}

	for _, g := range groups {
		if err := validateGroup(g); err != nil {
			return nil, err
		}
		if _, dup := r.index[g.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate group name %q", common.ErrInvalidGroup, g.Name)
		}

		cg := compiledGroup{
			PatternGroup: copyGroup(g),
			regexes:      make([]*regexp.Regexp, 0, len(g.Patterns)),
		}
		for _, p := range g.Patterns {
			re, err := common.CompilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("group %s: %w", g.Name, err)
			}
			cg.regexes = append(cg.regexes, re)
		}

		r.index[g.Name] = len(r.groups)
		r.groups = append(r.groups, cg)
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error. It is intended
// for the built-in groups, which are covered by tests.
func MustNewRegistry(groups []model.PatternGroup) *Registry {
	r, err := NewRegistry(groups)
	if err != nil {
		panic(err)
	}
	return r
}

// NewDefaultRegistry builds a registry from DefaultGroups.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultGroups())
}

// Len returns the number of groups.
func (r *Registry) Len() int {
	return len(r.groups)
}

// Groups returns copies of the groups in construction order.
func (r *Registry) Groups() []model.PatternGroup {
	out := make([]model.PatternGroup, len(r.groups))
	for i, g := range r.groups {
		out[i] = copyGroup(g.PatternGroup)
	}
	return out
}

// Names returns the group names in construction order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.groups))
	for i, g := range r.groups {
		names[i] = g.Name
	}
	return names
}

// Lookup returns a copy of the named group.
func (r *Registry) Lookup(name string) (model.PatternGroup, bool) {
	i, ok := r.index[name]
	if !ok {
		return model.PatternGroup{}, false
	}
	return copyGroup(r.groups[i].PatternGroup), true
}

func validateGroup(g model.PatternGroup) error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: missing name", common.ErrInvalidGroup)
	}
	if len(g.Patterns) == 0 {
		return fmt.Errorf("%w: group %s has no patterns", common.ErrInvalidGroup, g.Name)
	}
	if !g.Priority.Valid() {
		return fmt.Errorf("%w: group %s has priority %d, want 1-3", common.ErrInvalidGroup, g.Name, g.Priority)
	}
	if g.MinHits < 1 {
		return fmt.Errorf("%w: group %s has min_hits %d, want >= 1", common.ErrInvalidGroup, g.Name, g.MinHits)
	}
	return nil
}

func copyGroup(g model.PatternGroup) model.PatternGroup {
	g.Patterns = append([]string(nil), g.Patterns...)
	return g
}
