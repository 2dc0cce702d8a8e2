package rules

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
	"gopkg.in/yaml.v3"
)

// RuleSet is the on-disk form of a rule configuration.
//
// Example:
//
//	aggregate:
//	  group: generic-promotional
//	  min_score: 3
//	groups:
//	  - name: phishing-request
//	    priority: 3
//	    min_hits: 1
//	    patterns:
//	      - '\bconfirm\b.{0,15}\b(pin|otp|password)\b'
type RuleSet struct {
	Aggregate AggregateConfig      `yaml:"aggregate,omitempty"`
	Groups    []model.PatternGroup `yaml:"groups"`
}

// AggregateConfig configures the low priority carve-out of the policy.
type AggregateConfig struct {
	Group    string `yaml:"group,omitempty"`
	MinScore int    `yaml:"min_score,omitempty"`
}

// DefaultRuleSet returns the built-in rule configuration.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Groups: DefaultGroups(),
		Aggregate: AggregateConfig{
			Group:    GroupPromo,
			MinScore: DefaultAggregateMinScore,
		},
	}
}

// LoadRuleSet reads a YAML rule file.
func LoadRuleSet(path string) (RuleSet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return RuleSet{}, fmt.Errorf("failed to read rule file: %w", err)
	}
	return ParseRuleSet(bytes.NewReader(data))
}

// ParseRuleSet decodes a YAML rule configuration. Unknown keys are rejected so
// that a typo such as "min_hit" fails loudly instead of defaulting to zero.
func ParseRuleSet(r io.Reader) (RuleSet, error) {
	var rs RuleSet

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		if err == io.EOF {
			return RuleSet{}, fmt.Errorf("%w: rule file is empty", common.ErrInvalidConfig)
		}
		return RuleSet{}, fmt.Errorf("%w: failed to parse rule file: %v", common.ErrInvalidConfig, err)
	}

	if len(rs.Groups) == 0 {
		return RuleSet{}, fmt.Errorf("%w: rule file defines no groups", common.ErrInvalidConfig)
	}

	return rs, nil
}

// Build compiles the rule set into a registry and its policy.
func (rs RuleSet) Build() (*Registry, *Policy, error) {
	registry, err := NewRegistry(rs.Groups)
	if err != nil {
		return nil, nil, err
	}

	policy := DefaultPolicy(registry)
	if rs.Aggregate.Group != "" {
		if _, ok := registry.Lookup(rs.Aggregate.Group); !ok {
			return nil, nil, fmt.Errorf("%w: aggregate group %q is not defined", common.ErrInvalidGroup, rs.Aggregate.Group)
		}
		policy.AggregateGroup = rs.Aggregate.Group
	}
	if rs.Aggregate.MinScore > 0 {
		policy.AggregateMinScore = rs.Aggregate.MinScore
	}

	return registry, policy, nil
}
