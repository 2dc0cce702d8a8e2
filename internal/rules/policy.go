package rules

import (
	"fmt"

	"github.com/Veraticus/spamsift/internal/model"
)

// DefaultAggregateMinScore is the total score the aggregate group needs
// before its hits count as spam.
const DefaultAggregateMinScore = 3

// Decision is the rule layer's verdict plus diagnostics about what caused it.
type Decision struct {
	TriggeredBy string
	Reason      string
	Spam        bool
}

// Policy turns a MatchResult into a Decision.
//
// Every medium or high priority group that reaches its min_hits is enough on
// its own. The first such group in registry order is reported as the trigger;
// the order never changes the boolean outcome. Low priority groups never
// trigger alone: only AggregateGroup can, and only when the message's global
// total score reaches AggregateMinScore.
type Policy struct {
	registry          *Registry
	AggregateGroup    string
	AggregateMinScore int
}

// DefaultPolicy returns the policy used with DefaultGroups.
func DefaultPolicy(registry *Registry) *Policy {
	return &Policy{
		registry:          registry,
		AggregateGroup:    GroupPromo,
		AggregateMinScore: DefaultAggregateMinScore,
	}
}

// NewPolicy creates a policy with a custom aggregate group and threshold.
func NewPolicy(registry *Registry, aggregateGroup string, aggregateMinScore int) *Policy {
	return &Policy{
		registry:          registry,
		AggregateGroup:    aggregateGroup,
		AggregateMinScore: aggregateMinScore,
	}
}

// Decide reports whether the rules flag the message as spam.
func (p *Policy) Decide(result model.MatchResult) Decision {
	for _, g := range p.registry.groups {
		hits := result.GroupHits[g.Name]
		if hits == 0 {
			continue
		}

		switch g.Priority {
		case model.PriorityHigh, model.PriorityMedium:
			if hits >= g.MinHits {
				return Decision{
					Spam:        true,
					TriggeredBy: g.Name,
					Reason: fmt.Sprintf("%s priority group matched %d of %d required pattern(s)",
						g.Priority, hits, g.MinHits),
				}
			}
		}
	}

	if result.GroupHits[p.AggregateGroup] > 0 && result.TotalScore >= p.AggregateMinScore {
		return Decision{
			Spam:        true,
			TriggeredBy: p.AggregateGroup,
			Reason: fmt.Sprintf("total score %d reached %d with %s hits",
				result.TotalScore, p.AggregateMinScore, p.AggregateGroup),
		}
	}

	return Decision{Reason: "no rule group qualified"}
}
