package rules

import "github.com/Veraticus/spamsift/internal/model"

// Default group names.
const (
	GroupFinancial = "financial-solicitation"
	GroupLoan      = "loan-credit-offer"
	GroupPhishing  = "phishing-request"
	GroupLottery   = "lottery-or-prize"
	GroupPromo     = "generic-promotional"
)

// DefaultGroups returns the built-in pattern groups in evaluation order.
// Patterns are written for lowercase input.
func DefaultGroups() []model.PatternGroup {
	return []model.PatternGroup{
		{
			Name: GroupFinancial,
			Patterns: []string{
				`\bearn\b.{0,20}\b\d{2,}\b`,
				`\bwork\s+from\s+home\b`,
				`\bmake\s+money\b`,
				`\bextra\s+income\b`,
				`\bno\s+investment\b`,
			},
			Priority: model.PriorityHigh,
			MinHits:  1,
		},
		{
			Name: GroupLoan,
			Patterns: []string{
				`\binstant\s+loan\b`,
				`\bpre[- ]?approved\s+loan\b`,
				`\bno\s+documents?\b`,
				`\blower\s+interest\b`,
			},
			Priority: model.PriorityMedium,
			MinHits:  1,
		},
		{
			Name: GroupPhishing,
			Patterns: []string{
				`\byour\s+account\b.{0,20}\b(suspended|blocked|closed)\b`,
				`\bverify\b.{0,15}\b(bank|account|card|details)\b`,
				`\bconfirm\b.{0,15}\b(pin|otp|password)\b`,
			},
			Priority: model.PriorityHigh,
			MinHits:  1,
		},
		{
			Name: GroupLottery,
			Patterns: []string{
				`\bcongratulations?\b.{0,20}\b(won|winner)\b`,
				`\bfree\s+(gift|prize|entry|voucher|ticket)\b`,
				`\bselected\b.{0,20}\b(lucky|winner)\b`,
			},
			Priority: model.PriorityMedium,
			MinHits:  1,
		},
		{
			// Weak on its own; only counts together with enough total score.
			Name: GroupPromo,
			Patterns: []string{
				`\blimited\s+time\s+offer\b`,
				`\bclick\s+the\s+link\b`,
				`\bcall\s+now\b`,
				`\bact\s+now\b`,
			},
			Priority: model.PriorityLow,
			MinHits:  2,
		},
	}
}
