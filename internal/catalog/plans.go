// Package catalog holds the fixed subscription-plan and achievement catalogs.
// Both are static configuration: loaded once at startup and never mutated.
package catalog

import "github.com/anafit/fitcore/internal/domain"

var plans = []domain.Plan{
	{
		ID:    domain.PlanFree,
		Name:  "Free",
		Price: 0,
		Features: []string{
			"Access to 5 basic workout programs",
			"Limited progress tracking",
			"Community access",
			"Basic nutrition tips",
			"Standard video quality",
		},
		Limits: domain.PlanLimits{
			Programs:    5,
			LiveClasses: 0,
			Downloads:   0,
			Support:     domain.SupportBasic,
		},
	},
	{
		ID:    domain.PlanStandard,
		Name:  "Standard",
		Price: 19.99,
		Features: []string{
			"Access to 50+ workout programs",
			"Full progress tracking & analytics",
			"Live classes (5 per month)",
			"Personalized meal plans",
			"HD video quality",
			"Priority customer support",
			"Offline video downloads",
		},
		Limits: domain.PlanLimits{
			Programs:    50,
			LiveClasses: 5,
			Downloads:   10,
			Support:     domain.SupportPriority,
		},
	},
	{
		ID:    domain.PlanPremium,
		Name:  "Premium",
		Price: 39.99,
		Features: []string{
			"Unlimited access to all programs",
			"Advanced analytics & insights",
			"Unlimited live classes",
			"Personal trainer consultations",
			"4K video quality",
			"24/7 priority support",
			"Exclusive premium content",
			"Custom workout creation",
			"Nutrition coaching",
			"Achievement badges & rewards",
		},
		Limits: domain.PlanLimits{
			Programs:    domain.Unlimited,
			LiveClasses: domain.Unlimited,
			Downloads:   domain.Unlimited,
			Support:     domain.SupportAroundClock,
		},
	},
}

// Plans returns a fresh copy of the plan catalog.
func Plans() []domain.Plan {
	out := make([]domain.Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID looks up a plan in the catalog.
func PlanByID(id string) (domain.Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Plan{}, false
}
