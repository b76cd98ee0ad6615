package domain

// Limit is a per-cycle cap on a metered feature. The Unlimited sentinel
// serializes as -1; every other value is a plain count.
type Limit int

// Unlimited marks a feature with no cap.
const Unlimited Limit = -1

// IsUnlimited reports whether the limit is uncapped.
func (l Limit) IsUnlimited() bool { return l == Unlimited }

// Remaining returns how much of the limit is left after used consumptions.
// It never goes negative, and Unlimited stays Unlimited.
func (l Limit) Remaining(used int) Limit {
	if l.IsUnlimited() {
		return Unlimited
	}
	if rem := int(l) - used; rem > 0 {
		return Limit(rem)
	}
	return 0
}

// SupportTier is the customer-support level included with a plan.
type SupportTier string

const (
	SupportBasic       SupportTier = "basic"
	SupportPriority    SupportTier = "priority"
	SupportAroundClock SupportTier = "24/7"
)

// Feature is a capability key checked against the current plan.
// Quota features count against PlanLimits; the premium features are
// boolean-gated on the premium plan.
type Feature string

const (
	FeaturePrograms        Feature = "programs"
	FeatureLiveClasses     Feature = "liveClasses"
	FeatureDownloads       Feature = "downloads"
	FeaturePremiumContent  Feature = "premiumContent"
	FeaturePersonalTrainer Feature = "personalTrainer"
	FeatureCustomWorkouts  Feature = "customWorkouts"
)

// PlanLimits caps the metered features of a plan.
type PlanLimits struct {
	Programs    Limit       `json:"programs"`
	LiveClasses Limit       `json:"live_classes"`
	Downloads   Limit       `json:"downloads"`
	Support     SupportTier `json:"support"`
}

// Plan is a subscription tier from the fixed catalog. Plans are never
// mutated at runtime.
type Plan struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Price    float64    `json:"price"`
	Features []string   `json:"features"`
	Limits   PlanLimits `json:"limits"`
}

// PlanFree is the plan every new session starts on. PlanPremium gates the
// boolean premium features.
const (
	PlanFree     = "free"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)
