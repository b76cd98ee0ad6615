package domain

import "time"

// SubscriptionStatus is the lifecycle state of the current subscription.
// Expired is reserved for an external billing integration; nothing in this
// module sets it.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionTrial     SubscriptionStatus = "trial"
)

// BillingCycle selects how far out a new subscription's end date lands.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// Subscription is the single per-session subscription record. Cancelling
// keeps the plan and end date; access persists until the end date and expiry
// sweeping is the host's concern.
type Subscription struct {
	PlanID    string             `json:"plan_id"`
	Status    SubscriptionStatus `json:"status"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	AutoRenew bool               `json:"auto_renew"`
}

// UsageCounters tracks per-cycle consumption of the metered features.
// Counters reset to zero on a new subscription, but deliberately not on a
// plan change.
type UsageCounters struct {
	ProgramsAccessed    int `json:"programs_accessed"`
	LiveClassesAttended int `json:"live_classes_attended"`
	DownloadsUsed       int `json:"downloads_used"`
}
