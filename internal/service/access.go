// Package service contains the state-management stores: access control,
// video progress, gamified progress, and the mock identity provider. Each
// store owns its in-memory state exclusively, guards it with a mutex so every
// write is atomic, and persists a full snapshot after each mutation.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anafit/fitcore/internal/domain"
)

const (
	accessSnapshotKey     = "access_control"
	accessSnapshotVersion = 1
)

type accessSnapshot struct {
	Version      int                  `json:"version"`
	Subscription domain.Subscription  `json:"subscription"`
	Usage        domain.UsageCounters `json:"usage"`
}

// AccessService gates feature access by the current subscription plan and
// tracks metered usage within the billing cycle.
type AccessService struct {
	mu        sync.Mutex
	snapshots domain.SnapshotRepository
	clock     domain.Clock
	plans     []domain.Plan

	sub   domain.Subscription
	usage domain.UsageCounters
}

// NewAccessService creates an AccessService over the given plan catalog,
// restoring prior state from the snapshot store. A missing or unreadable
// snapshot starts a fresh session on the free plan.
func NewAccessService(ctx context.Context, snapshots domain.SnapshotRepository, clock domain.Clock, plans []domain.Plan) (*AccessService, error) {
	s := &AccessService{snapshots: snapshots, clock: clock, plans: plans}

	data, err := snapshots.Load(ctx, accessSnapshotKey)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load access snapshot: %w", err)
	}
	if err == nil {
		var snap accessSnapshot
		if jerr := json.Unmarshal(data, &snap); jerr != nil {
			slog.Warn("discarding unreadable access snapshot", "error", jerr)
		} else if _, ok := s.planByID(snap.Subscription.PlanID); !ok {
			slog.Warn("discarding access snapshot with unknown plan", "plan_id", snap.Subscription.PlanID)
		} else {
			s.sub = snap.Subscription
			s.usage = snap.Usage
			return s, nil
		}
	}

	now := clock.Now()
	s.sub = domain.Subscription{
		PlanID:    domain.PlanFree,
		Status:    domain.SubscriptionActive,
		StartDate: now,
		EndDate:   now.AddDate(1, 0, 0),
		AutoRenew: false,
	}
	s.usage = domain.UsageCounters{}

	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Subscribe starts a new subscription on the given plan. The end date is one
// month or one year out depending on the billing cycle, and all usage
// counters reset to zero.
func (s *AccessService) Subscribe(ctx context.Context, planID string, cycle domain.BillingCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.planByID(planID); !ok {
		return domain.ErrPlanNotFound
	}

	now := s.clock.Now()
	var end time.Time
	switch cycle {
	case domain.BillingMonthly:
		end = now.AddDate(0, 1, 0)
	case domain.BillingYearly:
		end = now.AddDate(1, 0, 0)
	default:
		return fmt.Errorf("%w: unknown billing cycle %q", domain.ErrInvalidInput, cycle)
	}

	s.sub = domain.Subscription{
		PlanID:    planID,
		Status:    domain.SubscriptionActive,
		StartDate: now,
		EndDate:   end,
		AutoRenew: true,
	}
	s.usage = domain.UsageCounters{}

	return s.saveLocked(ctx)
}

// Cancel marks the subscription cancelled and turns off auto-renew. The plan
// and end date are kept; access persists until the end date and expiry
// sweeping is the host's concern.
func (s *AccessService) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub.PlanID == "" {
		return domain.ErrNoActiveSubscription
	}

	s.sub.Status = domain.SubscriptionCancelled
	s.sub.AutoRenew = false

	return s.saveLocked(ctx)
}

// ChangePlan swaps the subscription to another plan. Unlike Subscribe it
// keeps the usage counters; a mid-cycle plan change does not refill quotas.
func (s *AccessService) ChangePlan(ctx context.Context, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub.PlanID == "" {
		return domain.ErrNoActiveSubscription
	}
	if _, ok := s.planByID(planID); !ok {
		return domain.ErrPlanNotFound
	}

	s.sub.PlanID = planID

	return s.saveLocked(ctx)
}

// CheckAccess reports whether the current plan still grants the feature.
// Quota features pass while usage is under the plan limit; the premium
// features require the premium plan. Unknown feature keys are allowed —
// deliberate default-allow, matching the product's permissive gating.
func (s *AccessService) CheckAccess(feature domain.Feature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, ok := s.planByID(s.sub.PlanID)
	if !ok {
		return false
	}

	switch feature {
	case domain.FeaturePrograms:
		return plan.Limits.Programs.IsUnlimited() || s.usage.ProgramsAccessed < int(plan.Limits.Programs)
	case domain.FeatureLiveClasses:
		return plan.Limits.LiveClasses.IsUnlimited() || s.usage.LiveClassesAttended < int(plan.Limits.LiveClasses)
	case domain.FeatureDownloads:
		return plan.Limits.Downloads.IsUnlimited() || s.usage.DownloadsUsed < int(plan.Limits.Downloads)
	case domain.FeaturePremiumContent, domain.FeaturePersonalTrainer, domain.FeatureCustomWorkouts:
		return plan.ID == domain.PlanPremium
	default:
		return true
	}
}

// RemainingUsage returns how much quota is left for a metered feature.
// Unrecognized features report zero.
func (s *AccessService) RemainingUsage(feature domain.Feature) domain.Limit {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, ok := s.planByID(s.sub.PlanID)
	if !ok {
		return 0
	}

	switch feature {
	case domain.FeaturePrograms:
		return plan.Limits.Programs.Remaining(s.usage.ProgramsAccessed)
	case domain.FeatureLiveClasses:
		return plan.Limits.LiveClasses.Remaining(s.usage.LiveClassesAttended)
	case domain.FeatureDownloads:
		return plan.Limits.Downloads.Remaining(s.usage.DownloadsUsed)
	default:
		return 0
	}
}

// RecordUsage counts one consumption of a metered feature. It does not gate:
// callers check access first, and counters keep counting past the limit.
func (s *AccessService) RecordUsage(ctx context.Context, feature domain.Feature) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch feature {
	case domain.FeaturePrograms:
		s.usage.ProgramsAccessed++
	case domain.FeatureLiveClasses:
		s.usage.LiveClassesAttended++
	case domain.FeatureDownloads:
		s.usage.DownloadsUsed++
	default:
		return fmt.Errorf("%w: feature %q is not metered", domain.ErrInvalidInput, feature)
	}

	return s.saveLocked(ctx)
}

// Current returns the subscription record.
func (s *AccessService) Current() domain.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub
}

// CurrentPlan returns the catalog entry for the subscribed plan.
func (s *AccessService) CurrentPlan() domain.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, _ := s.planByID(s.sub.PlanID)
	return plan
}

// Usage returns the current usage counters.
func (s *AccessService) Usage() domain.UsageCounters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage
}

// Plans returns the plan catalog.
func (s *AccessService) Plans() []domain.Plan {
	out := make([]domain.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *AccessService) planByID(id string) (domain.Plan, bool) {
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Plan{}, false
}

func (s *AccessService) saveLocked(ctx context.Context) error {
	snap := accessSnapshot{
		Version:      accessSnapshotVersion,
		Subscription: s.sub,
		Usage:        s.usage,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal access snapshot: %w", err)
	}
	if err := s.snapshots.Save(ctx, accessSnapshotKey, data); err != nil {
		return fmt.Errorf("save access snapshot: %w", err)
	}
	return nil
}
