package service

import (
	"context"
	"errors"
	"testing"

	"github.com/anafit/fitcore/internal/domain"
	"github.com/anafit/fitcore/internal/repository/memory"
)

func TestDefaultSubscriptionIsFreeActive(t *testing.T) {
	clock := &fakeClock{now: testNow}
	access := newTestAccess(t, memory.NewStore(), clock)

	sub := access.Current()
	if sub.PlanID != domain.PlanFree {
		t.Errorf("plan = %s, want free", sub.PlanID)
	}
	if sub.Status != domain.SubscriptionActive {
		t.Errorf("status = %s, want active", sub.Status)
	}
	if sub.AutoRenew {
		t.Error("expected auto-renew off for the initial free subscription")
	}
	if want := testNow.AddDate(1, 0, 0); !sub.EndDate.Equal(want) {
		t.Errorf("end date = %v, want %v", sub.EndDate, want)
	}
}

func TestSubscribeResetsUsage(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	access := newTestAccess(t, memory.NewStore(), clock)

	for i := 0; i < 3; i++ {
		if err := access.RecordUsage(ctx, domain.FeaturePrograms); err != nil {
			t.Fatalf("RecordUsage: %v", err)
		}
	}

	if err := access.Subscribe(ctx, domain.PlanStandard, domain.BillingMonthly); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	sub := access.Current()
	if sub.Status != domain.SubscriptionActive || !sub.AutoRenew {
		t.Errorf("subscription = %+v, want active with auto-renew", sub)
	}
	if want := testNow.AddDate(0, 1, 0); !sub.EndDate.Equal(want) {
		t.Errorf("monthly end date = %v, want %v", sub.EndDate, want)
	}

	// Counters reset: every quota feature reports the new plan's full limit.
	if got := access.RemainingUsage(domain.FeaturePrograms); got != 50 {
		t.Errorf("remaining programs = %d, want 50", got)
	}
	if got := access.RemainingUsage(domain.FeatureLiveClasses); got != 5 {
		t.Errorf("remaining live classes = %d, want 5", got)
	}
	if got := access.RemainingUsage(domain.FeatureDownloads); got != 10 {
		t.Errorf("remaining downloads = %d, want 10", got)
	}
}

func TestSubscribeYearlyEndDate(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	access := newTestAccess(t, memory.NewStore(), clock)

	if err := access.Subscribe(ctx, domain.PlanPremium, domain.BillingYearly); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if want := testNow.AddDate(1, 0, 0); !access.Current().EndDate.Equal(want) {
		t.Errorf("yearly end date = %v, want %v", access.Current().EndDate, want)
	}
}

func TestSubscribeUnknownPlan(t *testing.T) {
	ctx := context.Background()
	access := newTestAccess(t, memory.NewStore(), &fakeClock{now: testNow})

	err := access.Subscribe(ctx, "platinum", domain.BillingMonthly)
	if !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
	if access.Current().PlanID != domain.PlanFree {
		t.Error("failed subscribe must not change the subscription")
	}
}

func TestSubscribeInvalidCycle(t *testing.T) {
	ctx := context.Background()
	access := newTestAccess(t, memory.NewStore(), &fakeClock{now: testNow})

	err := access.Subscribe(ctx, domain.PlanStandard, "weekly")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestChangePlanKeepsUsage(t *testing.T) {
	ctx := context.Background()
	access := newTestAccess(t, memory.NewStore(), &fakeClock{now: testNow})

	if err := access.Subscribe(ctx, domain.PlanStandard, domain.BillingMonthly); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := access.RecordUsage(ctx, domain.FeaturePrograms); err != nil {
			t.Fatalf("RecordUsage: %v", err)
		}
	}
	before := access.Usage()

	if err := access.ChangePlan(ctx, domain.PlanPremium); err != nil {
		t.Fatalf("ChangePlan: %v", err)
	}

	// Plan swapped, counters untouched: a mid-cycle change does not refill.
	if access.Current().PlanID != domain.PlanPremium {
		t.Errorf("plan = %s, want premium", access.Current().PlanID)
	}
	if access.Usage() != before {
		t.Errorf("usage changed across ChangePlan: %+v -> %+v", before, access.Usage())
	}
}

func TestChangePlanUnknown(t *testing.T) {
	access := newTestAccess(t, memory.NewStore(), &fakeClock{now: testNow})

	if err := access.ChangePlan(context.Background(), "gold"); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestCancelKeepsPlanAndEndDate(t *testing.T) {
	ctx := context.Background()
	access := newTestAccess(t, memory.NewStore(), &fakeClock{now: testNow})

	if err := access.Subscribe(ctx, domain.PlanStandard, domain.BillingYearly); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	end := access.Current().EndDate

	if err := access.Cancel(ctx); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	sub := access.Current()
	if sub.Status != domain.SubscriptionCancelled {
		t.Errorf("status = %s, want cancelled", sub.Status)
	}
	if sub.AutoRenew {
		t.Error("auto-renew must be off after cancel")
	}
	if sub.PlanID != domain.PlanStandard || !sub.EndDate.Equal(end) {
		t.Error("cancel must keep the plan and end date; access runs until expiry")
	}
}

func TestRemainingUsageNeverNegative(t *testing.T) {
	ctx := context.Background()
	access := newTestAccess(t, memory.NewStore(), &fakeClock{now: testNow})

	// Free plan caps programs at 5; overrun the counter past the limit.
	for i := 0; i < 8; i++ {
		if err := access.RecordUsage(ctx, domain.FeaturePrograms); err != nil {
			t.Fatalf("RecordUsage: %v", err)
		}
	}

	if got := access.RemainingUsage(domain.FeaturePrograms); got != 0 {
		t.Errorf("remaining = %d, want 0 after overrun", got)
	}
	if access.CheckAccess(domain.FeaturePrograms) {
		t.Error("access must be denied once usage reaches the limit")
	}
}

func TestCheckAccessPremiumGates(t *testing.T) {
	ctx := context.Background()
	access := newTestAccess(t, memory.NewStore(), &fakeClock{now: testNow})

	for _, f := range []domain.Feature{domain.FeaturePremiumContent, domain.FeaturePersonalTrainer, domain.FeatureCustomWorkouts} {
		if access.CheckAccess(f) {
			t.Errorf("free plan must not grant %s", f)
		}
	}

	if err := access.Subscribe(ctx, domain.PlanPremium, domain.BillingMonthly); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	for _, f := range []domain.Feature{domain.FeaturePremiumContent, domain.FeaturePersonalTrainer, domain.FeatureCustomWorkouts} {
		if !access.CheckAccess(f) {
			t.Errorf("premium plan must grant %s", f)
		}
	}
	if got := access.RemainingUsage(domain.FeaturePrograms); !got.IsUnlimited() {
		t.Errorf("premium programs = %d, want unlimited", got)
	}
}

func TestCheckAccessUnknownFeature(t *testing.T) {
	access := newTestAccess(t, memory.NewStore(), &fakeClock{now: testNow})

	// Default-allow for unknown capability keys, zero remaining quota.
	if !access.CheckAccess("fooBar") {
		t.Error("unknown feature keys default to allowed")
	}
	if got := access.RemainingUsage("fooBar"); got != 0 {
		t.Errorf("unknown feature remaining = %d, want 0", got)
	}
}

func TestRecordUsageNonMetered(t *testing.T) {
	access := newTestAccess(t, memory.NewStore(), &fakeClock{now: testNow})

	err := access.RecordUsage(context.Background(), domain.FeaturePremiumContent)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAccessSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clock := &fakeClock{now: testNow}

	access := newTestAccess(t, store, clock)
	if err := access.Subscribe(ctx, domain.PlanStandard, domain.BillingMonthly); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := access.RecordUsage(ctx, domain.FeatureDownloads); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}

	reloaded := newTestAccess(t, store, clock)

	want, got := access.Current(), reloaded.Current()
	if got.PlanID != want.PlanID || got.Status != want.Status || got.AutoRenew != want.AutoRenew {
		t.Errorf("reloaded subscription = %+v, want %+v", got, want)
	}
	if !got.StartDate.Equal(want.StartDate) || !got.EndDate.Equal(want.EndDate) {
		t.Errorf("dates did not round-trip: %+v vs %+v", got, want)
	}
	if reloaded.Usage() != access.Usage() {
		t.Errorf("usage did not round-trip: %+v vs %+v", reloaded.Usage(), access.Usage())
	}
}

func TestCorruptAccessSnapshotFallsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	if err := store.Save(ctx, "access_control", []byte("{definitely not json")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	access := newTestAccess(t, store, &fakeClock{now: testNow})
	if access.Current().PlanID != domain.PlanFree {
		t.Error("corrupt snapshot must fall back to the default free subscription")
	}
}
