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
	"github.com/google/uuid"
)

const (
	progressSnapshotKey     = "user_progress"
	progressSnapshotVersion = 1
)

// achievementUnlock is the persisted unlock state of one achievement.
// Definitions stay in the catalog; only the unlock survives restarts.
type achievementUnlock struct {
	ID         string     `json:"id"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

type progressSnapshot struct {
	Version    int                    `json:"version"`
	Progress   domain.UserProgress    `json:"progress"`
	Unlocks    []achievementUnlock    `json:"unlocks"`
	Activities []domain.DailyActivity `json:"activities"`
	History    []domain.PointsEntry   `json:"history"`
}

// ProgressService is the gamification store: experience and leveling, streaks,
// the weekly goal, monthly rollups, achievement unlocks, and the points ledger.
type ProgressService struct {
	mu        sync.Mutex
	snapshots domain.SnapshotRepository
	clock     domain.Clock

	progress     domain.UserProgress
	achievements []domain.Achievement
	activities   []domain.DailyActivity
	history      []domain.PointsEntry
}

// NewProgressService creates a ProgressService over the given achievement
// catalog, restoring prior state from the snapshot store. Persisted unlocks
// are re-applied onto the catalog by achievement id.
func NewProgressService(ctx context.Context, snapshots domain.SnapshotRepository, clock domain.Clock, achievements []domain.Achievement) (*ProgressService, error) {
	s := &ProgressService{snapshots: snapshots, clock: clock, achievements: achievements}

	data, err := snapshots.Load(ctx, progressSnapshotKey)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load progress snapshot: %w", err)
	}
	if err == nil {
		var snap progressSnapshot
		if jerr := json.Unmarshal(data, &snap); jerr != nil {
			slog.Warn("discarding unreadable progress snapshot", "error", jerr)
		} else {
			s.progress = snap.Progress
			s.activities = snap.Activities
			s.history = snap.History
			s.applyUnlocks(snap.Unlocks)
			return s, nil
		}
	}

	now := clock.Now()
	s.progress = domain.UserProgress{
		WeeklyGoal: domain.WeeklyGoal{
			Target:    150, // 2.5 hours per week
			WeekStart: startOfWeek(now),
		},
		MonthlyStats: domain.MonthlyStats{
			Month: int(now.Month()),
			Year:  now.Year(),
		},
	}

	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordActivity merges a delta into today's activity record and updates the
// aggregate: totals, monthly stats, weekly-goal minutes, streak, and
// experience. All delta fields are increments.
func (s *ProgressService) RecordActivity(ctx context.Context, delta domain.ActivityDelta) error {
	if delta.VideosCompleted < 0 || delta.TimeWatched < 0 || delta.ProgramsStarted < 0 || delta.Points < 0 {
		return fmt.Errorf("%w: activity deltas must not be negative", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.rollWindowsLocked(now)

	today := now.Format(domain.DateFormat)
	i := s.activityIndex(today)
	if i < 0 {
		s.activities = append(s.activities, domain.DailyActivity{Date: today})
		i = len(s.activities) - 1
	}
	a := &s.activities[i]
	a.VideosCompleted += delta.VideosCompleted
	a.TimeWatched += delta.TimeWatched
	a.ProgramsStarted += delta.ProgramsStarted
	a.Points += delta.Points

	p := &s.progress
	p.TotalVideosCompleted += delta.VideosCompleted
	p.MonthlyStats.VideosCompleted += delta.VideosCompleted
	p.TotalWatchTime += delta.TimeWatched
	p.MonthlyStats.TimeWatched += delta.TimeWatched
	p.WeeklyGoal.Current += delta.TimeWatched / 60
	p.MonthlyStats.ProgramsStarted += delta.ProgramsStarted
	p.ExperiencePoints += delta.Points
	p.LastActivityDate = now

	// The streak is recomputed from the full daily history on every write;
	// no incremental counter is trusted as the source of truth.
	p.CurrentStreak = s.streakLocked(now)
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}

	return s.saveLocked(ctx)
}

// RecordProgramCompleted counts a fully finished program toward the
// programs_completed achievements.
func (s *ProgressService) RecordProgramCompleted(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.ProgramsCompleted++

	return s.saveLocked(ctx)
}

// Streak returns the current streak: consecutive calendar days ending today,
// each with at least one completed video. A day without activity breaks it.
func (s *ProgressService) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streakLocked(s.clock.Now())
}

func (s *ProgressService) streakLocked(now time.Time) int {
	byDate := make(map[string]domain.DailyActivity, len(s.activities))
	for _, a := range s.activities {
		byDate[a.Date] = a
	}

	streak := 0
	for day := now; ; day = day.AddDate(0, 0, -1) {
		a, ok := byDate[day.Format(domain.DateFormat)]
		if !ok || a.VideosCompleted == 0 {
			break
		}
		streak++
	}
	return streak
}

// CheckAndUnlockAchievements evaluates every still-locked achievement against
// the current aggregate and unlocks the ones whose threshold is met, awarding
// their points. Returns the newly unlocked batch. Already-unlocked
// achievements are never re-evaluated, so repeated calls are idempotent.
func (s *ProgressService) CheckAndUnlockAchievements(ctx context.Context) ([]domain.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var unlocked []domain.Achievement

	for i := range s.achievements {
		a := &s.achievements[i]
		if a.IsUnlocked || !s.requirementMetLocked(a.Requirement) {
			continue
		}

		a.IsUnlocked = true
		at := now
		a.UnlockedAt = &at
		s.addPointsLocked(now, a.Points, "Achievement: "+a.Title)
		unlocked = append(unlocked, *a)
		slog.Info("achievement unlocked", "id", a.ID, "title", a.Title, "points", a.Points)
	}

	if len(unlocked) == 0 {
		return nil, nil
	}
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	return unlocked, nil
}

func (s *ProgressService) requirementMetLocked(req domain.Requirement) bool {
	switch req.Type {
	case domain.RequireVideosCompleted:
		return s.progress.TotalVideosCompleted >= req.Value
	case domain.RequireTotalTime:
		return s.progress.TotalWatchTime >= req.Value
	case domain.RequireStreakDays:
		return s.progress.CurrentStreak >= req.Value
	case domain.RequireProgramsCompleted:
		return s.progress.ProgramsCompleted >= req.Value
	default:
		return false
	}
}

// AddPoints credits points toward the total score and experience, and appends
// an entry to the points ledger.
func (s *ProgressService) AddPoints(ctx context.Context, points int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addPointsLocked(s.clock.Now(), points, reason)

	return s.saveLocked(ctx)
}

func (s *ProgressService) addPointsLocked(now time.Time, points int, reason string) {
	s.progress.TotalPoints += points
	s.progress.ExperiencePoints += points
	s.history = append(s.history, domain.PointsEntry{
		ID:     uuid.NewString(),
		Time:   now,
		Points: points,
		Reason: reason,
	})
}

// SetWeeklyGoal replaces the weekly target. Accumulated minutes and the week
// start are untouched.
func (s *ProgressService) SetWeeklyGoal(ctx context.Context, targetMinutes int) error {
	if targetMinutes < 0 {
		return fmt.Errorf("%w: weekly goal must not be negative", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.WeeklyGoal.Target = targetMinutes

	return s.saveLocked(ctx)
}

// TodayActivity returns today's activity record, zero-valued if nothing has
// been recorded yet.
func (s *ProgressService) TodayActivity() domain.DailyActivity {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.clock.Now().Format(domain.DateFormat)
	if i := s.activityIndex(today); i >= 0 {
		return s.activities[i]
	}
	return domain.DailyActivity{Date: today}
}

// WeeklyActivity returns the records since the most recent Sunday.
func (s *ProgressService) WeeklyActivity() []domain.DailyActivity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activitiesSince(startOfWeek(s.clock.Now()))
}

// MonthlyActivity returns the records since the first of the current month.
func (s *ProgressService) MonthlyActivity() []domain.DailyActivity {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.activitiesSince(first)
}

// Stats summarizes progress for the dashboard. FavoriteCategory and
// ImprovementRate are fixed placeholders: the product never computed them
// from real data, and inventing analytics here would be misleading.
func (s *ProgressService) Stats() domain.ProgressStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.ProgressStats{
		TotalWorkouts:    s.progress.TotalVideosCompleted,
		FavoriteCategory: "Yoga",
		ImprovementRate:  15,
	}
	if stats.TotalWorkouts > 0 {
		stats.AverageSessionTime = float64(s.progress.TotalWatchTime) / float64(stats.TotalWorkouts)
	}
	return stats
}

// Progress returns the aggregate progress record.
func (s *ProgressService) Progress() domain.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Achievements returns the full catalog with current unlock state.
func (s *ProgressService) Achievements() []domain.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Achievement, len(s.achievements))
	copy(out, s.achievements)
	return out
}

// UnlockedAchievements returns only the unlocked achievements.
func (s *ProgressService) UnlockedAchievements() []domain.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Achievement
	for _, a := range s.achievements {
		if a.IsUnlocked {
			out = append(out, a)
		}
	}
	return out
}

// PointsHistory returns the append-only points ledger, oldest first.
func (s *ProgressService) PointsHistory() []domain.PointsEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.PointsEntry, len(s.history))
	copy(out, s.history)
	return out
}

// rollWindowsLocked resets the weekly and monthly windows when the clock has
// crossed into a new week or month since the last write.
func (s *ProgressService) rollWindowsLocked(now time.Time) {
	if ws := startOfWeek(now); s.progress.WeeklyGoal.WeekStart.Before(ws) {
		s.progress.WeeklyGoal.WeekStart = ws
		s.progress.WeeklyGoal.Current = 0
	}
	if s.progress.MonthlyStats.Month != int(now.Month()) || s.progress.MonthlyStats.Year != now.Year() {
		s.progress.MonthlyStats = domain.MonthlyStats{
			Month: int(now.Month()),
			Year:  now.Year(),
		}
	}
}

func (s *ProgressService) activityIndex(date string) int {
	for i, a := range s.activities {
		if a.Date == date {
			return i
		}
	}
	return -1
}

// activitiesSince relies on the date-string format sorting lexicographically.
func (s *ProgressService) activitiesSince(cutoff time.Time) []domain.DailyActivity {
	from := cutoff.Format(domain.DateFormat)
	var out []domain.DailyActivity
	for _, a := range s.activities {
		if a.Date >= from {
			out = append(out, a)
		}
	}
	return out
}

func (s *ProgressService) applyUnlocks(unlocks []achievementUnlock) {
	byID := make(map[string]achievementUnlock, len(unlocks))
	for _, u := range unlocks {
		byID[u.ID] = u
	}
	for i := range s.achievements {
		if u, ok := byID[s.achievements[i].ID]; ok {
			s.achievements[i].IsUnlocked = true
			s.achievements[i].UnlockedAt = u.UnlockedAt
		}
	}
}

func (s *ProgressService) saveLocked(ctx context.Context) error {
	var unlocks []achievementUnlock
	for _, a := range s.achievements {
		if a.IsUnlocked {
			unlocks = append(unlocks, achievementUnlock{ID: a.ID, UnlockedAt: a.UnlockedAt})
		}
	}

	snap := progressSnapshot{
		Version:    progressSnapshotVersion,
		Progress:   s.progress,
		Unlocks:    unlocks,
		Activities: s.activities,
		History:    s.history,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal progress snapshot: %w", err)
	}
	if err := s.snapshots.Save(ctx, progressSnapshotKey, data); err != nil {
		return fmt.Errorf("save progress snapshot: %w", err)
	}
	return nil
}

// startOfWeek returns midnight of the most recent Sunday.
func startOfWeek(t time.Time) time.Time {
	d := t.AddDate(0, 0, -int(t.Weekday()))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}
