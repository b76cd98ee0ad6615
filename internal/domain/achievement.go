package domain

import "time"

// AchievementCategory groups achievements for display.
type AchievementCategory string

const (
	CategoryWorkout   AchievementCategory = "workout"
	CategoryStreak    AchievementCategory = "streak"
	CategoryTime      AchievementCategory = "time"
	CategoryMilestone AchievementCategory = "milestone"
	CategorySocial    AchievementCategory = "social"
)

// RequirementType names the UserProgress field an achievement is measured
// against.
type RequirementType string

const (
	RequireVideosCompleted   RequirementType = "videos_completed"
	RequireTotalTime         RequirementType = "total_time" // seconds of TotalWatchTime
	RequireStreakDays        RequirementType = "streak_days"
	RequireProgramsCompleted RequirementType = "programs_completed"
)

// Requirement is the threshold an achievement unlocks at.
type Requirement struct {
	Type  RequirementType `json:"type"`
	Value int             `json:"value"`
}

// Achievement is a catalog entry plus its unlock state. The definition is
// fixed at startup; IsUnlocked flips false to true exactly once and never
// reverts.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	Requirement Requirement         `json:"requirement"`
	Points      int                 `json:"points"`
	IsUnlocked  bool                `json:"is_unlocked"`
	UnlockedAt  *time.Time          `json:"unlocked_at,omitempty"`
}
