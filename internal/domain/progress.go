package domain

import "time"

// DateFormat is the calendar-date key for daily activity records.
const DateFormat = "2006-01-02"

// WeeklyGoal is a user-set target of workout minutes per week, tracked
// against minutes accumulated since the current week's start (Sunday).
type WeeklyGoal struct {
	Target    int       `json:"target"`  // minutes per week
	Current   int       `json:"current"` // minutes accumulated this week
	WeekStart time.Time `json:"week_start"`
}

// MonthlyStats is the rolling per-month activity summary. Month is 1-12.
type MonthlyStats struct {
	VideosCompleted int `json:"videos_completed"`
	TimeWatched     int `json:"time_watched"` // seconds
	ProgramsStarted int `json:"programs_started"`
	Month           int `json:"month"`
	Year            int `json:"year"`
}

// UserProgress is the single session-wide gamification aggregate. Level and
// ExperienceToNextLevel are derived from ExperiencePoints and intentionally
// not stored, so they can never go stale.
type UserProgress struct {
	TotalPoints          int          `json:"total_points"`
	ExperiencePoints     int          `json:"experience_points"`
	TotalVideosCompleted int          `json:"total_videos_completed"`
	TotalWatchTime       int          `json:"total_watch_time"` // seconds
	CurrentStreak        int          `json:"current_streak"`
	LongestStreak        int          `json:"longest_streak"`
	ProgramsCompleted    int          `json:"programs_completed"`
	LastActivityDate     time.Time    `json:"last_activity_date"` // zero until first activity
	WeeklyGoal           WeeklyGoal   `json:"weekly_goal"`
	MonthlyStats         MonthlyStats `json:"monthly_stats"`
}

// Level is derived from experience: 100 XP per level, level 1 starts at 0 XP.
func (p UserProgress) Level() int { return p.ExperiencePoints/100 + 1 }

// ExperienceToNextLevel is how much XP is missing to reach the next level.
func (p UserProgress) ExperienceToNextLevel() int {
	return p.Level()*100 - p.ExperiencePoints
}

// DailyActivity is the activity recorded for one calendar date. There is at
// most one record per date; deltas merge into the existing record.
type DailyActivity struct {
	Date            string `json:"date"` // DateFormat
	VideosCompleted int    `json:"videos_completed"`
	TimeWatched     int    `json:"time_watched"` // seconds
	ProgramsStarted int    `json:"programs_started"`
	Points          int    `json:"points"`
}

// ActivityDelta is the increment applied by one recorded activity. All fields
// are deltas, not totals.
type ActivityDelta struct {
	VideosCompleted int
	TimeWatched     int // seconds
	ProgramsStarted int
	Points          int
}

// ProgressStats is the dashboard statistics summary.
type ProgressStats struct {
	TotalWorkouts      int
	AverageSessionTime float64 // seconds per completed video
	FavoriteCategory   string
	ImprovementRate    float64
}

// PointsEntry is one line of the append-only points ledger.
type PointsEntry struct {
	ID     string    `json:"id"`
	Time   time.Time `json:"time"`
	Points int       `json:"points"`
	Reason string    `json:"reason"`
}
