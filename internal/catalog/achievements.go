package catalog

import "github.com/anafit/fitcore/internal/domain"

var achievements = []domain.Achievement{
	{
		ID:          "first_video",
		Title:       "First Steps",
		Description: "Complete your first workout video",
		Icon:        "🎯",
		Category:    domain.CategoryMilestone,
		Requirement: domain.Requirement{Type: domain.RequireVideosCompleted, Value: 1},
		Points:      50,
	},
	{
		ID:          "five_videos",
		Title:       "Getting Started",
		Description: "Complete 5 workout videos",
		Icon:        "🔥",
		Category:    domain.CategoryWorkout,
		Requirement: domain.Requirement{Type: domain.RequireVideosCompleted, Value: 5},
		Points:      100,
	},
	{
		ID:          "ten_videos",
		Title:       "Dedicated Learner",
		Description: "Complete 10 workout videos",
		Icon:        "💪",
		Category:    domain.CategoryWorkout,
		Requirement: domain.Requirement{Type: domain.RequireVideosCompleted, Value: 10},
		Points:      200,
	},
	{
		ID:          "first_hour",
		Title:       "Time Keeper",
		Description: "Watch 1 hour of content",
		Icon:        "⏰",
		Category:    domain.CategoryTime,
		Requirement: domain.Requirement{Type: domain.RequireTotalTime, Value: 3600},
		Points:      75,
	},
	{
		ID:          "five_hours",
		Title:       "Committed Student",
		Description: "Watch 5 hours of content",
		Icon:        "📚",
		Category:    domain.CategoryTime,
		Requirement: domain.Requirement{Type: domain.RequireTotalTime, Value: 18000},
		Points:      250,
	},
	{
		ID:          "three_day_streak",
		Title:       "Consistency",
		Description: "Maintain a 3-day workout streak",
		Icon:        "🔥",
		Category:    domain.CategoryStreak,
		Requirement: domain.Requirement{Type: domain.RequireStreakDays, Value: 3},
		Points:      150,
	},
	{
		ID:          "week_streak",
		Title:       "Weekly Warrior",
		Description: "Maintain a 7-day workout streak",
		Icon:        "⚡",
		Category:    domain.CategoryStreak,
		Requirement: domain.Requirement{Type: domain.RequireStreakDays, Value: 7},
		Points:      300,
	},
	{
		ID:          "first_program",
		Title:       "Program Pioneer",
		Description: "Complete your first program",
		Icon:        "🏆",
		Category:    domain.CategoryMilestone,
		Requirement: domain.Requirement{Type: domain.RequireProgramsCompleted, Value: 1},
		Points:      500,
	},
}

// Achievements returns a fresh copy of the achievement catalog, all locked.
func Achievements() []domain.Achievement {
	out := make([]domain.Achievement, len(achievements))
	copy(out, achievements)
	return out
}
