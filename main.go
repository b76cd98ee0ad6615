package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/anafit/fitcore/internal/catalog"
	"github.com/anafit/fitcore/internal/config"
	"github.com/anafit/fitcore/internal/domain"
	"github.com/anafit/fitcore/internal/repository/sqlite"
	"github.com/anafit/fitcore/internal/service"
)

// fitcore boots the three stores over a SQLite-backed snapshot session and
// runs a scripted demo pass — the same flow the dashboard shell drives:
// log in, open a program, watch a video to the end, record the workout, and
// evaluate achievements.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, logOpts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, logOpts)
	}
	slog.SetDefault(slog.New(handler))

	ctx := context.Background()

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	clock := domain.SystemClock{}
	snapshots := db.Snapshots()

	access, err := service.NewAccessService(ctx, snapshots, clock, catalog.Plans())
	if err != nil {
		slog.Error("failed to initialize access store", "error", err)
		os.Exit(1)
	}
	videos, err := service.NewVideoService(ctx, snapshots, clock)
	if err != nil {
		slog.Error("failed to initialize video store", "error", err)
		os.Exit(1)
	}
	progress, err := service.NewProgressService(ctx, snapshots, clock, catalog.Achievements())
	if err != nil {
		slog.Error("failed to initialize progress store", "error", err)
		os.Exit(1)
	}
	identity, err := service.NewIdentityService(cfg.TokenSecret, clock)
	if err != nil {
		slog.Error("failed to initialize identity provider", "error", err)
		os.Exit(1)
	}

	if err := runDemoSession(ctx, access, videos, progress, identity); err != nil {
		slog.Error("demo session failed", "error", err)
		os.Exit(1)
	}
}

func runDemoSession(ctx context.Context, access *service.AccessService, videos *service.VideoService, progress *service.ProgressService, identity *service.IdentityService) error {
	user, _, err := identity.Login("demo@ana-fitness.com", "demo123")
	if err != nil {
		return err
	}
	slog.Info("logged in", "user", user.Name, "plan", access.CurrentPlan().Name)

	// Open a program, consuming one unit of the programs quota.
	if !access.CheckAccess(domain.FeaturePrograms) {
		slog.Warn("program quota exhausted", "remaining", access.RemainingUsage(domain.FeaturePrograms))
		return nil
	}
	if err := access.RecordUsage(ctx, domain.FeaturePrograms); err != nil {
		return err
	}

	// Watch a workout video to the end.
	videos.SetCurrentVideo(&domain.CurrentVideo{
		ID:        "morning-flow-01",
		ProgramID: "yoga-basics",
		Title:     "Morning Flow",
	})
	duration := 600.0
	if _, err := videos.UpdateProgress(ctx, "morning-flow-01", "yoga-basics", domain.VideoProgressUpdate{
		CurrentTime: &duration,
		Duration:    &duration,
	}); err != nil {
		return err
	}
	if err := videos.MarkComplete(ctx, "morning-flow-01", "yoga-basics"); err != nil {
		return err
	}

	// Record the workout and evaluate achievements.
	if err := progress.RecordActivity(ctx, domain.ActivityDelta{
		VideosCompleted: 1,
		TimeWatched:     int(duration),
		Points:          50,
	}); err != nil {
		return err
	}
	unlocked, err := progress.CheckAndUnlockAchievements(ctx)
	if err != nil {
		return err
	}
	for _, a := range unlocked {
		slog.Info("new achievement", "title", a.Title, "points", a.Points)
	}

	p := progress.Progress()
	stats := progress.Stats()
	slog.Info("session summary",
		"total_watch_time", videos.TotalWatchTime(),
		"completed_videos", videos.CompletedCount(),
		"level", p.Level(),
		"xp_to_next_level", p.ExperienceToNextLevel(),
		"total_points", p.TotalPoints,
		"streak", p.CurrentStreak,
		"weekly_goal_minutes", p.WeeklyGoal.Current,
		"average_session_time", stats.AverageSessionTime,
		"remaining_programs", int64(access.RemainingUsage(domain.FeaturePrograms)),
	)
	return nil
}
