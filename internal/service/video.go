package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/anafit/fitcore/internal/domain"
)

const (
	videoSnapshotKey     = "video_progress"
	videoSnapshotVersion = 1
)

type videoSnapshot struct {
	Version  int                    `json:"version"`
	Progress []domain.VideoProgress `json:"progress"`
	Playback domain.PlaybackState   `json:"playback"`
}

// VideoService tracks per-video watch position and completion across
// programs, plus the session-wide player preferences.
type VideoService struct {
	mu        sync.Mutex
	snapshots domain.SnapshotRepository
	clock     domain.Clock

	progress []domain.VideoProgress
	playback domain.PlaybackState
	current  *domain.CurrentVideo // transient, not persisted
}

// NewVideoService creates a VideoService, restoring prior watch state from
// the snapshot store.
func NewVideoService(ctx context.Context, snapshots domain.SnapshotRepository, clock domain.Clock) (*VideoService, error) {
	s := &VideoService{snapshots: snapshots, clock: clock}

	data, err := snapshots.Load(ctx, videoSnapshotKey)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load video snapshot: %w", err)
	}
	if err == nil {
		var snap videoSnapshot
		if jerr := json.Unmarshal(data, &snap); jerr != nil {
			slog.Warn("discarding unreadable video snapshot", "error", jerr)
		} else {
			s.progress = snap.Progress
			s.playback = snap.Playback
			return s, nil
		}
	}

	s.playback = domain.DefaultPlaybackState()

	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateProgress upserts the watch record for a (video, program) pair. A new
// record starts at zero position and duration; LastWatched is stamped on
// every call. The layer does not validate CurrentTime against Duration —
// position reporting is the player's job.
func (s *VideoService) UpdateProgress(ctx context.Context, videoID, programID string, update domain.VideoProgressUpdate) (domain.VideoProgress, error) {
	if videoID == "" || programID == "" {
		return domain.VideoProgress{}, fmt.Errorf("%w: video and program ids are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(videoID, programID)
	if i < 0 {
		s.progress = append(s.progress, domain.VideoProgress{
			VideoID:   videoID,
			ProgramID: programID,
		})
		i = len(s.progress) - 1
	}

	rec := &s.progress[i]
	if update.CurrentTime != nil {
		rec.CurrentTime = *update.CurrentTime
	}
	if update.Duration != nil {
		rec.Duration = *update.Duration
	}
	// Completed never reverts through a partial update.
	if update.Completed != nil && *update.Completed {
		rec.Completed = true
	}
	rec.LastWatched = s.clock.Now()

	if err := s.saveLocked(ctx); err != nil {
		return domain.VideoProgress{}, err
	}
	return *rec, nil
}

// MarkComplete flags the (video, program) pair as completed, leaving the
// recorded position and duration untouched.
func (s *VideoService) MarkComplete(ctx context.Context, videoID, programID string) error {
	completed := true
	_, err := s.UpdateProgress(ctx, videoID, programID, domain.VideoProgressUpdate{Completed: &completed})
	return err
}

// Progress returns the watch record for a pair, if one exists.
func (s *VideoService) Progress(videoID, programID string) (domain.VideoProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(videoID, programID); i >= 0 {
		return s.progress[i], true
	}
	return domain.VideoProgress{}, false
}

// TotalWatchTime sums watch time in seconds across all records. A completed
// video counts its full duration regardless of actual time spent; an
// in-progress video counts only the position reached. That is the product's
// scoring rule, not an approximation.
func (s *VideoService) TotalWatchTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, p := range s.progress {
		if p.Completed {
			total += p.Duration
		} else {
			total += p.CurrentTime
		}
	}
	return total
}

// CompletedCount returns how many tracked videos are completed.
func (s *VideoService) CompletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, p := range s.progress {
		if p.Completed {
			count++
		}
	}
	return count
}

// ProgramProgress summarizes completion over the tracked videos of one
// program. With no tracked videos the percentage is zero.
func (s *VideoService) ProgramProgress(programID string) domain.ProgramProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pp domain.ProgramProgress
	for _, p := range s.progress {
		if p.ProgramID != programID {
			continue
		}
		pp.Total++
		if p.Completed {
			pp.Completed++
		}
	}
	if pp.Total > 0 {
		pp.Percentage = float64(pp.Completed) / float64(pp.Total) * 100
	}
	return pp
}

// UpdatePlaybackState applies a partial update to the session-wide player
// preferences.
func (s *VideoService) UpdatePlaybackState(ctx context.Context, update domain.PlaybackStateUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.IsPlaying != nil {
		s.playback.IsPlaying = *update.IsPlaying
	}
	if update.IsMuted != nil {
		s.playback.IsMuted = *update.IsMuted
	}
	if update.Volume != nil {
		s.playback.Volume = *update.Volume
	}
	if update.PlaybackRate != nil {
		s.playback.PlaybackRate = *update.PlaybackRate
	}
	if update.Quality != nil {
		s.playback.Quality = *update.Quality
	}
	if update.Subtitles != nil {
		s.playback.Subtitles = *update.Subtitles
	}
	if update.Fullscreen != nil {
		s.playback.Fullscreen = *update.Fullscreen
	}

	return s.saveLocked(ctx)
}

// PlaybackState returns the current player preferences.
func (s *VideoService) PlaybackState() domain.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playback
}

// SetCurrentVideo records which video is loaded in the player. Pass nil to
// clear the selection. The selection is session-transient.
func (s *VideoService) SetCurrentVideo(v *domain.CurrentVideo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == nil {
		s.current = nil
		return
	}
	cp := *v
	s.current = &cp
}

// CurrentVideo returns the video loaded in the player, or nil.
func (s *VideoService) CurrentVideo() *domain.CurrentVideo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

func (s *VideoService) indexOf(videoID, programID string) int {
	for i, p := range s.progress {
		if p.VideoID == videoID && p.ProgramID == programID {
			return i
		}
	}
	return -1
}

func (s *VideoService) saveLocked(ctx context.Context) error {
	snap := videoSnapshot{
		Version:  videoSnapshotVersion,
		Progress: s.progress,
		Playback: s.playback,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal video snapshot: %w", err)
	}
	if err := s.snapshots.Save(ctx, videoSnapshotKey, data); err != nil {
		return fmt.Errorf("save video snapshot: %w", err)
	}
	return nil
}
