package domain

import "time"

// VideoProgress is the watch state for one (video, program) pair. Records are
// created on first touch and never deleted.
type VideoProgress struct {
	VideoID     string    `json:"video_id"`
	ProgramID   string    `json:"program_id"`
	CurrentTime float64   `json:"current_time"` // seconds into the video
	Duration    float64   `json:"duration"`     // seconds
	Completed   bool      `json:"completed"`
	LastWatched time.Time `json:"last_watched"`
}

// VideoProgressUpdate is a partial update to a VideoProgress record. Nil
// fields are left untouched. Completed only flips false to true; once a video
// is completed a partial update cannot revert it.
type VideoProgressUpdate struct {
	CurrentTime *float64
	Duration    *float64
	Completed   *bool
}

// VideoQuality is the player's selected stream quality.
type VideoQuality string

const (
	QualityAuto  VideoQuality = "auto"
	Quality480p  VideoQuality = "480p"
	Quality720p  VideoQuality = "720p"
	Quality1080p VideoQuality = "1080p"
)

// PlaybackState holds the session-wide player preferences. There is a single
// instance, not one per video.
type PlaybackState struct {
	IsPlaying    bool         `json:"is_playing"`
	IsMuted      bool         `json:"is_muted"`
	Volume       float64      `json:"volume"`
	PlaybackRate float64      `json:"playback_rate"`
	Quality      VideoQuality `json:"quality"`
	Subtitles    bool         `json:"subtitles"`
	Fullscreen   bool         `json:"fullscreen"`
}

// DefaultPlaybackState returns the player preferences a fresh session starts with.
func DefaultPlaybackState() PlaybackState {
	return PlaybackState{
		Volume:       1,
		PlaybackRate: 1,
		Quality:      QualityAuto,
	}
}

// PlaybackStateUpdate is a partial update to the PlaybackState. Nil fields
// are left untouched.
type PlaybackStateUpdate struct {
	IsPlaying    *bool
	IsMuted      *bool
	Volume       *float64
	PlaybackRate *float64
	Quality      *VideoQuality
	Subtitles    *bool
	Fullscreen   *bool
}

// CurrentVideo identifies the video loaded in the player. It is transient
// selection state and is not persisted.
type CurrentVideo struct {
	ID        string
	ProgramID string
	Title     string
	URL       string
}

// ProgramProgress summarizes completion across the tracked videos of one program.
type ProgramProgress struct {
	Completed  int
	Total      int
	Percentage float64
}
