// Package meeting allocates joinable video-meeting links. Providers are
// interchangeable; booking treats every failure here as non-fatal.
package meeting

import (
	"context"
	"log/slog"
	"time"

	"coachwell/internal/pkg/config"
)

type Meeting struct {
	ID      string
	JoinURL string
}

type Provider interface {
	Name() string
	CreateMeeting(ctx context.Context, title string, start time.Time, durationMinutes int, participants []string) (*Meeting, error)
	DeleteMeeting(ctx context.Context, meetingID string) (bool, error)
}

// NewProvider selects the configured provider, falling back to the static
// one when the configuration cannot support the requested backend.
func NewProvider(cfg config.MeetingConfig, logger *slog.Logger) Provider {
	switch cfg.Provider {
	case "whereby":
		if cfg.APIKey == "" {
			logger.Warn("meeting provider whereby selected without api key, using static links")
			return NewStaticProvider()
		}
		return NewWherebyProvider(cfg)
	case "static", "":
		return NewStaticProvider()
	default:
		logger.Warn("unknown meeting provider, using static links", "provider", cfg.Provider)
		return NewStaticProvider()
	}
}
