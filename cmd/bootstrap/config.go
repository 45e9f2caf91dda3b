package bootstrap

import (
	"coachwell/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
		func(cfg config.Config) config.SchedulerConfig { return cfg.Scheduler },
		func(cfg config.Config) config.MeetingConfig { return cfg.Meeting },
		func(cfg config.Config) config.NotifierConfig { return cfg.Notifier },
	),
)
