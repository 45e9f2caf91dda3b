package components

import (
	"coachwell/internal/integration/meeting"
	"coachwell/internal/integration/notifier"

	"go.uber.org/fx"
)

var IntegrationModule = fx.Module("integration",
	fx.Provide(
		meeting.NewProvider,
		notifier.NewNotifier,
	),
)
