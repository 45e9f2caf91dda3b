package bootstrap

import (
	"coachwell/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	StoreModule,
	SchedulerModule,
	components.IntegrationModule,
	components.UseCaseModule,
	components.HandlerModule,
)
