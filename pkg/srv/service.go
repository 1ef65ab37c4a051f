package srv

import (
	"context"

	"github.com/sandevgo/memobot/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Foreground marks a service whose return from Start ends the process,
// e.g. an interactive terminal that the user exits.
type Foreground interface {
	Service
	Foreground()
}

// StartServices runs every service in its own goroutine. A failing service,
// or a foreground service that returns, cancels the whole group via stop.
func StartServices(ctx context.Context, stop context.CancelFunc, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			err := service.Start(ctx)
			if err != nil {
				logger.Error().Err(err).Msgf("%T failed", service)
				stop()
				return
			}
			if _, ok := service.(Foreground); ok {
				logger.Debug().Msgf("%T finished", service)
				stop()
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then shuts services down in
// reverse registration order so storage closes after its users.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	shutdownCtx := context.WithoutCancel(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(shutdownCtx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
