package infra

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// AwaitReady starts probing check in the background and returns a channel that
// receives exactly one value: nil once check succeeds, or ctx's error if it is
// cancelled first. main waits on it once before building the services.
func AwaitReady(ctx context.Context, name string, check func(context.Context) error, every time.Duration) <-chan error {
	if every <= 0 {
		every = 500 * time.Millisecond
	}
	done := make(chan error, 1)
	go func() {
		defer close(done)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		attempt := 0
		for {
			attempt++
			err := check(ctx)
			if err == nil {
				log.Info().Str("dependency", name).Int("attempts", attempt).Msg("dependency ready")
				done <- nil
				return
			}
			log.Debug().Err(err).Str("dependency", name).Int("attempt", attempt).Msg("dependency not ready yet")
			select {
			case <-ctx.Done():
				done <- ctx.Err()
				return
			case <-ticker.C:
			}
		}
	}()
	return done
}
