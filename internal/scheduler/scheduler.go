// Package scheduler runs the serve command's background chores.
package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task on each tick until ctx is done. A failing run is logged and
// the loop carries on. With immediate set, the first run happens before the
// first tick. Runs never overlap.
func Every(ctx context.Context, interval time.Duration, name string, immediate bool, task Task) {
	run := func() {
		if err := task(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}

	if immediate {
		run()
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}

// Keepalive publishes a ping through publish while anyone is listening.
func Keepalive(subscribers func() int, publish func(n int)) Task {
	return func(context.Context) error {
		if n := subscribers(); n > 0 {
			publish(n)
		}
		return nil
	}
}
