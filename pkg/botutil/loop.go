package botutil

import (
	"context"
	"time"
)

// RunWhenReady waits for the bot to become ready, calls fn once, and then
// again on each tick of interval until ctx is done. Panics in fn are logged
// and the loop keeps running.
func (b *BaseBot) RunWhenReady(ctx context.Context, name string, interval time.Duration, fn func(context.Context)) {
	readyTicker := time.NewTicker(1 * time.Second)
	defer readyTicker.Stop()
	for !b.Ready.Load() {
		select {
		case <-ctx.Done():
			return
		case <-readyTicker.C:
		}
	}

	log := b.Log.With("loop", name)
	log.Debug("Loop started", "interval", interval)
	b.safeCall(ctx, name, fn)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Loop stopped")
			return
		case <-ticker.C:
			b.safeCall(ctx, name, fn)
		}
	}
}

func (b *BaseBot) safeCall(ctx context.Context, name string, fn func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			b.Log.Error("Panic in loop", "loop", name, "error", r)
		}
	}()
	fn(ctx)
}
