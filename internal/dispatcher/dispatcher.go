package dispatcher

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/minutes-bot/internal/models"
)

const seenTimeout = 2 * time.Second

func (d *implDispatcher) Submit(ctx context.Context, ev models.ShareEvent) bool {
	if d.store != nil {
		seenCtx, cancel := context.WithTimeout(ctx, seenTimeout)
		seen, err := d.store.Seen(seenCtx, ev.Key())
		cancel()
		if err != nil {
			d.logger.Warn(ctx, "Dedupe check failed for %s, processing anyway: %v", ev.Key(), err)
		} else if seen {
			d.duplicates.Add(1)
			d.logger.Info(ctx, "Ignoring duplicate event for %s", ev.Key())
			return false
		}
	}

	select {
	case d.queue <- ev:
		d.logger.Debug(ctx, "Queued event for %s (%d waiting)", ev.Key(), len(d.queue))
		return true
	default:
		d.dropped.Add(1)
		d.logger.Warn(ctx, "Queue full, dropping event for %s", ev.Key())
		d.forget(ctx, ev)
		return false
	}
}

// forget releases the dedupe key of an event that was not processed so a
// re-share is accepted.
func (d *implDispatcher) forget(ctx context.Context, ev models.ShareEvent) {
	if d.store == nil {
		return
	}
	forgetCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), seenTimeout)
	defer cancel()
	if err := d.store.Forget(forgetCtx, ev.Key()); err != nil {
		d.logger.Warn(ctx, "Failed to release dedupe key %s: %v", ev.Key(), err)
	}
}

func (d *implDispatcher) Start(ctx context.Context) error {
	d.logger.Info(ctx, "Dispatcher started (max concurrent: %d, queue size: %d)", d.maxConcurrent, cap(d.queue))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info(ctx, "Waiting for ongoing runs to complete...")
			d.wg.Wait()
			d.logger.Info(ctx, "Dispatcher stopped")
			return ctx.Err()

		case ev := <-d.queue:
			if err := d.sem.acquire(ctx); err != nil {
				d.logger.Warn(ctx, "Dropping event for %s on shutdown", ev.Key())
				d.dropped.Add(1)
				d.forget(ctx, ev)
				continue
			}

			d.wg.Add(1)
			d.running.Add(1)
			go func(ev models.ShareEvent) {
				defer d.wg.Done()
				defer d.sem.release()
				defer d.running.Add(-1)

				if err := d.handler(ctx, ev); err != nil {
					d.logger.Error(ctx, "Failed to process %s: %v", ev.Key(), err)
					d.forget(ctx, ev)
					d.failed.Add(1)
					return
				}
				d.processed.Add(1)
			}(ev)
		}
	}
}

func (d *implDispatcher) Stats() Stats {
	return Stats{
		Queued:     len(d.queue),
		Running:    d.running.Load(),
		Processed:  d.processed.Load(),
		Failed:     d.failed.Load(),
		Dropped:    d.dropped.Load(),
		Duplicates: d.duplicates.Load(),
	}
}
