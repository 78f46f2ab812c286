package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/MatBureau/sysmonitor/internal/system"
)

type SampleFunc func(ctx context.Context) (system.Snapshot, error)

// TickFunc is called after every tick with the tick's own result.
type TickFunc func(snap system.Snapshot, err error)

// Loop samples on a fixed ticker and keeps the last good snapshot.
type Loop struct {
	mu     sync.RWMutex
	last   *system.Snapshot
	lastAt time.Time
	err    error
	done   chan struct{}
}

// Start samples once immediately and then every interval until ctx is done.
// A failed tick leaves the previous snapshot in place.
func Start(ctx context.Context, every time.Duration, sample SampleFunc, onTick TickFunc) *Loop {
	l := &Loop{done: make(chan struct{})}

	go func() {
		defer close(l.done)
		t := time.NewTicker(every)
		defer t.Stop()

		tick := func() {
			snap, err := sample(ctx)
			l.mu.Lock()
			if err == nil {
				l.last, l.lastAt = &snap, time.Now()
			}
			l.err = err
			l.mu.Unlock()
			if onTick != nil {
				onTick(snap, err)
			}
		}

		tick()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				tick()
			}
		}
	}()

	return l
}

// Latest returns the last good snapshot (nil before the first success), when
// it was taken, and the error of the most recent tick.
func (l *Loop) Latest() (*system.Snapshot, time.Time, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.last, l.lastAt, l.err
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
