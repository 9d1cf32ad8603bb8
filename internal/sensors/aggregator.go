package sensors

import (
	"context"
	"log"
	"sync"
	"time"
)

// Intervals configures how often each source is polled and how often a
// fused sample is emitted. The tracker's rate math assumes the fuse tick
// is 1 second; change Tick and the vertical-speed numbers stop being
// meters per minute.
type Intervals struct {
	Tick  time.Duration
	Accel time.Duration
	Baro  time.Duration
	GPS   time.Duration
}

func DefaultIntervals() Intervals {
	return Intervals{
		Tick:  time.Second,
		Accel: 20 * time.Millisecond,
		Baro:  100 * time.Millisecond,
		GPS:   time.Second,
	}
}

// Aggregator merges three independently polled sensor sources into one
// fused sample per tick. Each source runs its own polling goroutine and
// owns its last-known-value slot; a read failure is logged and retried
// on the next poll without touching the other sources. A source that has
// never produced a value stays nil in the fused output.
type Aggregator struct {
	provider  Provider
	intervals Intervals

	mu    sync.Mutex
	accel *Acceleration
	baro  *Altitude
	loc   *Location

	out      chan FusedSample
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
	started  bool
}

func NewAggregator(provider Provider, intervals Intervals) *Aggregator {
	if intervals.Tick <= 0 {
		intervals = DefaultIntervals()
	}
	return &Aggregator{
		provider:  provider,
		intervals: intervals,
		out:       make(chan FusedSample, 16),
	}
}

// Start launches the polling loops and the fuse ticker and returns the
// fused-sample channel. The channel is closed after Stop returns.
func (a *Aggregator) Start(ctx context.Context, sessionID string) <-chan FusedSample {
	if a.started {
		return a.out
	}
	a.started = true

	ctx, a.cancel = context.WithCancel(ctx)

	a.wg.Add(4)
	go a.pollAccel(ctx)
	go a.pollBaro(ctx)
	go a.pollLocation(ctx)
	go a.fuse(ctx, sessionID)

	return a.out
}

// Stop cancels all loops and closes the output channel. Safe to call
// more than once and before Start; after it returns no further samples
// are emitted.
func (a *Aggregator) Stop() {
	a.stopOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		a.wg.Wait()
		close(a.out)
	})
}

func (a *Aggregator) pollAccel(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(a.intervals.Accel)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reading, err := a.provider.Acceleration(ctx)
			if err != nil {
				log.Printf("accelerometer read failed: %v", err)
				continue
			}
			a.mu.Lock()
			a.accel = &reading
			a.mu.Unlock()
		}
	}
}

func (a *Aggregator) pollBaro(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(a.intervals.Baro)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reading, err := a.provider.AltitudeReading(ctx)
			if err != nil {
				log.Printf("barometer read failed: %v", err)
				continue
			}
			a.mu.Lock()
			a.baro = &reading
			a.mu.Unlock()
		}
	}
}

func (a *Aggregator) pollLocation(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(a.intervals.GPS)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reading, err := a.provider.Location(ctx)
			if err != nil {
				log.Printf("location read failed: %v", err)
				continue
			}
			a.mu.Lock()
			a.loc = &reading
			a.mu.Unlock()
		}
	}
}

func (a *Aggregator) fuse(ctx context.Context, sessionID string) {
	defer a.wg.Done()
	ticker := time.NewTicker(a.intervals.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.mu.Lock()
			sample := FusedSample{
				SessionID: sessionID,
				Accel:     a.accel,
				Baro:      a.baro,
				Loc:       a.loc,
			}
			a.mu.Unlock()

			select {
			case a.out <- sample:
			case <-ctx.Done():
				return
			}
		}
	}
}
