// internal/app/system/workers/cachepruner.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pruner drops expired entries and reports how many it removed.
// apicache.Memory and ratelimit.LoginLimiter implement it.
type Pruner interface {
	Prune() int
}

// CachePruner is a background worker that evicts expired in-memory cache
// entries and rate-limit windows.
type CachePruner struct {
	targets  map[string]Pruner
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewCachePruner creates a pruner that sweeps every target each interval.
// Nil targets are skipped.
func NewCachePruner(logger *zap.Logger, interval time.Duration, targets map[string]Pruner) *CachePruner {
	if interval <= 0 {
		interval = time.Minute
	}
	live := make(map[string]Pruner, len(targets))
	for name, p := range targets {
		if p != nil {
			live[name] = p
		}
	}
	return &CachePruner{
		targets:  live,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *CachePruner) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("cache pruner started",
		zap.Duration("interval", w.interval),
		zap.Int("targets", len(w.targets)))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *CachePruner) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("cache pruner stopped")
	})
}

func (w *CachePruner) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep prunes every target once and returns the total removed.
func (w *CachePruner) Sweep() int {
	total := 0
	for name, p := range w.targets {
		n := p.Prune()
		if n > 0 {
			w.log.Debug("pruned expired entries", zap.String("target", name), zap.Int("count", n))
		}
		total += n
	}
	return total
}
