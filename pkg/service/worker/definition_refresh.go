package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/utils/logging"
)

// DefinitionRefreshWorker reloads capability definitions in the background
// and serves the last good set. A failed reload keeps the previous set, so
// scoring only degrades when definitions never loaded at all.
//
// Architecture assumptions:
// - Single server instance; every instance reloads on its own
type DefinitionRefreshWorker struct {
	source   interfaces.DefinitionSource
	interval time.Duration
	current  atomic.Pointer[model.DefinitionSet]
	loadMu   sync.Mutex
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

var _ interfaces.DefinitionSource = &DefinitionRefreshWorker{}

// NewDefinitionRefreshWorker creates a worker reloading source every interval
func NewDefinitionRefreshWorker(source interfaces.DefinitionSource, interval time.Duration) *DefinitionRefreshWorker {
	return &DefinitionRefreshWorker{
		source:   source,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start loads definitions once, then reloads in the background. The
// initial load failing is logged but does not prevent startup.
func (w *DefinitionRefreshWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("refresh interval must be positive", goerr.V("interval", w.interval.String()))
	}

	logging.Default().Info("Definition refresh worker starting",
		"interval", w.interval.String())

	if err := w.Refresh(ctx); err != nil {
		logging.Default().Error("Initial definition load failed (will retry next interval)",
			"error", err.Error())
	}

	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *DefinitionRefreshWorker) Stop() {
	w.stopOnce.Do(func() {
		logging.Default().Info("Definition refresh worker stopping")
		close(w.stopCh)
		<-w.doneCh
		logging.Default().Info("Definition refresh worker stopped")
	})
}

func (w *DefinitionRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				logging.Default().Error("Definition refresh failed (keeping previous definitions)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Definition refresh worker context cancelled")
			return
		}
	}
}

// Refresh performs a single reload
func (w *DefinitionRefreshWorker) Refresh(ctx context.Context) error {
	w.loadMu.Lock()
	defer w.loadMu.Unlock()

	startTime := time.Now()
	defs, err := w.source.Load(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to reload definitions")
	}

	prev := w.current.Swap(defs)
	if prev == nil || prev.Version != defs.Version {
		logging.Default().Info("Definitions loaded",
			"version", defs.Version,
			"capabilities", len(defs.Capabilities()),
			"duration", time.Since(startTime).String())
	}
	return nil
}

// Current returns the last successfully loaded set, or nil
func (w *DefinitionRefreshWorker) Current() *model.DefinitionSet {
	return w.current.Load()
}

// Load returns the cached set. When nothing has loaded yet it tries the
// source directly.
func (w *DefinitionRefreshWorker) Load(ctx context.Context) (*model.DefinitionSet, error) {
	if defs := w.current.Load(); defs != nil {
		return defs, nil
	}
	if err := w.Refresh(ctx); err != nil {
		return nil, err
	}
	return w.current.Load(), nil
}
