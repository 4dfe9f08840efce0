package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/service/worker"
)

type mockSource struct {
	mu      sync.Mutex
	version string
	err     error
	calls   int
}

func (m *mockSource) set(version string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version = version
	m.err = err
}

func (m *mockSource) Load(ctx context.Context) (*model.DefinitionSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return model.NewDefinitionSet(m.version), nil
}

func (m *mockSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestDefinitionRefreshWorker(t *testing.T) {
	t.Run("serves initial load", func(t *testing.T) {
		src := &mockSource{version: "v1"}
		w := worker.NewDefinitionRefreshWorker(src, time.Hour)
		gt.NoError(t, w.Start(context.Background())).Required()
		defer w.Stop()

		defs, err := w.Load(context.Background())
		gt.NoError(t, err).Required()
		gt.Value(t, defs.Version).Equal("v1")
		gt.Value(t, src.callCount()).Equal(1)
	})

	t.Run("failed reload keeps previous set", func(t *testing.T) {
		src := &mockSource{version: "v1"}
		w := worker.NewDefinitionRefreshWorker(src, time.Hour)
		gt.NoError(t, w.Refresh(context.Background())).Required()

		src.set("", errors.New("broken file"))
		gt.Error(t, w.Refresh(context.Background()))

		defs, err := w.Load(context.Background())
		gt.NoError(t, err).Required()
		gt.Value(t, defs.Version).Equal("v1")
	})

	t.Run("reload picks up new version", func(t *testing.T) {
		src := &mockSource{version: "v1"}
		w := worker.NewDefinitionRefreshWorker(src, 10*time.Millisecond)
		gt.NoError(t, w.Start(context.Background())).Required()
		defer w.Stop()

		src.set("v2", nil)
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if cur := w.Current(); cur != nil && cur.Version == "v2" {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
		gt.Value(t, w.Current().Version).Equal("v2")
	})

	t.Run("load without any success returns error", func(t *testing.T) {
		src := &mockSource{err: errors.New("missing")}
		w := worker.NewDefinitionRefreshWorker(src, time.Hour)
		gt.NoError(t, w.Start(context.Background())).Required()
		defer w.Stop()

		_, err := w.Load(context.Background())
		gt.Error(t, err)
		gt.Value(t, w.Current()).Nil()
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		w := worker.NewDefinitionRefreshWorker(&mockSource{version: "v1"}, time.Hour)
		gt.NoError(t, w.Start(context.Background())).Required()
		w.Stop()
		w.Stop()
	})

	t.Run("invalid interval", func(t *testing.T) {
		w := worker.NewDefinitionRefreshWorker(&mockSource{}, 0)
		gt.Error(t, w.Start(context.Background()))
	})
}
