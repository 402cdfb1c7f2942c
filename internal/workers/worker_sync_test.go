package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/models"
)

type fakeSyncManager struct {
	startCalls int32
	forceCalls int32
}

func (f *fakeSyncManager) StartPeriodicSync()  { atomic.AddInt32(&f.startCalls, 1) }
func (f *fakeSyncManager) StopPeriodicSync()   {}
func (f *fakeSyncManager) ResetPeriodicTimer() {}
func (f *fakeSyncManager) ForceSyncNow(context.Context) error {
	atomic.AddInt32(&f.forceCalls, 1)
	return nil
}
func (f *fakeSyncManager) Status() models.SyncStatus { return models.SyncStatus{} }
func (f *fakeSyncManager) Destroy()                  {}

func TestPeriodicSyncWorker_Run(t *testing.T) {
	manager := &fakeSyncManager{}
	worker := NewPeriodicSyncWorker(manager, logger.Nop())

	worker.Run()

	if got := atomic.LoadInt32(&manager.startCalls); got != 1 {
		t.Fatalf("expected StartPeriodicSync once, got %d", got)
	}

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&manager.forceCalls) == 0 {
		select {
		case <-deadline:
			t.Fatal("initial sync pass was never started")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
