// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/voltgrid/battsync/internal/adapter"
	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/internal/store"
	"github.com/voltgrid/battsync/models"
)

type syncManager struct {
	cache       store.Cache
	transport   adapter.Transport
	decider     DecisionEngine
	reconciler  Reconciler
	scheduler   Scheduler
	collections []string
	interval    time.Duration
	logger      *logger.Logger

	mu           sync.Mutex
	isSyncing    bool
	destroyed    bool
	timerArmed   bool
	timer        TimerHandle
	timerGen     uint64
	lastSyncTime map[string]time.Time
	syncError    string
}

// SyncManagerOption customizes a SyncManager at construction time.
type SyncManagerOption func(*syncManager)

// WithScheduler replaces the time.AfterFunc scheduler, mainly for tests.
func WithScheduler(s Scheduler) SyncManagerOption {
	return func(m *syncManager) {
		m.scheduler = s
	}
}

// NewSyncManager wires the sync orchestrator for the given collections.
// The manager starts idle: call StartPeriodicSync to arm the timer.
func NewSyncManager(cache store.Cache, transport adapter.Transport, collections []string, interval time.Duration, log *logger.Logger, opts ...SyncManagerOption) SyncManager {
	manager := &syncManager{
		cache:        cache,
		transport:    transport,
		decider:      NewDecisionEngine(),
		reconciler:   NewReconciler(),
		scheduler:    NewTimeScheduler(),
		collections:  collections,
		interval:     interval,
		logger:       log,
		lastSyncTime: make(map[string]time.Time, len(collections)),
	}
	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// StartPeriodicSync arms the periodic timer. Calling it while the timer is
// already armed is a no-op, so callers never stack concurrent schedules.
func (m *syncManager) StartPeriodicSync() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.destroyed || m.timerArmed {
		return
	}
	m.timerArmed = true
	m.armTimerLocked()
	m.logger.Info().Dur("interval", m.interval).Msg("periodic sync started")
}

// StopPeriodicSync cancels the pending tick. A pass already in flight runs
// to completion.
func (m *syncManager) StopPeriodicSync() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimerLocked()
	m.logger.Info().Msg("periodic sync stopped")
}

// ResetPeriodicTimer pushes the next tick a full interval into the future.
// It touches nothing but the timer: no-op when periodic sync is stopped or
// the manager is destroyed.
func (m *syncManager) ResetPeriodicTimer() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.destroyed || !m.timerArmed {
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.armTimerLocked()
}

// ForceSyncNow runs one sync pass immediately. If a pass is already in
// flight the call is a safe no-op returning nil. The first per-collection
// error is returned after every collection has been attempted.
func (m *syncManager) ForceSyncNow(ctx context.Context) error {
	return m.runSyncPass(ctx)
}

// Status reports a snapshot of the manager state.
func (m *syncManager) Status() models.SyncStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	lastSync := make(map[string]time.Time, len(m.lastSyncTime))
	for collection, at := range m.lastSyncTime {
		lastSync[collection] = at
	}

	nextSync := models.NextSyncStopped
	if m.timerArmed {
		nextSync = models.NextSyncPending
	}

	return models.SyncStatus{
		IsSyncing:    m.isSyncing,
		LastSyncTime: lastSync,
		SyncError:    m.syncError,
		NextSyncIn:   nextSync,
	}
}

// Destroy tears the manager down for good: the timer is cancelled and every
// later Start/Reset/Force call refuses to run. A pass already in flight
// finishes and clears its own busy flag.
func (m *syncManager) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimerLocked()
	m.destroyed = true
	m.logger.Info().Msg("sync manager destroyed")
}

func (m *syncManager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.timerArmed = false
	m.timerGen++
}

// armTimerLocked schedules the next tick and bumps the generation so that
// any previously scheduled tick that has already fired recognises itself as
// superseded and neither runs a pass nor re-arms. Callers hold m.mu.
func (m *syncManager) armTimerLocked() {
	m.timerGen++
	gen := m.timerGen
	m.timer = m.scheduler.Schedule(m.interval, func() { m.onTick(gen) })
}

// onTick runs one pass and re-arms the timer. Errors are recorded in the
// status, never propagated: a failing pass must not end periodic sync.
// A stale tick (its timer was replaced by a reset, stop, or destroy between
// firing and here, or while its pass was running) steps aside so exactly one
// timer chain exists at any moment.
func (m *syncManager) onTick(gen uint64) {
	m.mu.Lock()
	if m.destroyed || !m.timerArmed || gen != m.timerGen {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	if err := m.runSyncPass(context.Background()); err != nil {
		m.logger.Err(err).Msg("periodic sync pass finished with errors")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timerArmed && !m.destroyed && gen == m.timerGen {
		m.armTimerLocked()
	}
}

func (m *syncManager) runSyncPass(ctx context.Context) error {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return ErrManagerDestroyed
	}
	if m.isSyncing {
		m.mu.Unlock()
		m.logger.Debug().Msg("sync pass already in flight, skipping")
		return nil
	}
	m.isSyncing = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.isSyncing = false
		m.mu.Unlock()
	}()

	pending, err := m.cache.GetPendingItems(ctx)
	if err != nil {
		err = fmt.Errorf("get pending items: %w", err)
		m.recordError(err)
		return err
	}

	var firstErr error
	for _, collection := range m.collections {
		if err := m.syncCollection(ctx, collection, pending[collection]); err != nil {
			m.recordError(err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		m.mu.Lock()
		m.lastSyncTime[collection] = time.Now().UTC()
		m.mu.Unlock()
	}

	if firstErr == nil {
		m.mu.Lock()
		m.syncError = ""
		m.mu.Unlock()
	}

	return firstErr
}

func (m *syncManager) syncCollection(ctx context.Context, collection string, pending []models.Record) error {
	localMeta, err := m.cache.GetMetadata(ctx, collection)
	if err != nil {
		return fmt.Errorf("%s: get local metadata: %w", collection, err)
	}
	remoteMeta, err := m.transport.GetRemoteMetadata(ctx, collection)
	if err != nil {
		return fmt.Errorf("%s: get remote metadata: %w", collection, err)
	}

	decision := m.decider.Decide(localMeta, remoteMeta)

	action := decision.Action
	if action == models.ActionPull && len(pending) > 0 {
		// A straight pull would overwrite unsynced local writes.
		action = models.ActionReconcile
	}

	m.logger.Debug().
		Str("collection", collection).
		Str("action", string(action)).
		Str("reason", decision.Reason).
		Int("localCount", decision.LocalCount).
		Int("serverCount", decision.ServerCount).
		Int("pending", len(pending)).
		Msg("sync decision")

	switch action {
	case models.ActionSkip:
		return nil
	case models.ActionPull:
		return m.pull(ctx, collection)
	case models.ActionPush:
		return m.push(ctx, collection, pending)
	case models.ActionReconcile:
		return m.reconcile(ctx, collection)
	default:
		return fmt.Errorf("%s: unknown sync action %q", collection, action)
	}
}

func (m *syncManager) pull(ctx context.Context, collection string) error {
	records, err := m.transport.Pull(ctx, collection)
	if err != nil {
		return fmt.Errorf("%s: pull records: %w", collection, err)
	}
	if err := m.cache.BulkPut(ctx, collection, records); err != nil {
		return fmt.Errorf("%s: store pulled records: %w", collection, err)
	}

	return nil
}

func (m *syncManager) push(ctx context.Context, collection string, pending []models.Record) error {
	if len(pending) == 0 {
		m.logger.Debug().Str("collection", collection).Msg("push decided but nothing pending")
		return nil
	}

	resp, err := m.transport.Push(ctx, collection, pending)
	if err != nil {
		return fmt.Errorf("%s: push records: %w", collection, err)
	}
	if len(resp.Accepted) == 0 {
		return nil
	}
	if err := m.cache.MarkAsSynced(ctx, collection, resp.Accepted); err != nil {
		return fmt.Errorf("%s: mark pushed records synced: %w", collection, err)
	}

	return nil
}

func (m *syncManager) reconcile(ctx context.Context, collection string) error {
	local, err := m.cache.GetRecords(ctx, collection)
	if err != nil {
		return fmt.Errorf("%s: load local records: %w", collection, err)
	}
	remote, err := m.transport.Pull(ctx, collection)
	if err != nil {
		return fmt.Errorf("%s: pull records: %w", collection, err)
	}
	deletedIDs, err := m.transport.GetDeletedIDs(ctx, collection, nil)
	if err != nil {
		return fmt.Errorf("%s: fetch deleted ids: %w", collection, err)
	}

	result, err := m.reconciler.Reconcile(ctx, local, remote, deletedIDs)
	if err != nil {
		return fmt.Errorf("%s: reconcile: %w", collection, err)
	}

	for _, conflict := range result.Conflicts {
		m.logger.Warn().
			Str("collection", collection).
			Str("id", conflict.ID).
			Str("resolution", conflict.Resolution).
			Msg("record conflict resolved")
	}

	if err := m.cache.BulkPut(ctx, collection, result.Merged); err != nil {
		return fmt.Errorf("%s: store merged records: %w", collection, err)
	}

	return nil
}

func (m *syncManager) recordError(err error) {
	m.logger.Err(err).Msg("collection sync failed")

	m.mu.Lock()
	m.syncError = err.Error()
	m.mu.Unlock()
}
