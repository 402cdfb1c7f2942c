// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/internal/store"
	"github.com/voltgrid/battsync/internal/utils"
	"github.com/voltgrid/battsync/models"
)

// CollectionReadings is the local cache collection holding battery readings.
const CollectionReadings = "readings"

type readingsService struct {
	cache   store.Cache
	manager SyncManager
	ids     *utils.UUIDGenerator
	logger  *logger.Logger
}

// NewReadingsService wires the dual-write path for battery readings.
func NewReadingsService(cache store.Cache, manager SyncManager, log *logger.Logger) ReadingsService {
	return &readingsService{
		cache:   cache,
		manager: manager,
		ids:     utils.NewUUIDGenerator(),
		logger:  log,
	}
}

// RecordReading writes the reading to the local cache as pending, then runs
// a sync pass and resets the periodic timer so the follow-up tick arrives a
// full interval after this write. A failed immediate sync is logged, not
// returned: the local write already succeeded and periodic sync will retry.
func (s *readingsService) RecordReading(ctx context.Context, reading models.BatteryReading) (models.Record, error) {
	if reading.BatteryID == "" {
		return models.Record{}, fmt.Errorf("record reading: empty battery id")
	}
	if reading.CapturedAt.IsZero() {
		reading.CapturedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(reading)
	if err != nil {
		return models.Record{}, fmt.Errorf("record reading: marshal payload: %w", err)
	}

	now := time.Now().UTC()
	record := models.Record{
		ID:        s.ids.Generate(),
		Data:      payload,
		UpdatedAt: &now,
	}

	if err := s.cache.SaveLocal(ctx, CollectionReadings, record); err != nil {
		return models.Record{}, fmt.Errorf("record reading: save local: %w", err)
	}

	if err := s.manager.ForceSyncNow(ctx); err != nil {
		s.logger.Warn().Err(err).Str("batteryID", reading.BatteryID).Msg("immediate sync after reading failed")
	}
	s.manager.ResetPeriodicTimer()

	return record, nil
}
