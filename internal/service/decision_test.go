package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voltgrid/battsync/models"
)

func tsPtr(t time.Time) *time.Time {
	return &t
}

func meta(count int, lastModified *time.Time) models.CollectionMetadata {
	return models.CollectionMetadata{RecordCount: count, LastModified: lastModified}
}

func TestDecide_DecisionMatrix(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		local      models.CollectionMetadata
		server     models.CollectionMetadata
		wantAction models.SyncAction
		wantReason string
	}{
		{
			name:       "both empty skips",
			local:      meta(0, nil),
			server:     meta(0, nil),
			wantAction: models.ActionSkip,
			wantReason: ReasonBothEmpty,
		},
		{
			name:       "local empty pulls",
			local:      meta(0, nil),
			server:     meta(10, tsPtr(base)),
			wantAction: models.ActionPull,
			wantReason: ReasonLocalEmpty,
		},
		{
			name:       "server empty pushes",
			local:      meta(7, tsPtr(base)),
			server:     meta(0, nil),
			wantAction: models.ActionPush,
			wantReason: ReasonServerEmpty,
		},
		{
			name:       "local newer pushes",
			local:      meta(5, tsPtr(base.Add(2 * time.Second))),
			server:     meta(5, tsPtr(base)),
			wantAction: models.ActionPush,
			wantReason: ReasonLocalNewer,
		},
		{
			name:       "server newer pulls",
			local:      meta(5, tsPtr(base)),
			server:     meta(5, tsPtr(base.Add(2 * time.Second))),
			wantAction: models.ActionPull,
			wantReason: ReasonServerNewer,
		},
		{
			name:       "identical skips",
			local:      meta(5, tsPtr(base)),
			server:     meta(5, tsPtr(base)),
			wantAction: models.ActionSkip,
			wantReason: ReasonIdentical,
		},
		{
			name:       "equal timestamps server has more records",
			local:      meta(3, tsPtr(base)),
			server:     meta(9, tsPtr(base)),
			wantAction: models.ActionPull,
			wantReason: ReasonServerMoreRecords,
		},
		{
			name:       "equal timestamps local has more records",
			local:      meta(9, tsPtr(base)),
			server:     meta(3, tsPtr(base)),
			wantAction: models.ActionPush,
			wantReason: ReasonLocalMoreRecords,
		},
		{
			name:       "local timestamp missing defaults to pull",
			local:      meta(5, nil),
			server:     meta(5, tsPtr(base)),
			wantAction: models.ActionPull,
			wantReason: ReasonTimestampUnknown,
		},
		{
			name:       "server timestamp missing defaults to pull",
			local:      meta(5, tsPtr(base)),
			server:     meta(5, nil),
			wantAction: models.ActionPull,
			wantReason: ReasonTimestampUnknown,
		},
		{
			name:       "both timestamps missing non-empty defaults to pull",
			local:      meta(5, nil),
			server:     meta(5, nil),
			wantAction: models.ActionPull,
			wantReason: ReasonTimestampUnknown,
		},
		{
			name:       "emptiness outranks timestamps",
			local:      meta(0, tsPtr(base.Add(time.Hour))),
			server:     meta(4, tsPtr(base)),
			wantAction: models.ActionPull,
			wantReason: ReasonLocalEmpty,
		},
	}

	engine := NewDecisionEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Decide(tt.local, tt.server)

			assert.Equal(t, tt.wantAction, got.Action)
			assert.Equal(t, tt.wantReason, got.Reason)
			assert.Equal(t, tt.local.RecordCount, got.LocalCount)
			assert.Equal(t, tt.server.RecordCount, got.ServerCount)
			assert.Equal(t, tt.local.LastModified, got.LocalTimestamp)
			assert.Equal(t, tt.server.LastModified, got.ServerTimestamp)
		})
	}
}

func TestDecide_MillisecondPrecision(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	engine := NewDecisionEngine()

	t.Run("sub-millisecond skew compares equal", func(t *testing.T) {
		got := engine.Decide(
			meta(5, tsPtr(base.Add(400*time.Microsecond))),
			meta(5, tsPtr(base.Add(900*time.Microsecond))),
		)

		assert.Equal(t, models.ActionSkip, got.Action)
		assert.Equal(t, ReasonIdentical, got.Reason)
	})

	t.Run("500ms skew is a real difference", func(t *testing.T) {
		got := engine.Decide(
			meta(5, tsPtr(base)),
			meta(5, tsPtr(base.Add(500*time.Millisecond))),
		)

		assert.Equal(t, models.ActionPull, got.Action)
		assert.Equal(t, ReasonServerNewer, got.Reason)
	})
}

func TestDecide_DoesNotMutateInputs(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 123456789, time.UTC)
	local := meta(5, tsPtr(base))
	server := meta(6, tsPtr(base))

	NewDecisionEngine().Decide(local, server)

	assert.True(t, local.LastModified.Equal(base))
	assert.True(t, server.LastModified.Equal(base))
}
