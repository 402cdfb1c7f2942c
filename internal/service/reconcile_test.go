package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltgrid/battsync/models"
)

func record(id string, updatedAt *time.Time, payload string) models.Record {
	return models.Record{ID: id, Data: json.RawMessage(payload), UpdatedAt: updatedAt}
}

func mergedIDs(result models.ReconcileResult) []string {
	ids := make([]string, 0, len(result.Merged))
	for _, rec := range result.Merged {
		ids = append(ids, rec.ID)
	}
	return ids
}

func TestReconcile_DisjointSetsPassThrough(t *testing.T) {
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	local := []models.Record{
		record("l1", tsPtr(base), `{"src":"local"}`),
		record("l2", tsPtr(base.Add(time.Minute)), `{"src":"local"}`),
	}
	server := []models.Record{
		record("s1", tsPtr(base), `{"src":"server"}`),
	}

	result, err := NewReconciler().Reconcile(context.Background(), local, server, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "l1", "l2"}, mergedIDs(result))
	assert.Empty(t, result.Conflicts)
}

func TestReconcile_NewerSideWins(t *testing.T) {
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	t.Run("server newer", func(t *testing.T) {
		local := []models.Record{record("r1", tsPtr(base), `{"v":1}`)}
		server := []models.Record{record("r1", tsPtr(base.Add(time.Second)), `{"v":2}`)}

		result, err := NewReconciler().Reconcile(context.Background(), local, server, nil)

		require.NoError(t, err)
		require.Len(t, result.Merged, 1)
		assert.JSONEq(t, `{"v":2}`, string(result.Merged[0].Data))
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, "r1", result.Conflicts[0].ID)
		assert.Equal(t, models.ResolutionServerWon, result.Conflicts[0].Resolution)
	})

	t.Run("local newer", func(t *testing.T) {
		local := []models.Record{record("r1", tsPtr(base.Add(time.Second)), `{"v":1}`)}
		server := []models.Record{record("r1", tsPtr(base), `{"v":2}`)}

		result, err := NewReconciler().Reconcile(context.Background(), local, server, nil)

		require.NoError(t, err)
		require.Len(t, result.Merged, 1)
		assert.JSONEq(t, `{"v":1}`, string(result.Merged[0].Data))
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, models.ResolutionLocalWon, result.Conflicts[0].Resolution)
	})
}

func TestReconcile_EqualTimestampsConvergeOnServerCopy(t *testing.T) {
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	local := []models.Record{record("r1", tsPtr(base.Add(300*time.Microsecond)), `{"v":"local"}`)}
	server := []models.Record{record("r1", tsPtr(base.Add(700*time.Microsecond)), `{"v":"server"}`)}

	result, err := NewReconciler().Reconcile(context.Background(), local, server, nil)

	require.NoError(t, err)
	require.Len(t, result.Merged, 1)
	assert.JSONEq(t, `{"v":"server"}`, string(result.Merged[0].Data))
	assert.Empty(t, result.Conflicts, "sub-millisecond skew must not raise a conflict")
}

func TestReconcile_MissingUpdatedAt(t *testing.T) {
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	t.Run("timestamped side beats missing", func(t *testing.T) {
		local := []models.Record{record("r1", tsPtr(base), `{"v":"local"}`)}
		server := []models.Record{record("r1", nil, `{"v":"server"}`)}

		result, err := NewReconciler().Reconcile(context.Background(), local, server, nil)

		require.NoError(t, err)
		require.Len(t, result.Merged, 1)
		assert.JSONEq(t, `{"v":"local"}`, string(result.Merged[0].Data))
		assert.Empty(t, result.Conflicts)
	})

	t.Run("both missing falls back to server copy", func(t *testing.T) {
		local := []models.Record{record("r1", nil, `{"v":"local"}`)}
		server := []models.Record{record("r1", nil, `{"v":"server"}`)}

		result, err := NewReconciler().Reconcile(context.Background(), local, server, nil)

		require.NoError(t, err)
		require.Len(t, result.Merged, 1)
		assert.JSONEq(t, `{"v":"server"}`, string(result.Merged[0].Data))
		assert.Empty(t, result.Conflicts)
	})
}

func TestReconcile_TombstonesDominate(t *testing.T) {
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	local := []models.Record{
		record("gone-local", tsPtr(base.Add(time.Hour)), `{"v":"fresh local edit"}`),
		record("kept", tsPtr(base), `{"v":"kept"}`),
	}
	server := []models.Record{
		record("gone-both", tsPtr(base), `{"v":"server"}`),
	}
	deleted := []string{"gone-local", "gone-both", "never-seen"}

	result, err := NewReconciler().Reconcile(context.Background(), local, server, deleted)

	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, mergedIDs(result))
	assert.Empty(t, result.Conflicts)
}

func TestReconcile_Deterministic(t *testing.T) {
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	local := []models.Record{
		record("a", tsPtr(base), `{}`),
		record("b", tsPtr(base.Add(time.Second)), `{}`),
		record("c", nil, `{}`),
	}
	server := []models.Record{
		record("b", tsPtr(base), `{}`),
		record("d", tsPtr(base), `{}`),
	}
	deleted := []string{"c"}

	reconciler := NewReconciler()
	first, err := reconciler.Reconcile(context.Background(), local, server, deleted)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := reconciler.Reconcile(context.Background(), local, server, deleted)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestReconcile_EmptyInputs(t *testing.T) {
	result, err := NewReconciler().Reconcile(context.Background(), nil, nil, nil)

	require.NoError(t, err)
	assert.Empty(t, result.Merged)
	assert.Empty(t, result.Conflicts)
	assert.NotNil(t, result.Merged)
	assert.NotNil(t, result.Conflicts)
}

func TestReconcile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	server := []models.Record{record("r1", tsPtr(base), `{}`)}

	_, err := NewReconciler().Reconcile(ctx, nil, server, nil)

	require.ErrorIs(t, err, context.Canceled)
}

func TestReconcile_DoesNotMutateInputs(t *testing.T) {
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	local := []models.Record{record("r1", tsPtr(base), `{"v":"local"}`)}
	server := []models.Record{record("r1", tsPtr(base.Add(time.Second)), `{"v":"server"}`)}

	_, err := NewReconciler().Reconcile(context.Background(), local, server, nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"v":"local"}`, string(local[0].Data))
	assert.JSONEq(t, `{"v":"server"}`, string(server[0].Data))
}
