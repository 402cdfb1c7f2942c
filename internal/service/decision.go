// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package service

import (
	"time"

	"github.com/voltgrid/battsync/models"
)

// Decision reasons are part of the observable contract: status surfaces and
// tests key on the exact strings, so change them deliberately.
const (
	ReasonBothEmpty         = "Both local and server are empty."
	ReasonLocalEmpty        = "Local cache empty."
	ReasonServerEmpty       = "Local has data but server is empty."
	ReasonLocalNewer        = "Local data is newer."
	ReasonServerNewer       = "Server data is newer."
	ReasonIdentical         = "Local and server are identical."
	ReasonServerMoreRecords = "Timestamps equal but server has more records."
	ReasonLocalMoreRecords  = "Timestamps equal but local has more records."
	ReasonTimestampUnknown  = "Last-modified unknown on at least one side; defaulting to pull."
)

type decisionEngine struct{}

// NewDecisionEngine returns the stateless metadata comparator.
func NewDecisionEngine() DecisionEngine {
	return decisionEngine{}
}

// Decide ranks emptiness checks above timestamp comparison: counts of zero
// short-circuit before LastModified is ever consulted. Timestamps compare at
// millisecond precision so sub-millisecond jitter between two stores never
// flips a decision.
func (decisionEngine) Decide(local, server models.CollectionMetadata) models.SyncDecision {
	decision := models.SyncDecision{
		LocalCount:      local.RecordCount,
		ServerCount:     server.RecordCount,
		LocalTimestamp:  local.LastModified,
		ServerTimestamp: server.LastModified,
	}

	switch {
	case local.RecordCount == 0 && server.RecordCount == 0:
		decision.Action = models.ActionSkip
		decision.Reason = ReasonBothEmpty
		return decision
	case local.RecordCount == 0:
		decision.Action = models.ActionPull
		decision.Reason = ReasonLocalEmpty
		return decision
	case server.RecordCount == 0:
		decision.Action = models.ActionPush
		decision.Reason = ReasonServerEmpty
		return decision
	}

	if local.LastModified == nil || server.LastModified == nil {
		decision.Action = models.ActionPull
		decision.Reason = ReasonTimestampUnknown
		return decision
	}

	localTS := local.LastModified.Truncate(time.Millisecond)
	serverTS := server.LastModified.Truncate(time.Millisecond)

	switch {
	case localTS.After(serverTS):
		decision.Action = models.ActionPush
		decision.Reason = ReasonLocalNewer
	case serverTS.After(localTS):
		decision.Action = models.ActionPull
		decision.Reason = ReasonServerNewer
	case server.RecordCount > local.RecordCount:
		decision.Action = models.ActionPull
		decision.Reason = ReasonServerMoreRecords
	case local.RecordCount > server.RecordCount:
		decision.Action = models.ActionPush
		decision.Reason = ReasonLocalMoreRecords
	default:
		decision.Action = models.ActionSkip
		decision.Reason = ReasonIdentical
	}

	return decision
}
