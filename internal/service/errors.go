// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package service

import "errors"

var (
	// ErrManagerDestroyed is returned by ForceSyncNow after Destroy.
	ErrManagerDestroyed = errors.New("sync manager destroyed")
)
