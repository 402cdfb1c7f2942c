// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

// Package client implements the sync agent runtime.
//
// It wires the local cache, the fleet API transport, and the background
// synchronization machinery into a single process lifecycle.
package client
