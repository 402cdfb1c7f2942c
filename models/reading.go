// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package models

import "time"

// BatteryReading is one BMS snapshot captured by the hosting application.
// It is the typical payload carried inside Record.Data for the "readings"
// collection; the sync core itself never depends on this shape.
type BatteryReading struct {
	// BatteryID identifies the physical pack the snapshot belongs to.
	BatteryID string `json:"battery_id"`

	// StateOfCharge is the pack charge level in percent (0-100).
	StateOfCharge float64 `json:"state_of_charge"`

	// Voltage is the pack voltage in volts.
	Voltage float64 `json:"voltage"`

	// Current is the pack current in amperes; negative while discharging.
	Current float64 `json:"current"`

	// Temperature is the pack temperature in degrees Celsius.
	Temperature float64 `json:"temperature"`

	// CycleCount is the charge cycle counter reported by the BMS.
	CycleCount int `json:"cycle_count"`

	// CapturedAt is when the snapshot was taken on the device.
	CapturedAt time.Time `json:"captured_at"`
}
