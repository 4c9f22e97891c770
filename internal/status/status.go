// internal/status/status.go
package status

import "github.com/tamzrod/gatectl/internal/gate"

// Status block layout constants.
// These values define the block and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerGate is the fixed number of logical slots per gate.
const SlotsPerGate = 20

// ---- SLOT INDICES ----

// SlotStateCode holds the current FSM state code.
const SlotStateCode = 0

// SlotFaultCode holds the current fault reason.
const SlotFaultCode = 1

// SlotSecondsInState holds the seconds elapsed in the current state.
const SlotSecondsInState = 2

// ---- RESERVED RANGE ----

// Slots 3–10 are reserved for future use.
const SlotReservedStart = 3
const SlotReservedEnd = 10

// ---- GATE NAME ----

// SlotGateNameStart is the first slot used for the gate name.
// The name is always placed at the end of the block.
const SlotGateNameStart = 11

// SlotGateNameSlots is the number of slots reserved for the gate name.
const SlotGateNameSlots = 8

// ---- LIMITS ----

// GateNameMaxChars is the maximum number of ASCII characters stored.
const GateNameMaxChars = 16

// SecondsMax is the saturation point for SlotSecondsInState.
const SecondsMax uint16 = 65535

// Snapshot is exactly what the writer is allowed to deliver.
// No logic, no memory of the past beyond current state.
type Snapshot struct {
	StateCode      uint16
	FaultCode      uint16
	SecondsInState uint16
}

// For builds a snapshot for the given FSM state and fault reason.
func For(s gate.State, f gate.Fault, seconds uint16) Snapshot {
	return Snapshot{
		StateCode:      uint16(s),
		FaultCode:      uint16(f),
		SecondsInState: seconds,
	}
}
