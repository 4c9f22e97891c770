// internal/gate/types.go
package gate

// State is the position of the gate controller in its cycle.
type State uint8

const (
	StateInitConfig State = iota
	StateClosing
	StateOpening
	StateOpen
	StateClosed
	StateStopped
	StateFault
)

func (s State) String() string {
	switch s {
	case StateInitConfig:
		return "init"
	case StateClosing:
		return "closing"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateStopped:
		return "stopped"
	case StateFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Fault is the reason the machine entered StateFault.
// Set only on entry into StateFault, cleared on the way out.
type Fault uint8

const (
	FaultNone Fault = iota

	// FaultConflictingLimits: both limit switches asserted at once.
	// Wiring/hardware fault; recoverable via re-initialization.
	FaultConflictingLimits

	// FaultTimeout: travel exceeded the tick budget.
	// Mechanical fault; fatal, requires external reset.
	FaultTimeout
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultConflictingLimits:
		return "conflicting-limits"
	case FaultTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Snapshot is one atomically-published reading of the five gate inputs.
// All levels are logical (active-true); physical polarity is resolved
// at the sampling boundary.
type Snapshot struct {
	LimitOpen   bool // gate fully open
	LimitClosed bool // gate fully closed
	Obstruction bool // photocell beam broken
	Button      bool // manual push-button pressed
	OpenCommand bool // remote open signal asserted
}

// Motor is the drive command for the reversible motor.
type Motor uint8

const (
	MotorStop Motor = iota
	MotorDriveOpen
	MotorDriveClose
)

func (m Motor) String() string {
	switch m {
	case MotorStop:
		return "stop"
	case MotorDriveOpen:
		return "open"
	case MotorDriveClose:
		return "close"
	default:
		return "unknown"
	}
}

// Lamp is the status lamp mode. Values match the original firmware's
// lamp codes 0-3.
type Lamp uint8

const (
	LampOff Lamp = iota
	LampSolidFault
	LampBlink
	LampBlinkStopped
)

func (l Lamp) String() string {
	switch l {
	case LampOff:
		return "off"
	case LampSolidFault:
		return "solid-fault"
	case LampBlink:
		return "blink"
	case LampBlinkStopped:
		return "blink-stopped"
	default:
		return "unknown"
	}
}

// Outputs is the full output command for one state entry.
// It is derived from the state, never stored.
type Outputs struct {
	Motor Motor
	Lamp  Lamp
}

// OutputsFor returns the entry outputs for a state.
// Both fault reasons share the same outputs, so no reason is needed here.
func OutputsFor(s State) Outputs {
	switch s {
	case StateClosing:
		return Outputs{Motor: MotorDriveClose, Lamp: LampBlink}
	case StateOpening:
		return Outputs{Motor: MotorDriveOpen, Lamp: LampBlink}
	case StateStopped:
		return Outputs{Motor: MotorStop, Lamp: LampBlinkStopped}
	case StateFault:
		return Outputs{Motor: MotorStop, Lamp: LampSolidFault}
	default:
		// InitConfig, Open, Closed
		return Outputs{Motor: MotorStop, Lamp: LampOff}
	}
}
