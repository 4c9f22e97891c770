// internal/actuator/actuator.go
package actuator

import (
	"errors"

	"github.com/tamzrod/gatectl/internal/gate"
)

// Driver applies raw output lines. Implementations are dumb: no
// interlock, no change tracking, just line levels.
//
// The lamp line is a single on/off level; blink cadence comes from the
// external flasher unit, so any mode other than off drives the line.
type Driver interface {
	SetMotorLines(open, closed bool) error
	SetLampLine(on bool) error
}

// Actuator is the delivery-only output sink for one gate. It tracks
// the last applied command so reissues on state entry stay cheap, and
// enforces the relay interlock: the two motor lines are never driven
// together, and a direction reversal passes through stop first.
type Actuator struct {
	drv Driver

	motor      gate.Motor
	lamp       gate.Lamp
	motorKnown bool
	lampKnown  bool
}

// New creates an actuator. The driver's lines are assumed de-asserted,
// as left by device bring-up.
func New(drv Driver) (*Actuator, error) {
	if drv == nil {
		return nil, errors.New("actuator: driver required")
	}
	return &Actuator{drv: drv}, nil
}

// SetMotor applies a motor command. Idempotent: repeating the current
// command touches no hardware.
func (a *Actuator) SetMotor(m gate.Motor) error {
	if a.motorKnown && a.motor == m {
		return nil
	}

	// Reversal: break the live line before making the other.
	reversing := a.motorKnown && a.motor != gate.MotorStop &&
		m != gate.MotorStop && a.motor != m
	if reversing {
		if err := a.drv.SetMotorLines(false, false); err != nil {
			a.motorKnown = false
			return err
		}
	}

	var open, closed bool
	switch m {
	case gate.MotorDriveOpen:
		open = true
	case gate.MotorDriveClose:
		closed = true
	}

	if err := a.drv.SetMotorLines(open, closed); err != nil {
		// Unknown line state: next command must reach the hardware.
		a.motorKnown = false
		return err
	}

	a.motor = m
	a.motorKnown = true
	return nil
}

// SetLamp applies a lamp mode. Idempotent like SetMotor.
func (a *Actuator) SetLamp(l gate.Lamp) error {
	if a.lampKnown && a.lamp == l {
		return nil
	}

	if err := a.drv.SetLampLine(l != gate.LampOff); err != nil {
		a.lampKnown = false
		return err
	}

	a.lamp = l
	a.lampKnown = true
	return nil
}
