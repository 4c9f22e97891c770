// internal/iodev/gpio/gpio.go
package gpio

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/tamzrod/gatectl/internal/sampler"
)

// Config names the pins by their gpioreg identifiers ("GPIO12", ...).
type Config struct {
	InputPins [sampler.InputCount]string

	MotorOpenPin  string
	MotorClosePin string
	LampPin       string
}

// Device is a direct-pin backend: five inputs with pull-ups, three
// output lines. Implements sampler.Reader and actuator.Driver.
type Device struct {
	inputs [sampler.InputCount]gpio.PinIO

	motorOpen  gpio.PinIO
	motorClose gpio.PinIO
	lamp       gpio.PinIO
}

// Open initializes the host, claims all pins and drives every output
// low. Fails fast on any missing or unusable pin.
func Open(cfg Config) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio: host init: %w", err)
	}

	d := &Device{}

	for i, name := range cfg.InputPins {
		if name == "" {
			return nil, fmt.Errorf("gpio: input %d has no pin", i)
		}
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, fmt.Errorf("gpio: no such pin %q", name)
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("gpio: input pin %q: %w", name, err)
		}
		d.inputs[i] = pin
	}

	outs := []struct {
		name string
		dst  *gpio.PinIO
	}{
		{cfg.MotorOpenPin, &d.motorOpen},
		{cfg.MotorClosePin, &d.motorClose},
		{cfg.LampPin, &d.lamp},
	}
	for _, o := range outs {
		if o.name == "" {
			return nil, errors.New("gpio: all three output pins required")
		}
		pin := gpioreg.ByName(o.name)
		if pin == nil {
			return nil, fmt.Errorf("gpio: no such pin %q", o.name)
		}
		if err := pin.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("gpio: output pin %q: %w", o.name, err)
		}
		*o.dst = pin
	}

	return d, nil
}

// ReadInputs reads the raw physical levels; high = true. Polarity is
// the sampler's concern.
func (d *Device) ReadInputs() ([sampler.InputCount]bool, error) {
	var levels [sampler.InputCount]bool
	for i, pin := range d.inputs {
		levels[i] = pin.Read() == gpio.High
	}
	return levels, nil
}

func (d *Device) SetMotorLines(open, closed bool) error {
	// Drop before raise so a reversal never overlaps on the wire.
	if !open {
		if err := d.motorOpen.Out(gpio.Low); err != nil {
			return err
		}
	}
	if !closed {
		if err := d.motorClose.Out(gpio.Low); err != nil {
			return err
		}
	}
	if open {
		if err := d.motorOpen.Out(gpio.High); err != nil {
			return err
		}
	}
	if closed {
		if err := d.motorClose.Out(gpio.High); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) SetLampLine(on bool) error {
	lvl := gpio.Low
	if on {
		lvl = gpio.High
	}
	return d.lamp.Out(lvl)
}

// Close drives all outputs low.
func (d *Device) Close() error {
	var firstErr error
	for _, pin := range []gpio.PinIO{d.motorOpen, d.motorClose, d.lamp} {
		if pin == nil {
			continue
		}
		if err := pin.Out(gpio.Low); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
