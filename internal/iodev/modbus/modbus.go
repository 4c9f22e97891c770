// internal/iodev/modbus/modbus.go
package modbus

import (
	"errors"
	"fmt"
	"time"

	gomodbus "github.com/goburrow/modbus"

	"github.com/tamzrod/gatectl/internal/sampler"
)

const (
	coilMotorOpen  = 0
	coilMotorClose = 1
	coilLamp       = 2

	coilOn  uint16 = 0xFF00
	coilOff uint16 = 0x0000
)

// Config is minimal transport and addressing config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration

	// InputAddress is the first of five discrete inputs, in snapshot
	// order. CoilAddress is the first of three coils: motor open,
	// motor close, lamp.
	InputAddress uint16
	CoilAddress  uint16
}

// Device is a Modbus TCP backend for gates wired through a fieldbus
// I/O block. Implements sampler.Reader and actuator.Driver, and the
// register writes the status mirror needs.
type Device struct {
	handler *gomodbus.TCPClientHandler
	client  gomodbus.Client
	cfg     Config
}

// Open creates a connected client. One attempt, fail fast; the
// goburrow handler reconnects on later calls while the endpoint is
// reachable.
func Open(cfg Config) (*Device, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus: endpoint required")
	}

	handler := gomodbus.NewTCPClientHandler(cfg.Endpoint)
	handler.Timeout = cfg.Timeout
	handler.SlaveId = byte(cfg.UnitID)

	if err := handler.Connect(); err != nil {
		return nil, fmt.Errorf("modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &Device{
		handler: handler,
		client:  gomodbus.NewClient(handler),
		cfg:     cfg,
	}, nil
}

// ReadInputs reads the five discrete inputs in one request.
func (d *Device) ReadInputs() ([sampler.InputCount]bool, error) {
	var levels [sampler.InputCount]bool

	raw, err := d.client.ReadDiscreteInputs(d.cfg.InputAddress, uint16(sampler.InputCount))
	if err != nil {
		return levels, fmt.Errorf("modbus: read inputs: %w", err)
	}
	if len(raw) < 1 {
		return levels, errors.New("modbus: empty discrete input response")
	}

	for i := 0; i < int(sampler.InputCount); i++ {
		byteIdx := i / 8
		if byteIdx >= len(raw) {
			break
		}
		levels[i] = raw[byteIdx]&(1<<(i%8)) != 0
	}
	return levels, nil
}

func (d *Device) SetMotorLines(open, closed bool) error {
	// Drop before raise, same interlock ordering as the gpio backend.
	if !open {
		if err := d.writeCoil(coilMotorOpen, false); err != nil {
			return err
		}
	}
	if !closed {
		if err := d.writeCoil(coilMotorClose, false); err != nil {
			return err
		}
	}
	if open {
		if err := d.writeCoil(coilMotorOpen, true); err != nil {
			return err
		}
	}
	if closed {
		if err := d.writeCoil(coilMotorClose, true); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) SetLampLine(on bool) error {
	return d.writeCoil(coilLamp, on)
}

func (d *Device) writeCoil(offset uint16, on bool) error {
	v := coilOff
	if on {
		v = coilOn
	}
	if _, err := d.client.WriteSingleCoil(d.cfg.CoilAddress+offset, v); err != nil {
		return fmt.Errorf("modbus: write coil %d: %w", d.cfg.CoilAddress+offset, err)
	}
	return nil
}

// WriteRegisters writes holding registers starting at addr, two
// big-endian bytes per register. Used by the status mirror.
func (d *Device) WriteRegisters(addr uint16, regs []uint16) error {
	if len(regs) == 0 {
		return nil
	}

	buf := make([]byte, 2*len(regs))
	for i, r := range regs {
		buf[2*i] = byte(r >> 8)
		buf[2*i+1] = byte(r)
	}

	if _, err := d.client.WriteMultipleRegisters(addr, uint16(len(regs)), buf); err != nil {
		return fmt.Errorf("modbus: write registers at %d: %w", addr, err)
	}
	return nil
}

// Close closes the TCP connection.
func (d *Device) Close() error {
	if d == nil || d.handler == nil {
		return nil
	}
	return d.handler.Close()
}
