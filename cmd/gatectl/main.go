// cmd/gatectl/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/gatectl/internal/actuator"
	"github.com/tamzrod/gatectl/internal/config"
	"github.com/tamzrod/gatectl/internal/gate"
	iogpio "github.com/tamzrod/gatectl/internal/iodev/gpio"
	iomodbus "github.com/tamzrod/gatectl/internal/iodev/modbus"
	"github.com/tamzrod/gatectl/internal/sampler"
	"github.com/tamzrod/gatectl/internal/status"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: gatectl <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tick := time.Duration(cfg.Gate.TickMs) * time.Millisecond

	// --------------------
	// IO backend
	// --------------------

	reader, driver, activeLow, closeIO, err := buildIO(cfg.Gate.IO)
	if err != nil {
		log.Fatalf("io backend failed (gate=%s): %v", cfg.Gate.ID, err)
	}
	defer closeIO()

	// --------------------
	// Sampler + actuator + machine
	// --------------------

	smp, err := sampler.New(sampler.Config{Interval: tick, ActiveLow: activeLow}, reader)
	if err != nil {
		log.Fatalf("sampler failed (gate=%s): %v", cfg.Gate.ID, err)
	}

	act, err := actuator.New(driver)
	if err != nil {
		log.Fatalf("actuator failed (gate=%s): %v", cfg.Gate.ID, err)
	}

	machine := gate.New(cfg.Gate.MaxTicks)

	runner, err := gate.NewRunner(
		gate.RunnerConfig{ID: cfg.Gate.ID, Interval: tick},
		machine, smp, act,
	)
	if err != nil {
		log.Fatalf("runner failed (gate=%s): %v", cfg.Gate.ID, err)
	}

	// --------------------
	// Status mirror (optional per config)
	// --------------------

	var events chan gate.Transition

	if cfg.Status != nil {
		dev, err := iomodbus.Open(iomodbus.Config{
			Endpoint: cfg.Status.Endpoint,
			UnitID:   cfg.Status.UnitID,
			Timeout:  time.Duration(cfg.Status.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			log.Fatalf("status endpoint failed (gate=%s): %v", cfg.Gate.ID, err)
		}
		defer dev.Close()

		sw, err := status.NewWriter(dev, cfg.Status.Slot, cfg.Status.DeviceName)
		if err != nil {
			log.Fatalf("status writer failed (gate=%s): %v", cfg.Gate.ID, err)
		}

		events = make(chan gate.Transition, 8)

		// Mirror orchestrator: state/fault on transition, seconds at 1Hz.
		go func(gateID string) {
			cur := machine.State()
			fault := machine.Fault()
			var seconds uint16

			// Full block write on start (identity re-assert).
			if err := sw.WriteStatus(status.For(cur, fault, seconds)); err != nil {
				log.Printf("status write failed on start (gate=%s): %v", gateID, err)
			}

			secTicker := time.NewTicker(time.Second)
			defer secTicker.Stop()

			for {
				select {
				case <-ctx.Done():
					return

				case tr := <-events:
					cur = tr.To
					fault = tr.Fault
					seconds = 0
					if err := sw.WriteStatus(status.For(cur, fault, seconds)); err != nil {
						log.Printf("status write failed (gate=%s): %v", gateID, err)
					}

				case <-secTicker.C:
					if seconds < status.SecondsMax {
						seconds++
					}
					if err := sw.WriteStatus(status.For(cur, fault, seconds)); err != nil {
						log.Printf("status seconds tick write failed (gate=%s): %v", gateID, err)
					}
				}
			}
		}(cfg.Gate.ID)
	}

	// --------------------
	// Run: sampler producer + control loop
	// --------------------

	// First snapshot before the machine's first evaluation, so
	// InitConfig never resolves from an all-false default.
	if err := smp.SampleOnce(); err != nil {
		log.Fatalf("initial input read failed (gate=%s): %v", cfg.Gate.ID, err)
	}

	go smp.Run(ctx)

	log.Printf("gate %s: control loop starting (tick=%s max_ticks=%d backend=%s)",
		cfg.Gate.ID, tick, cfg.Gate.MaxTicks, cfg.Gate.IO.Backend)

	runner.Run(ctx, events)
}

// ioCloser is the backend teardown hook.
type ioCloser func() error

// buildIO constructs the configured backend. Both backends satisfy
// sampler.Reader and actuator.Driver with one device.
func buildIO(io config.IOConfig) (sampler.Reader, actuator.Driver, [sampler.InputCount]bool, ioCloser, error) {
	var activeLow [sampler.InputCount]bool

	switch io.Backend {
	case "gpio":
		var pins [sampler.InputCount]string
		for i, name := range config.InputNames {
			pc := io.GPIO.Inputs[name]
			pins[i] = pc.Pin
			activeLow[i] = pc.ActiveLow
		}

		dev, err := iogpio.Open(iogpio.Config{
			InputPins:     pins,
			MotorOpenPin:  io.GPIO.Outputs[config.OutputMotorOpen].Pin,
			MotorClosePin: io.GPIO.Outputs[config.OutputMotorClose].Pin,
			LampPin:       io.GPIO.Outputs[config.OutputLamp].Pin,
		})
		if err != nil {
			return nil, nil, activeLow, nil, err
		}
		return dev, dev, activeLow, dev.Close, nil

	default: // "modbus", enforced by Validate
		dev, err := iomodbus.Open(iomodbus.Config{
			Endpoint:     io.Modbus.Endpoint,
			UnitID:       io.Modbus.UnitID,
			Timeout:      time.Duration(io.Modbus.TimeoutMs) * time.Millisecond,
			InputAddress: io.Modbus.InputAddress,
			CoilAddress:  io.Modbus.CoilAddress,
		})
		if err != nil {
			return nil, nil, activeLow, nil, err
		}
		// Fieldbus inputs are already logical levels.
		return dev, dev, activeLow, dev.Close, nil
	}
}
