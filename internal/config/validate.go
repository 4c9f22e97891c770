// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	g := &cfg.Gate

	if g.ID == "" {
		return fmt.Errorf("gate: id is required")
	}
	if g.TickMs < 0 {
		return fmt.Errorf("gate %q: tick_ms must not be negative", g.ID)
	}

	// ------------------------------------------------------------
	// IO BACKEND VALIDATION
	// ------------------------------------------------------------

	switch g.IO.Backend {
	case "gpio":
		if g.IO.GPIO == nil {
			return fmt.Errorf("gate %q: backend is gpio but io.gpio is missing", g.ID)
		}
		if err := validateGPIO(g.ID, g.IO.GPIO); err != nil {
			return err
		}

	case "modbus":
		if g.IO.Modbus == nil {
			return fmt.Errorf("gate %q: backend is modbus but io.modbus is missing", g.ID)
		}
		if g.IO.Modbus.Endpoint == "" {
			return fmt.Errorf("gate %q: io.modbus.endpoint is required", g.ID)
		}
		if g.IO.Modbus.TimeoutMs < 0 {
			return fmt.Errorf("gate %q: io.modbus.timeout_ms must not be negative", g.ID)
		}

	case "":
		return fmt.Errorf("gate %q: io.backend is required", g.ID)

	default:
		return fmt.Errorf("gate %q: unknown io.backend %q", g.ID, g.IO.Backend)
	}

	// ------------------------------------------------------------
	// STATUS MIRROR VALIDATION (OPT-IN)
	// ------------------------------------------------------------

	if cfg.Status != nil {
		if cfg.Status.Endpoint == "" {
			return fmt.Errorf("gate %q: status.endpoint is required when status is set", g.ID)
		}
		if cfg.Status.TimeoutMs < 0 {
			return fmt.Errorf("gate %q: status.timeout_ms must not be negative", g.ID)
		}

		// device_name sanity (ASCII only)
		name := cfg.Status.DeviceName
		for i := 0; i < len(name); i++ {
			if name[i] > 0x7F {
				return fmt.Errorf(
					"gate %q: status.device_name must contain ASCII characters only",
					g.ID,
				)
			}
		}
	}

	return nil
}

func validateGPIO(gateID string, g *GPIOConfig) error {
	for _, name := range InputNames {
		pc, ok := g.Inputs[name]
		if !ok {
			return fmt.Errorf("gate %q: io.gpio.inputs.%s is required", gateID, name)
		}
		if pc.Pin == "" {
			return fmt.Errorf("gate %q: io.gpio.inputs.%s has no pin", gateID, name)
		}
	}
	for name := range g.Inputs {
		if !knownName(InputNames, name) {
			return fmt.Errorf("gate %q: unknown input %q", gateID, name)
		}
	}

	for _, name := range OutputNames {
		pc, ok := g.Outputs[name]
		if !ok {
			return fmt.Errorf("gate %q: io.gpio.outputs.%s is required", gateID, name)
		}
		if pc.Pin == "" {
			return fmt.Errorf("gate %q: io.gpio.outputs.%s has no pin", gateID, name)
		}
	}
	for name := range g.Outputs {
		if !knownName(OutputNames, name) {
			return fmt.Errorf("gate %q: unknown output %q", gateID, name)
		}
	}

	// One physical pin per line.
	seen := make(map[string]string)
	for _, name := range InputNames {
		if prev, dup := seen[g.Inputs[name].Pin]; dup {
			return fmt.Errorf("gate %q: pin %q used by both %s and %s",
				gateID, g.Inputs[name].Pin, prev, name)
		}
		seen[g.Inputs[name].Pin] = name
	}
	for _, name := range OutputNames {
		if prev, dup := seen[g.Outputs[name].Pin]; dup {
			return fmt.Errorf("gate %q: pin %q used by both %s and %s",
				gateID, g.Outputs[name].Pin, prev, name)
		}
		seen[g.Outputs[name].Pin] = name
	}

	return nil
}

func knownName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
