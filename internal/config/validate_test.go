// internal/config/validate_test.go
package config

import "testing"

// helper to build a valid gpio config quickly
func gpioConfig() *Config {
	return &Config{
		Gate: GateConfig{
			ID: "g1",
			IO: IOConfig{
				Backend: "gpio",
				GPIO: &GPIOConfig{
					Inputs: map[string]PinConfig{
						"limit_open":   {Pin: "GPIO12", ActiveLow: true},
						"limit_closed": {Pin: "GPIO13"},
						"obstruction":  {Pin: "GPIO14"},
						"button":       {Pin: "GPIO27", ActiveLow: true},
						"open_command": {Pin: "GPIO26"},
					},
					Outputs: map[string]PinConfig{
						"motor_open":  {Pin: "GPIO25"},
						"motor_close": {Pin: "GPIO33"},
						"lamp":        {Pin: "GPIO32"},
					},
				},
			},
		},
	}
}

func modbusConfig() *Config {
	return &Config{
		Gate: GateConfig{
			ID: "g1",
			IO: IOConfig{
				Backend: "modbus",
				Modbus: &ModbusConfig{
					Endpoint: "10.0.0.7:502",
					UnitID:   1,
				},
			},
		},
	}
}

// ---- tests ----

func TestValidate_GPIOOk(t *testing.T) {
	if err := Validate(gpioConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModbusOk(t *testing.T) {
	if err := Validate(modbusConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingID(t *testing.T) {
	cfg := gpioConfig()
	cfg.Gate.ID = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing id error, got nil")
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := gpioConfig()
	cfg.Gate.IO.Backend = "spi"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown backend error, got nil")
	}
}

func TestValidate_MissingInput(t *testing.T) {
	cfg := gpioConfig()
	delete(cfg.Gate.IO.GPIO.Inputs, "obstruction")

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing input error, got nil")
	}
}

func TestValidate_UnknownInput(t *testing.T) {
	cfg := gpioConfig()
	cfg.Gate.IO.GPIO.Inputs["pedestrian"] = PinConfig{Pin: "GPIO5"}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown input error, got nil")
	}
}

func TestValidate_DuplicatePin(t *testing.T) {
	cfg := gpioConfig()
	cfg.Gate.IO.GPIO.Outputs["lamp"] = PinConfig{Pin: "GPIO25"} // motor_open's pin

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate pin error, got nil")
	}
}

func TestValidate_ModbusEndpointRequired(t *testing.T) {
	cfg := modbusConfig()
	cfg.Gate.IO.Modbus.Endpoint = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing endpoint error, got nil")
	}
}

func TestValidate_StatusDeviceNameASCII(t *testing.T) {
	cfg := modbusConfig()
	cfg.Status = &StatusConfig{
		Endpoint:   "10.0.0.9:502",
		DeviceName: "portón",
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected ASCII error, got nil")
	}
}

func TestValidate_StatusEndpointRequired(t *testing.T) {
	cfg := modbusConfig()
	cfg.Status = &StatusConfig{DeviceName: "g1"}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing status endpoint error, got nil")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := modbusConfig()
	cfg.Status = &StatusConfig{
		Endpoint:   "10.0.0.9:502",
		DeviceName: "a-name-that-is-way-too-long",
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Normalize(cfg)

	if cfg.Gate.TickMs != DefaultTickMs {
		t.Fatalf("tick_ms=%d want=%d", cfg.Gate.TickMs, DefaultTickMs)
	}
	if cfg.Gate.MaxTicks != DefaultMaxTicks {
		t.Fatalf("max_ticks=%d want=%d", cfg.Gate.MaxTicks, DefaultMaxTicks)
	}
	if cfg.Gate.IO.Modbus.TimeoutMs != DefaultModbusTimeoutMs {
		t.Fatalf("timeout_ms=%d want=%d", cfg.Gate.IO.Modbus.TimeoutMs, DefaultModbusTimeoutMs)
	}
	if len(cfg.Status.DeviceName) != 16 {
		t.Fatalf("device_name not truncated: %q", cfg.Status.DeviceName)
	}
}
