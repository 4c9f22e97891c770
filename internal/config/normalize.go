// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultTickMs          = 50
	DefaultMaxTicks        = 3600 // 3 minutes at 50 ms
	DefaultModbusTimeoutMs = 500
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	g := &cfg.Gate

	if g.TickMs == 0 {
		g.TickMs = DefaultTickMs
	}
	if g.MaxTicks == 0 {
		g.MaxTicks = DefaultMaxTicks
	}

	if g.IO.Modbus != nil && g.IO.Modbus.TimeoutMs == 0 {
		g.IO.Modbus.TimeoutMs = DefaultModbusTimeoutMs
	}

	// ------------------------------------------------------------
	// STATUS MIRROR NORMALIZATION (OPT-IN)
	// ------------------------------------------------------------

	if cfg.Status == nil {
		return
	}

	if cfg.Status.TimeoutMs == 0 {
		cfg.Status.TimeoutMs = DefaultModbusTimeoutMs
	}

	// device_name defaults to the gate id; ASCII already validated.
	// Truncate to max 16 characters.
	if cfg.Status.DeviceName == "" {
		cfg.Status.DeviceName = g.ID
	}
	if len(cfg.Status.DeviceName) > 16 {
		cfg.Status.DeviceName = cfg.Status.DeviceName[:16]
	}
}
