// internal/config/config.go
package config

type Config struct {
	Gate   GateConfig    `yaml:"gate"`
	Status *StatusConfig `yaml:"status"`
}

// ---- GATE ----

type GateConfig struct {
	ID       string   `yaml:"id"`
	TickMs   int      `yaml:"tick_ms"`
	MaxTicks uint32   `yaml:"max_ticks"`
	IO       IOConfig `yaml:"io"`
}

// ---- IO BACKEND ----

type IOConfig struct {
	Backend string        `yaml:"backend"` // "gpio" or "modbus"
	GPIO    *GPIOConfig   `yaml:"gpio"`
	Modbus  *ModbusConfig `yaml:"modbus"`
}

type PinConfig struct {
	Pin       string `yaml:"pin"`
	ActiveLow bool   `yaml:"active_low"`
}

type GPIOConfig struct {
	Inputs  map[string]PinConfig `yaml:"inputs"`
	Outputs map[string]PinConfig `yaml:"outputs"`
}

type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	InputAddress uint16 `yaml:"input_address"`
	CoilAddress  uint16 `yaml:"coil_address"`
}

// ---- STATUS MIRROR (optional, opt-in) ----

type StatusConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	Slot       uint16 `yaml:"slot"`
	DeviceName string `yaml:"device_name"`
}

// ---- WELL-KNOWN NAMES ----

// InputNames lists the gate inputs, in snapshot order.
var InputNames = []string{
	"limit_open",
	"limit_closed",
	"obstruction",
	"button",
	"open_command",
}

// Output names.
const (
	OutputMotorOpen  = "motor_open"
	OutputMotorClose = "motor_close"
	OutputLamp       = "lamp"
)

// OutputNames lists the gate outputs.
var OutputNames = []string{OutputMotorOpen, OutputMotorClose, OutputLamp}
