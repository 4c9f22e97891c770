// internal/gate/fsm.go
package gate

// DefaultMaxTicks is the travel timeout in ticks: 3 minutes at 50 ms.
const DefaultMaxTicks = 3600

// Machine is the gate state machine. It owns the current state, the
// in-state tick counter and the last fault reason, and nothing else.
// It performs no IO: callers feed it snapshots and apply the outputs
// it hands back.
//
// Not safe for concurrent use; exactly one control loop drives it.
type Machine struct {
	state    State
	fault    Fault
	tick     uint32
	maxTicks uint32
}

// New creates a machine in StateInitConfig.
// maxTicks is the travel timeout; 0 selects DefaultMaxTicks.
func New(maxTicks uint32) *Machine {
	if maxTicks == 0 {
		maxTicks = DefaultMaxTicks
	}
	return &Machine{state: StateInitConfig, maxTicks: maxTicks}
}

func (m *Machine) State() State { return m.state }
func (m *Machine) Fault() Fault { return m.fault }
func (m *Machine) Tick() uint32 { return m.tick }

// Step evaluates exactly one poll cycle against the given snapshot.
// It performs at most one transition. The returned outputs are the
// current state's entry command; entered reports whether a state entry
// happened this cycle, which is when callers must (re)apply them.
//
// Poll conditions are checked in priority order per state, so
// overlapping triggers resolve deterministically: a both-limits fault
// always pre-empts a normal completion transition.
func (m *Machine) Step(in Snapshot) (out Outputs, entered bool) {
	switch m.state {

	case StateInitConfig:
		// One-shot: resolve the resting state from the limit switches.
		if in.LimitOpen && in.LimitClosed {
			return m.enterFault(FaultConflictingLimits)
		}
		if !in.LimitOpen && !in.LimitClosed {
			return m.enter(StateClosing)
		}
		if in.LimitClosed {
			return m.enter(StateClosed)
		}
		if in.LimitOpen {
			return m.enter(StateOpen)
		}
		return m.enter(StateClosed)

	case StateClosing:
		switch {
		case in.LimitOpen && in.LimitClosed:
			return m.enterFault(FaultConflictingLimits)
		case in.Obstruction:
			// Something in the path: reverse.
			return m.enter(StateOpening)
		case in.LimitClosed:
			return m.enter(StateClosed)
		case m.tick > m.maxTicks:
			return m.enterFault(FaultTimeout)
		}

	case StateOpening:
		switch {
		case in.LimitOpen && in.LimitClosed:
			return m.enterFault(FaultConflictingLimits)
		case in.LimitOpen:
			return m.enter(StateOpen)
		case in.Button:
			return m.enter(StateStopped)
		case m.tick > m.maxTicks:
			return m.enterFault(FaultTimeout)
		}

	case StateOpen:
		// An active photocell means something is passing through:
		// hold open and keep the timeout from ever firing.
		if in.Obstruction {
			m.tick = 0
			return OutputsFor(m.state), false
		}
		switch {
		case in.Button || in.OpenCommand:
			return m.enter(StateClosing)
		case in.LimitOpen && in.LimitClosed:
			return m.enterFault(FaultConflictingLimits)
		case m.tick > m.maxTicks:
			return m.enterFault(FaultTimeout)
		}

	case StateClosed:
		switch {
		case in.Button || in.OpenCommand:
			return m.enter(StateOpening)
		case !in.LimitOpen && !in.LimitClosed:
			// Closed limit dropped: the gate moved, close it again.
			return m.enter(StateClosing)
		case in.LimitOpen && in.LimitClosed:
			return m.enterFault(FaultConflictingLimits)
		}

	case StateStopped:
		switch {
		case in.Button && !in.LimitClosed:
			return m.enter(StateClosing)
		case in.LimitOpen && !in.Obstruction:
			return m.enter(StateOpening)
		case in.LimitOpen && in.LimitClosed:
			return m.enterFault(FaultConflictingLimits)
		}

	case StateFault:
		// Conflicting limits: once the sensors disagree correctly again,
		// re-initialize from scratch; travel progress is untrustworthy.
		// Timeout is fatal: remain here until external reset.
		if m.fault == FaultConflictingLimits && !(in.LimitOpen && in.LimitClosed) {
			m.fault = FaultNone
			return m.enter(StateInitConfig)
		}
	}

	m.tick++
	return OutputsFor(m.state), false
}

// enter performs the entry actions shared by every state: reset the
// tick counter and hand back the state's output command for reissue.
func (m *Machine) enter(s State) (Outputs, bool) {
	m.state = s
	m.tick = 0
	return OutputsFor(s), true
}

func (m *Machine) enterFault(reason Fault) (Outputs, bool) {
	out, entered := m.enter(StateFault)
	m.fault = reason
	return out, entered
}
