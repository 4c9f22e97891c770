// internal/gate/runner.go
package gate

import (
	"context"
	"errors"
	"log"
	"time"
)

// InputSource hands out the latest input snapshot. Implementations must
// publish whole snapshots atomically; the runner never observes a mix
// of old and new levels.
type InputSource interface {
	Snapshot() Snapshot
}

// OutputSink applies motor and lamp commands. Idempotent, side-effect
// only; the runner reissues the full command on every state entry.
type OutputSink interface {
	SetMotor(Motor) error
	SetLamp(Lamp) error
}

// Transition is one state entry, emitted for observers.
type Transition struct {
	From  State
	To    State
	Fault Fault
	At    time.Time
}

// RunnerConfig is the minimal runtime config the control loop needs.
type RunnerConfig struct {
	ID       string
	Interval time.Duration
}

// Runner drives one Machine at a fixed cadence.
type Runner struct {
	cfg  RunnerConfig
	m    *Machine
	src  InputSource
	sink OutputSink
}

// NewRunner creates a runner with immutable config.
func NewRunner(cfg RunnerConfig, m *Machine, src InputSource, sink OutputSink) (*Runner, error) {
	if cfg.ID == "" {
		return nil, errors.New("runner: gate id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("runner: interval must be > 0")
	}
	if m == nil || src == nil || sink == nil {
		return nil, errors.New("runner: machine, source and sink required")
	}
	return &Runner{cfg: cfg, m: m, src: src, sink: sink}, nil
}

// Run evaluates one step per tick until ctx is cancelled, then stops
// the motor on the way out. Transitions are sent to events when it is
// non-nil; the send never blocks — the mirror is passive and must not
// stall the control loop.
func (r *Runner) Run(ctx context.Context, events chan<- Transition) {
	// Initial entry: the machine starts resident in InitConfig, so its
	// outputs are asserted once before the first poll.
	r.apply(OutputsFor(r.m.State()))

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := r.sink.SetMotor(MotorStop); err != nil {
				log.Printf("gate %s: motor stop on shutdown failed: %v", r.cfg.ID, err)
			}
			return

		case <-ticker.C:
			from := r.m.State()
			out, entered := r.m.Step(r.src.Snapshot())
			if !entered {
				continue
			}

			r.apply(out)

			to := r.m.State()
			if to == StateFault {
				log.Printf("gate %s: %s -> %s (%s)", r.cfg.ID, from, to, r.m.Fault())
			} else {
				log.Printf("gate %s: %s -> %s", r.cfg.ID, from, to)
			}

			if events != nil {
				select {
				case events <- Transition{From: from, To: to, Fault: r.m.Fault(), At: time.Now()}:
				default:
				}
			}
		}
	}
}

func (r *Runner) apply(out Outputs) {
	if err := r.sink.SetMotor(out.Motor); err != nil {
		log.Printf("gate %s: motor command %s failed: %v", r.cfg.ID, out.Motor, err)
	}
	if err := r.sink.SetLamp(out.Lamp); err != nil {
		log.Printf("gate %s: lamp command %s failed: %v", r.cfg.ID, out.Lamp, err)
	}
}
