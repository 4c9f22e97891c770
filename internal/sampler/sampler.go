// internal/sampler/sampler.go
package sampler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/tamzrod/gatectl/internal/gate"
)

// Input indexes the five gate inputs in snapshot order.
type Input int

const (
	InputLimitOpen Input = iota
	InputLimitClosed
	InputObstruction
	InputButton
	InputOpenCommand

	InputCount
)

// Reader reads the current raw levels of the gate inputs, in Input
// order. Raw means physical: active-low lines still read high when
// idle. Polarity is the sampler's job, not the reader's.
type Reader interface {
	ReadInputs() ([InputCount]bool, error)
}

// Config is the minimal runtime config the sampler needs.
type Config struct {
	Interval time.Duration

	// ActiveLow marks inputs whose physical level is inverted:
	// a low line reads as logically active.
	ActiveLow [InputCount]bool
}

// Sampler periodically reads raw inputs, normalizes polarity and
// publishes whole snapshots. Single writer; any number of readers.
type Sampler struct {
	cfg    Config
	reader Reader

	mu   sync.Mutex
	snap gate.Snapshot
}

// New creates a sampler with immutable config.
func New(cfg Config, reader Reader) (*Sampler, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("sampler: interval must be > 0")
	}
	if reader == nil {
		return nil, errors.New("sampler: reader required")
	}
	return &Sampler{cfg: cfg, reader: reader}, nil
}

// Snapshot returns the latest published snapshot.
func (s *Sampler) Snapshot() gate.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// SampleOnce performs exactly one read-normalize-publish cycle.
// On read failure the previous snapshot stays published: the control
// loop keeps acting on the last known levels rather than on zeros.
func (s *Sampler) SampleOnce() error {
	raw, err := s.reader.ReadInputs()
	if err != nil {
		return err
	}

	var logical [InputCount]bool
	for i := Input(0); i < InputCount; i++ {
		logical[i] = raw[i] != s.cfg.ActiveLow[i]
	}

	snap := gate.Snapshot{
		LimitOpen:   logical[InputLimitOpen],
		LimitClosed: logical[InputLimitClosed],
		Obstruction: logical[InputObstruction],
		Button:      logical[InputButton],
		OpenCommand: logical[InputOpenCommand],
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	return nil
}

// Run starts the ticker loop. One goroutine, no overlap, no retries
// beyond the next tick.
func (s *Sampler) Run(ctx context.Context) {
	// Prime the snapshot before the first tick so the control loop
	// never evaluates an all-false default.
	if err := s.SampleOnce(); err != nil {
		log.Printf("sampler: initial read failed: %v", err)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SampleOnce(); err != nil {
				log.Printf("sampler: read failed: %v", err)
			}
		}
	}
}
