// internal/status/writer_test.go
package status

import (
	"errors"
	"testing"

	"github.com/tamzrod/gatectl/internal/gate"
)

type fakeRegisterWriter struct {
	lastAddr uint16
	lastRegs []uint16
	fail     bool
}

func (f *fakeRegisterWriter) WriteRegisters(addr uint16, regs []uint16) error {
	if f.fail {
		return errors.New("write failed")
	}
	f.lastAddr = addr
	f.lastRegs = regs
	return nil
}

func TestGateNameWrittenOnFullAssertOnly(t *testing.T) {
	cli := &fakeRegisterWriter{}

	w, err := NewWriter(cli, 0, "front-gate")
	if err != nil {
		t.Fatalf("NewWriter err=%v", err)
	}

	// ---- first write: FULL ASSERT ----
	first := For(gate.StateClosed, gate.FaultNone, 0)

	if err := w.WriteStatus(first); err != nil {
		t.Fatalf("initial full assert failed: %v", err)
	}

	if len(cli.lastRegs) != SlotsPerGate {
		t.Fatalf("expected full block write (%d regs), got %d", SlotsPerGate, len(cli.lastRegs))
	}

	expectedNameRegs := encodeGateNameRegs("front-gate")
	for i := 0; i < SlotGateNameSlots; i++ {
		slot := SlotGateNameStart + i
		if cli.lastRegs[slot] != expectedNameRegs[i] {
			t.Fatalf("name slot %d mismatch: got=%d want=%d", slot, cli.lastRegs[slot], expectedNameRegs[i])
		}
	}

	// ---- second write: INCREMENTAL ONLY ----
	second := For(gate.StateOpening, gate.FaultNone, 0)

	if err := w.WriteStatus(second); err != nil {
		t.Fatalf("incremental write failed: %v", err)
	}

	if len(cli.lastRegs) == SlotsPerGate {
		t.Fatalf("gate name should not be rewritten on incremental update")
	}
	if cli.lastAddr != SlotStateCode {
		t.Fatalf("unexpected write addr: got=%d want=%d", cli.lastAddr, SlotStateCode)
	}
	if cli.lastRegs[0] != uint16(gate.StateOpening) {
		t.Fatalf("state code got=%d want=%d", cli.lastRegs[0], uint16(gate.StateOpening))
	}
}

func TestSecondsResetOnTransition(t *testing.T) {
	cli := &fakeRegisterWriter{}

	w, err := NewWriter(cli, 0, "front-gate")
	if err != nil {
		t.Fatalf("NewWriter err=%v", err)
	}

	if err := w.WriteStatus(For(gate.StateFault, gate.FaultConflictingLimits, 0)); err != nil {
		t.Fatalf("full assert failed: %v", err)
	}
	if err := w.WriteStatus(For(gate.StateFault, gate.FaultConflictingLimits, 3)); err != nil {
		t.Fatalf("seconds tick write failed: %v", err)
	}

	// Recovery: seconds drop back to zero in a single-slot write.
	if err := w.WriteStatus(For(gate.StateFault, gate.FaultConflictingLimits, 0)); err != nil {
		t.Fatalf("reset write failed: %v", err)
	}

	if cli.lastAddr != SlotSecondsInState {
		t.Fatalf("unexpected write addr: got=%d want=%d", cli.lastAddr, SlotSecondsInState)
	}
	if len(cli.lastRegs) != 1 || cli.lastRegs[0] != 0 {
		t.Fatalf("seconds not reset: regs=%v", cli.lastRegs)
	}
}

func TestFullBlockReassertAfterFailure(t *testing.T) {
	cli := &fakeRegisterWriter{}

	w, err := NewWriter(cli, 1, "g")
	if err != nil {
		t.Fatalf("NewWriter err=%v", err)
	}

	if err := w.WriteStatus(For(gate.StateClosed, gate.FaultNone, 0)); err != nil {
		t.Fatalf("full assert failed: %v", err)
	}
	if cli.lastAddr != 1*SlotsPerGate {
		t.Fatalf("base addr got=%d want=%d", cli.lastAddr, 1*SlotsPerGate)
	}

	cli.fail = true
	if err := w.WriteStatus(For(gate.StateOpening, gate.FaultNone, 0)); err == nil {
		t.Fatalf("expected write error")
	}

	// Next successful write must re-assert the whole block.
	cli.fail = false
	if err := w.WriteStatus(For(gate.StateOpen, gate.FaultNone, 0)); err != nil {
		t.Fatalf("reassert failed: %v", err)
	}
	if len(cli.lastRegs) != SlotsPerGate {
		t.Fatalf("expected full block reassert, got %d regs", len(cli.lastRegs))
	}
	if cli.lastRegs[SlotStateCode] != uint16(gate.StateOpen) {
		t.Fatalf("state code got=%d want=%d", cli.lastRegs[SlotStateCode], uint16(gate.StateOpen))
	}
}
