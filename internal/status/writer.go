// internal/status/writer.go
package status

import (
	"errors"
	"fmt"
	"strings"
)

// registerWriter is the exact contract the status writer uses.
// IMPORTANT: there must be NO other version of this interface anywhere.
type registerWriter interface {
	WriteRegisters(addr uint16, regs []uint16) error
}

// Writer mirrors gate status into a block of holding registers.
// Delivery only: it receives snapshots and writes them verbatim.
// On any write failure, the next successful call re-asserts the full
// block so a partially-updated mirror never persists.
type Writer struct {
	cli      registerWriter
	baseSlot uint16

	needFull bool
	last     Snapshot
	nameRegs []uint16
}

// NewWriter builds a status writer. baseSlot addresses one
// SlotsPerGate block; gateName is truncated to GateNameMaxChars.
func NewWriter(cli registerWriter, baseSlot uint16, gateName string) (*Writer, error) {
	if cli == nil {
		return nil, errors.New("status writer: register writer required")
	}
	return &Writer{
		cli:      cli,
		baseSlot: baseSlot,
		needFull: true, // full re-assert on first successful write
		nameRegs: encodeGateNameRegs(gateName),
	}, nil
}

// WriteStatus delivers one snapshot into the status block.
func (w *Writer) WriteStatus(s Snapshot) error {
	baseAddr := w.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if w.needFull {
		regs := w.fullBlockRegs(s)

		if err := w.cli.WriteRegisters(baseAddr, regs); err != nil {
			w.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		w.needFull = false
		w.last = s
		return nil
	}

	var errs []string

	// Slot 0 — state_code
	if w.last.StateCode != s.StateCode {
		if err := w.cli.WriteRegisters(baseAddr+SlotStateCode, []uint16{s.StateCode}); err != nil {
			errs = append(errs, fmt.Sprintf("slot0 state write failed: %v", err))
		} else {
			w.last.StateCode = s.StateCode
		}
	}

	// Slot 1 — fault_code
	if w.last.FaultCode != s.FaultCode {
		if err := w.cli.WriteRegisters(baseAddr+SlotFaultCode, []uint16{s.FaultCode}); err != nil {
			errs = append(errs, fmt.Sprintf("slot1 fault write failed: %v", err))
		} else {
			w.last.FaultCode = s.FaultCode
		}
	}

	// Slot 2 — seconds_in_state
	if w.last.SecondsInState != s.SecondsInState {
		if err := w.cli.WriteRegisters(baseAddr+SlotSecondsInState, []uint16{s.SecondsInState}); err != nil {
			errs = append(errs, fmt.Sprintf("slot2 seconds write failed: %v", err))
		} else {
			w.last.SecondsInState = s.SecondsInState
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt — re-assert on next success.
		w.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (w *Writer) baseAddr() uint16 {
	// Each gate owns a fixed SlotsPerGate block.
	return w.baseSlot * SlotsPerGate
}

func (w *Writer) fullBlockRegs(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerGate)

	// Slots 0–2: live status
	regs[SlotStateCode] = s.StateCode
	regs[SlotFaultCode] = s.FaultCode
	regs[SlotSecondsInState] = s.SecondsInState

	// Slots 3..(name start - 1) are RESERVED → left as zero

	// Gate name always lives at the end of the block
	for i := 0; i < SlotGateNameSlots; i++ {
		dst := SlotGateNameStart + i
		if dst < len(regs) && i < len(w.nameRegs) {
			regs[dst] = w.nameRegs[i]
		}
	}

	return regs
}

// encodeGateNameRegs packs up to 16 ASCII characters into 8 uint16
// registers, two big-endian bytes each.
func encodeGateNameRegs(name string) []uint16 {
	out := make([]uint16, SlotGateNameSlots)

	b := []byte(name)
	if len(b) > GateNameMaxChars {
		b = b[:GateNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < GateNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
