package bridge

import (
	"ir2i2c/internal/ir"
	"ir2i2c/types"
)

// Decode is the decoder collaborator's output.
type Decode = ir.Decode

// State is the register protocol state shared by the bus handler and the
// decode poller. Zero value is the boot state.
type State struct {
	Register   types.Register // last register byte written by the master
	Option     byte           // last option byte, 0 when absent
	IntEnabled bool
	IntSent    bool
}

// counters are mutated under the bridge mask from both contexts.
type counters struct {
	pushed     uint32
	overflows  uint32
	repeats    uint32
	pulses     uint32
	reads      uint32
	emptyReads uint32
	misuse     uint32
}
