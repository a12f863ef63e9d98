//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"github.com/bits-and-blooms/bitset"
)

// Prune returns a copy of the circuit with all gates unreachable from
// the outputs removed. Input gates are always kept so that the
// circuit interface stays stable. Surviving gates keep their relative
// order and get dense new IDs.
func (c *Circuit) Prune() *Circuit {
	keep := bitset.New(uint(len(c.Gates)))
	for _, id := range TopSort(c) {
		keep.Set(uint(id))
	}
	for _, id := range c.Inputs {
		keep.Set(uint(id))
	}

	// Operands may have higher IDs than their users so the new IDs
	// are assigned before the operand lists are rewritten.
	remap := make([]ID, len(c.Gates))
	var next ID
	for id := range c.Gates {
		if keep.Test(uint(id)) {
			remap[id] = next
			next++
		} else {
			remap[id] = None
		}
	}

	nc := New()
	for id, gate := range c.Gates {
		if !keep.Test(uint(id)) {
			continue
		}
		in := make([]ID, len(gate.In))
		for idx, op := range gate.In {
			in[idx] = remap[op]
		}
		nc.AddGate(gate.Type, in...)
	}
	for _, id := range c.Outputs {
		nc.AddOutput(remap[id])
	}
	return nc
}
