//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// TopSort returns the circuit gates in reverse dependency order:
// every gate appears before all of its operands. Gates unreachable
// from the outputs are omitted. The order is deterministic: root and
// operand ties are broken by ascending gate ID.
func TopSort(g Graph) []ID {
	visited := bitset.New(uint(g.Size()))
	order := make([]ID, 0, g.Size())

	roots := append([]ID(nil), g.OutputGates()...)
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	type frame struct {
		id   ID
		next int
		in   []ID
	}
	var stack []frame

	push := func(id ID) {
		visited.Set(uint(id))
		in := append([]ID(nil), g.OperandsOf(id)...)
		sort.Slice(in, func(i, j int) bool { return in[i] < in[j] })
		stack = append(stack, frame{id: id, in: in})
	}

	for _, root := range roots {
		if visited.Test(uint(root)) {
			continue
		}
		push(root)
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(f.in) {
				in := f.in[f.next]
				f.next++
				if !visited.Test(uint(in)) {
					push(in)
				}
				continue
			}
			order = append(order, f.id)
			stack = stack[:len(stack)-1]
		}
	}

	// Emitted in post-order; reverse for users-first.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}
