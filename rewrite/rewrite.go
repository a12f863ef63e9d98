//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package rewrite implements the sub-circuit substitution pass. It
// consumes the three-coloring of a circuit and the pattern database:
// for each colored cone it evaluates the cone's truth table over the
// color's three parents, looks the table up in the database, and
// splices in the stored implementation when it is smaller.
package rewrite

import (
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/markkurossi/csimp/circuit"
	"github.com/markkurossi/csimp/coloring"
	"github.com/markkurossi/csimp/logger"
	"github.com/markkurossi/csimp/pattern"
	"github.com/markkurossi/csimp/utils"
)

// Input projection masks over 8 truth-table rows, low bit = all-false
// row.
var inputMasks = [3]uint8{0xAA, 0xCC, 0xF0}

// Stats counts rewrite pass events.
type Stats struct {
	Candidates int
	Matched    int
	Replaced   int
	Saved      int
}

func (s Stats) String() string {
	return fmt.Sprintf("candidates=%d matched=%d replaced=%d saved=%d",
		s.Candidates, s.Matched, s.Replaced, s.Saved)
}

// Rewriter applies database-driven rewrites to circuits. The pattern
// databases are passed explicitly at construction.
type Rewriter struct {
	params *utils.Params
	dbs    *pattern.Set
}

// New creates a rewriter using the pattern databases.
func New(params *utils.Params, dbs *pattern.Set) *Rewriter {
	return &Rewriter{
		params: params,
		dbs:    dbs,
	}
}

// Rewrite simplifies the circuit in the basis. It returns the
// simplified circuit with dead gates pruned; the argument circuit is
// consumed.
func (rw *Rewriter) Rewrite(c *circuit.Circuit, basis circuit.Basis) (
	*circuit.Circuit, Stats, error) {

	var stats Stats

	db, err := rw.dbs.ForBasis(basis)
	if err != nil {
		return nil, stats, err
	}
	col, err := coloring.NewThreeColoring(c)
	if err != nil {
		return nil, stats, err
	}

	start := time.Now()
	replaced := bitset.New(uint(c.Size()))
	numGates := c.Size()

	for idx := range col.Colors {
		color := &col.Colors[idx]
		parents := color.Parents()

		for _, id := range color.Gates {
			if replaced.Test(uint(id)) {
				continue
			}
			tt, cone, ok := rw.evalCone(c, parents, id)
			if !ok {
				continue
			}
			stats.Candidates++

			// The cone table is packed over three variables, so
			// only three-input single-output records are sound
			// matches.
			index, ok := db.Lookup([]int64{int64(tt)})
			if !ok || db.Inputs[index] != 3 || len(db.Outputs[index]) != 1 {
				continue
			}
			stats.Matched++

			cost := coneOperators(c, cone)
			if db.OperatorCount[index] >= cost {
				continue
			}
			rw.splice(c, db, index, parents, id)
			replaced.Set(uint(id))
			stats.Replaced++
			stats.Saved += cost - db.OperatorCount[index]
		}
	}

	elapsed := time.Since(start)
	if rw.params.Diagnostics {
		fmt.Printf(" - Rewrite:             %12s: %d/%d (%.2f%%)\n",
			elapsed, stats.Replaced, numGates,
			float64(stats.Replaced)/float64(numGates)*100)
	}
	log := logger.Logger()
	log.Debug().Stringer("basis", basis).Stringer("stats", stats).
		Dur("elapsed", elapsed).Msg("rewrite")

	return c.Prune(), stats, nil
}

// evalCone computes the truth table of the gate over the three
// parents, together with the cone of gates between the parents and
// the gate. The evaluation fails when the gate depends on anything
// outside the parents or the cone grows past the configured bound.
func (rw *Rewriter) evalCone(c *circuit.Circuit, parents [3]circuit.ID,
	target circuit.ID) (uint8, []circuit.ID, bool) {

	tables := make(map[circuit.ID]uint8)
	for idx, parent := range parents {
		tables[parent] = inputMasks[idx]
	}
	var cone []circuit.ID

	var eval func(id circuit.ID) (uint8, bool)
	eval = func(id circuit.ID) (uint8, bool) {
		if tt, ok := tables[id]; ok {
			return tt, true
		}
		if len(cone) >= rw.params.MaxConeGates {
			return 0, false
		}
		gate := c.Gates[id]

		var in [2]uint8
		if len(gate.In) > 2 {
			return 0, false
		}
		for idx, op := range gate.In {
			tt, ok := eval(op)
			if !ok {
				return 0, false
			}
			in[idx] = tt
		}

		var tt uint8
		switch gate.Type {
		case circuit.NOT:
			tt = ^in[0]
		case circuit.BUFF, circuit.IFF:
			tt = in[0]
		case circuit.AND:
			tt = in[0] & in[1]
		case circuit.NAND:
			tt = ^(in[0] & in[1])
		case circuit.OR:
			tt = in[0] | in[1]
		case circuit.NOR:
			tt = ^(in[0] | in[1])
		case circuit.XOR:
			tt = in[0] ^ in[1]
		case circuit.XNOR:
			tt = ^(in[0] ^ in[1])
		case circuit.ConstFalse:
			tt = 0x00
		case circuit.ConstTrue:
			tt = 0xFF
		default:
			// INPUT or MUX inside a cone: not expressible over the
			// parents.
			return 0, false
		}
		tables[id] = tt
		cone = append(cone, id)
		return tt, true
	}

	tt, ok := eval(target)
	return tt, cone, ok
}

// coneOperators counts the binary gates of the cone.
func coneOperators(c *circuit.Circuit, cone []circuit.ID) int {
	var count int
	for _, id := range cone {
		if len(c.Gates[id].In) == 2 {
			count++
		}
	}
	return count
}

// splice rebuilds the target gate from the database sub-circuit,
// mapping the sub-circuit inputs to the color parents. Internal gates
// are appended to the circuit; the record's output gate definition
// overwrites the target in place so that all users see the new cone.
func (rw *Rewriter) splice(c *circuit.Circuit, db *pattern.DB, index int,
	parents [3]circuit.ID, target circuit.ID) {

	numInputs := db.Inputs[index]
	out := db.Outputs[index][0]

	ids := make(map[circuit.ID]circuit.ID)
	for idx := 0; idx < numInputs && idx < len(parents); idx++ {
		ids[circuit.ID(idx)] = parents[idx]
	}

	if int(out) < numInputs {
		// The output is a sub-circuit input: the target reduces to a
		// pass-through of the parent.
		c.SetGate(target, circuit.BUFF, ids[out])
		return
	}

	for idx, typ := range db.Types[index] {
		id := circuit.ID(numInputs + idx)
		in := make([]circuit.ID, len(db.Operands[index][idx]))
		for opIdx, op := range db.Operands[index][idx] {
			in[opIdx] = ids[op]
		}
		if id == out {
			c.SetGate(target, typ, in...)
			ids[id] = target
		} else {
			ids[id] = c.AddGate(typ, in...)
		}
	}
}
