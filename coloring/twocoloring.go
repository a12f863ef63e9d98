//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package coloring annotates circuit gates with equivalence labels
// identifying two- and three-input sub-circuits whose outputs depend
// on a common set of ancestor gates. The rewriting stage matches the
// labeled sub-circuits against a database of optimal implementations.
package coloring

import (
	"errors"
	"fmt"

	"github.com/markkurossi/csimp/circuit"
	"github.com/markkurossi/csimp/logger"
)

// ColorID identifies a color within one coloring. IDs are dense,
// starting from zero, and stable within a single pass only.
type ColorID uint32

// noColor is the storage-level absent color.
const noColor = ^ColorID(0)

// ErrFanIn is returned when a coloring pass meets a gate with more
// than two operands.
var ErrFanIn = errors.New("gate has more than two operands")

// TwoColor labels the sub-circuits whose output depends on the two
// parent gates. Parents are stored in ascending order.
type TwoColor struct {
	FirstParent  circuit.ID
	SecondParent circuit.ID
	Gates        []circuit.ID
}

// Parents returns the parent pair in ascending order.
func (c *TwoColor) Parents() [2]circuit.ID {
	return [2]circuit.ID{c.FirstParent, c.SecondParent}
}

// HasParent tests if the gate is one of the color's parents.
func (c *TwoColor) HasParent(id circuit.ID) bool {
	return c.FirstParent == id || c.SecondParent == id
}

// TwoColoring holds the two-color labels of one circuit. The coloring
// is constructed once and is read-only afterwards.
type TwoColoring struct {
	Colors []TwoColor

	gateColor   []ColorID
	pairToColor map[[2]circuit.ID]ColorID
}

// NewTwoColoring colors the circuit gates with two-colors. Gates are
// processed operands-first along the topological ordering: a binary
// gate is painted with the color of its sorted operand pair, creating
// the color on first use; a unary gate inherits its operand's color;
// inputs and constants stay uncolored.
func NewTwoColoring(g circuit.Graph) (*TwoColoring, error) {
	tc := &TwoColoring{
		gateColor:   make([]ColorID, g.Size()),
		pairToColor: make(map[[2]circuit.ID]ColorID),
	}
	for idx := range tc.gateColor {
		tc.gateColor[idx] = noColor
	}

	order := circuit.TopSort(g)
	for idx := len(order) - 1; idx >= 0; idx-- {
		id := order[idx]
		in := g.OperandsOf(id)

		switch len(in) {
		case 0:

		case 1:
			// Inherits through any unary gate, not only NOT.
			if cid := tc.gateColor[in[0]]; cid != noColor {
				tc.paint(id, cid)
			}

		case 2:
			a, b := in[0], in[1]
			if b < a {
				a, b = b, a
			}
			key := [2]circuit.ID{a, b}
			cid, ok := tc.pairToColor[key]
			if !ok {
				cid = ColorID(len(tc.Colors))
				tc.Colors = append(tc.Colors, TwoColor{
					FirstParent:  a,
					SecondParent: b,
				})
				tc.pairToColor[key] = cid
			}
			tc.paint(id, cid)

		default:
			return nil, fmt.Errorf("%w: %s", ErrFanIn, id)
		}
	}

	log := logger.Logger()
	log.Debug().Int("gates", g.Size()).Int("colors", len(tc.Colors)).
		Msg("two-coloring")

	return tc, nil
}

func (tc *TwoColoring) paint(id circuit.ID, cid ColorID) {
	tc.Colors[cid].Gates = append(tc.Colors[cid].Gates, id)
	tc.gateColor[id] = cid
}

// GateColor returns the color of the gate.
func (tc *TwoColoring) GateColor(id circuit.ID) (ColorID, bool) {
	cid := tc.gateColor[id]
	return cid, cid != noColor
}

// PairColor returns the color of the parent pair. The pair does not
// have to be sorted.
func (tc *TwoColoring) PairColor(a, b circuit.ID) (ColorID, bool) {
	if b < a {
		a, b = b, a
	}
	cid, ok := tc.pairToColor[[2]circuit.ID{a, b}]
	return cid, ok
}
