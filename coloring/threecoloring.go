//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package coloring

import (
	"fmt"

	"github.com/markkurossi/csimp/circuit"
	"github.com/markkurossi/csimp/logger"
)

// ThreeColor labels the sub-circuits whose output depends on the
// three parent gates. Parents are stored in ascending order.
type ThreeColor struct {
	FirstParent  circuit.ID
	SecondParent circuit.ID
	ThirdParent  circuit.ID
	Gates        []circuit.ID
}

// Parents returns the parent triple in ascending order.
func (c *ThreeColor) Parents() [3]circuit.ID {
	return [3]circuit.ID{c.FirstParent, c.SecondParent, c.ThirdParent}
}

// HasParent tests if the gate is one of the color's parents.
func (c *ThreeColor) HasParent(id circuit.ID) bool {
	return c.FirstParent == id || c.SecondParent == id || c.ThirdParent == id
}

func sortedTriple(a, b, c circuit.ID) [3]circuit.ID {
	if b < a {
		a, b = b, a
	}
	if c < b {
		b, c = c, b
	}
	if b < a {
		a, b = b, a
	}
	return [3]circuit.ID{a, b, c}
}

// ThreeColoring holds the three-color labels of one circuit,
// constructed on top of its two-coloring. Each gate carries at most
// two three-colors. The coloring is constructed once and is read-only
// afterwards.
type ThreeColoring struct {
	Two        *TwoColoring
	Colors     []ThreeColor
	GateColors [][]ColorID

	tripleToColor map[[3]circuit.ID]ColorID
	negationUsers []circuit.ID
}

// NewThreeColoring colors the circuit gates with three-colors. Gates
// are processed operands-first along the topological ordering. A gate
// can receive a three-color only when it has a two-color; the colors
// are found by matching the three-colors and two-colors of the gate's
// two-color parents, synthesizing and interning new parent triples
// when no existing color fits.
func NewThreeColoring(g circuit.Graph) (*ThreeColoring, error) {
	two, err := NewTwoColoring(g)
	if err != nil {
		return nil, err
	}
	size := g.Size()
	tc := &ThreeColoring{
		Two:           two,
		GateColors:    make([][]ColorID, size),
		tripleToColor: make(map[[3]circuit.ID]ColorID),
		negationUsers: make([]circuit.ID, size),
	}
	for idx := range tc.negationUsers {
		tc.negationUsers[idx] = circuit.None
	}

	order := circuit.TopSort(g)
	for idx := len(order) - 1; idx >= 0; idx-- {
		id := order[idx]
		in := g.OperandsOf(id)

		// Input or constant.
		if len(in) == 0 {
			continue
		}
		// Unary gates inherit every color of their operand. Only NOT
		// is expected here but BUFF and IFF inherit the same way.
		if len(in) == 1 {
			for _, cid := range tc.GateColors[in[0]] {
				tc.paint(id, cid)
			}
			if g.TypeOf(id) == circuit.NOT {
				tc.negationUsers[in[0]] = id
			}
			continue
		}
		if len(in) > 2 {
			return nil, fmt.Errorf("%w: %s", ErrFanIn, id)
		}

		// A three-color requires a two-color root.
		twoColor, ok := two.GateColor(id)
		if !ok {
			continue
		}

		child1 := two.Colors[twoColor].FirstParent
		child2 := two.Colors[twoColor].SecondParent

		firstChildColor, ok1 := two.GateColor(child1)
		secondChildColor, ok2 := two.GateColor(child2)

		// If neither child has a two-color, the gate cannot have a
		// three-color.
		if !ok1 && !ok2 {
			continue
		}

		// Scan the children's color lists for candidate patterns.
		// The iteration order is part of the contract: outer loop
		// over child1's colors, insertion order within each list.
		var commons []ColorID
		colorType13 := noColor
		colorType31 := noColor

		for _, fc := range tc.GateColors[child1] {
			for _, sc := range tc.GateColors[child2] {
				if fc == sc {
					commons = append(commons, fc)
				} else if tc.Colors[sc].HasParent(child1) {
					colorType13 = sc
				}
			}
			if tc.Colors[fc].HasParent(child2) {
				colorType31 = fc
			}
		}

		if len(commons) == 2 {
			tc.paint(id, commons[0])
			tc.paint(id, commons[1])
			continue
		}

		if len(commons) == 1 {
			tc.paint(id, commons[0])
			if colorType13 != noColor {
				tc.paint(id, colorType13)
			} else if colorType31 != noColor {
				tc.paint(id, colorType31)
			}
			continue
		}

		if colorType13 != noColor {
			tc.paint(id, colorType13)
			if ok1 {
				p1 := two.Colors[firstChildColor].FirstParent
				p2 := two.Colors[firstChildColor].SecondParent

				colorType23 := noColor
				for _, sc := range tc.GateColors[child2] {
					if tc.Colors[sc].HasParent(p1) &&
						tc.Colors[sc].HasParent(p2) {
						colorType23 = sc
						break
					}
				}
				if colorType23 != noColor {
					tc.paint(id, colorType23)
				} else {
					tc.paint(id, tc.intern(sortedTriple(p1, p2, child2)))
				}
			}
			continue
		}

		if colorType31 != noColor {
			tc.paint(id, colorType31)
			if ok2 {
				p1 := two.Colors[secondChildColor].FirstParent
				p2 := two.Colors[secondChildColor].SecondParent

				colorType32 := noColor
				for _, fc := range tc.GateColors[child1] {
					if tc.Colors[fc].HasParent(p1) &&
						tc.Colors[fc].HasParent(p2) {
						colorType32 = fc
						break
					}
				}
				if colorType32 != noColor {
					tc.paint(id, colorType32)
				} else {
					tc.paint(id, tc.intern(sortedTriple(p1, p2, child1)))
				}
			}
			continue
		}

		// Single 3-2 pattern: a color on child1 covering child2's
		// two-color parents.
		if ok2 {
			p1 := two.Colors[secondChildColor].FirstParent
			p2 := two.Colors[secondChildColor].SecondParent

			colorType32 := noColor
			for _, fc := range tc.GateColors[child1] {
				if tc.Colors[fc].HasParent(p1) &&
					tc.Colors[fc].HasParent(p2) {
					colorType32 = fc
					break
				}
			}
			if colorType32 != noColor {
				tc.paint(id, colorType32)
				continue
			}
		}

		// Single 2-3 pattern: a color on child2 covering child1's
		// two-color parents.
		if ok1 {
			p1 := two.Colors[firstChildColor].FirstParent
			p2 := two.Colors[firstChildColor].SecondParent

			colorType23 := noColor
			for _, sc := range tc.GateColors[child2] {
				if tc.Colors[sc].HasParent(p1) &&
					tc.Colors[sc].HasParent(p2) {
					colorType23 = sc
					break
				}
			}
			if colorType23 != noColor {
				tc.paint(id, colorType23)
				continue
			}
		}

		// 2-2 pattern: both children have a two-color.
		if ok1 && ok2 {
			p1 := two.Colors[firstChildColor].FirstParent
			p2 := two.Colors[firstChildColor].SecondParent
			p3 := two.Colors[secondChildColor].FirstParent
			p4 := two.Colors[secondChildColor].SecondParent

			if two.Colors[secondChildColor].HasParent(p1) {
				tc.paint(id, tc.intern(sortedTriple(p2, p3, p4)))
			} else if two.Colors[secondChildColor].HasParent(p2) {
				tc.paint(id, tc.intern(sortedTriple(p1, p3, p4)))
			} else {
				tc.paint(id, tc.intern(sortedTriple(p1, p2, child2)))
				tc.paint(id, tc.intern(sortedTriple(p3, p4, child1)))
			}
			continue
		}

		// Exactly one child has a two-color: its parents plus the
		// other child.
		var parents [3]circuit.ID
		if ok1 {
			p1 := two.Colors[firstChildColor].FirstParent
			p2 := two.Colors[firstChildColor].SecondParent
			parents = sortedTriple(p1, p2, child2)
		} else {
			p1 := two.Colors[secondChildColor].FirstParent
			p2 := two.Colors[secondChildColor].SecondParent
			parents = sortedTriple(p1, p2, child1)
		}
		tc.paint(id, tc.intern(parents))
	}

	log := logger.Logger()
	log.Debug().Int("gates", size).Int("colors", len(tc.Colors)).
		Msg("three-coloring")

	return tc, nil
}

// intern returns the color of the parent triple, creating the color
// if the triple has not been seen before.
func (tc *ThreeColoring) intern(parents [3]circuit.ID) ColorID {
	cid, ok := tc.tripleToColor[parents]
	if !ok {
		cid = ColorID(len(tc.Colors))
		tc.Colors = append(tc.Colors, ThreeColor{
			FirstParent:  parents[0],
			SecondParent: parents[1],
			ThirdParent:  parents[2],
		})
		tc.tripleToColor[parents] = cid
	}
	return cid
}

func (tc *ThreeColoring) paint(id circuit.ID, cid ColorID) {
	tc.Colors[cid].Gates = append(tc.Colors[cid].Gates, id)
	tc.GateColors[id] = append(tc.GateColors[id], cid)
}

// ColorsOf returns the colors of the gate. The result must not be
// modified.
func (tc *ThreeColoring) ColorsOf(id circuit.ID) []ColorID {
	return tc.GateColors[id]
}

// TripleColor returns the color of the parent triple. The triple does
// not have to be sorted.
func (tc *ThreeColoring) TripleColor(a, b, c circuit.ID) (ColorID, bool) {
	cid, ok := tc.tripleToColor[sortedTriple(a, b, c)]
	return cid, ok
}

// NegationUser returns the gate that directly negates the argument
// gate.
func (tc *ThreeColoring) NegationUser(id circuit.ID) (circuit.ID, bool) {
	user := tc.negationUsers[id]
	return user, user != circuit.None
}
