//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package coloring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markkurossi/csimp/circuit"
)

// Trivial AND: 2=AND(0,1).
func TestTwoColoringTrivialAnd(t *testing.T) {
	c := circuit.New()
	i0 := c.AddGate(circuit.INPUT)
	i1 := c.AddGate(circuit.INPUT)
	and := c.AddGate(circuit.AND, i0, i1)
	c.AddOutput(and)

	tc, err := NewTwoColoring(c)
	require.NoError(t, err)

	require.Len(t, tc.Colors, 1)
	assert.Equal(t, [2]circuit.ID{0, 1}, tc.Colors[0].Parents())
	assert.Equal(t, []circuit.ID{and}, tc.Colors[0].Gates)

	cid, ok := tc.GateColor(and)
	require.True(t, ok)
	assert.Equal(t, ColorID(0), cid)

	_, ok = tc.GateColor(i0)
	assert.False(t, ok)
}

// Shared pair: 2=AND(0,1) and 3=OR(0,1) share one color.
func TestTwoColoringSharedPair(t *testing.T) {
	c := circuit.New()
	i0 := c.AddGate(circuit.INPUT)
	i1 := c.AddGate(circuit.INPUT)
	and := c.AddGate(circuit.AND, i0, i1)
	or := c.AddGate(circuit.OR, i0, i1)
	c.AddOutput(and)
	c.AddOutput(or)

	tc, err := NewTwoColoring(c)
	require.NoError(t, err)

	require.Len(t, tc.Colors, 1)
	andColor, ok := tc.GateColor(and)
	require.True(t, ok)
	orColor, ok := tc.GateColor(or)
	require.True(t, ok)
	assert.Equal(t, andColor, orColor)
	assert.Equal(t, []circuit.ID{and, or}, tc.Colors[0].Gates)
}

// Pass-through NOT: 3=NOT(2) inherits gate 2's color.
func TestTwoColoringUnaryInherit(t *testing.T) {
	c := circuit.New()
	i0 := c.AddGate(circuit.INPUT)
	i1 := c.AddGate(circuit.INPUT)
	and := c.AddGate(circuit.AND, i0, i1)
	not := c.AddGate(circuit.NOT, and)
	c.AddOutput(not)

	tc, err := NewTwoColoring(c)
	require.NoError(t, err)

	andColor, ok := tc.GateColor(and)
	require.True(t, ok)
	notColor, ok := tc.GateColor(not)
	require.True(t, ok)
	assert.Equal(t, andColor, notColor)
}

// Every binary gate has exactly one color whose parents are its
// sorted operands; identical pairs share the color ID.
func TestTwoColoringInvariants(t *testing.T) {
	c := circuit.New()
	i0 := c.AddGate(circuit.INPUT)
	i1 := c.AddGate(circuit.INPUT)
	i2 := c.AddGate(circuit.INPUT)
	g3 := c.AddGate(circuit.AND, i1, i0) // descending operands
	g4 := c.AddGate(circuit.OR, i0, i1)
	g5 := c.AddGate(circuit.XOR, g3, g4)
	g6 := c.AddGate(circuit.AND, i2, g5)
	c.AddOutput(g6)

	tc, err := NewTwoColoring(c)
	require.NoError(t, err)

	for id := circuit.ID(0); id < circuit.ID(c.Size()); id++ {
		in := c.OperandsOf(id)
		if len(in) != 2 {
			continue
		}
		cid, ok := tc.GateColor(id)
		require.True(t, ok, "binary gate %s has no color", id)

		a, b := in[0], in[1]
		if b < a {
			a, b = b, a
		}
		assert.Equal(t, [2]circuit.ID{a, b}, tc.Colors[cid].Parents())
	}

	// Gates 3 and 4 operate on the same pair.
	c3, _ := tc.GateColor(g3)
	c4, _ := tc.GateColor(g4)
	assert.Equal(t, c3, c4)

	// Color IDs are dense from zero.
	assert.Len(t, tc.Colors, 3)
	cid, ok := tc.PairColor(g4, g3)
	require.True(t, ok)
	assert.Equal(t, tc.Colors[cid].Parents(), [2]circuit.ID{g3, g4})
}

func TestTwoColoringFanInError(t *testing.T) {
	c := circuit.New()
	i0 := c.AddGate(circuit.INPUT)
	i1 := c.AddGate(circuit.INPUT)
	i2 := c.AddGate(circuit.INPUT)
	c.AddOutput(c.AddGate(circuit.MUX, i0, i1, i2))

	_, err := NewTwoColoring(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFanIn)
}
