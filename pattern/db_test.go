//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package pattern

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markkurossi/csimp/circuit"
)

var dbData = "2 1 6 2  AND 0 1\n3 1 8 4  AND 0 1 AND 2 3\n"

func TestRead(t *testing.T) {
	db, err := Read(strings.NewReader(dbData))
	require.NoError(t, err)
	require.Equal(t, 2, db.Len())

	// Record 0: two inputs, pattern 6, one AND gate.
	assert.Equal(t, 2, db.Inputs[0])
	assert.Equal(t, []int64{6}, db.Patterns[0])
	assert.Equal(t, []circuit.ID{2}, db.Outputs[0])
	require.Len(t, db.Types[0], 1)
	assert.Equal(t, circuit.AND, db.Types[0][0])
	assert.Equal(t, []circuit.ID{0, 1}, db.Operands[0][0])
	assert.Equal(t, 1, db.OperatorCount[0])

	// Record 1: three inputs, pattern 8, two AND gates.
	assert.Equal(t, 3, db.Inputs[1])
	assert.Equal(t, []int64{8}, db.Patterns[1])
	assert.Equal(t, []circuit.ID{4}, db.Outputs[1])
	require.Len(t, db.Types[1], 2)
	assert.Equal(t, circuit.AND, db.Types[1][0])
	assert.Equal(t, circuit.AND, db.Types[1][1])
	assert.Equal(t, []circuit.ID{0, 1}, db.Operands[1][0])
	assert.Equal(t, []circuit.ID{2, 3}, db.Operands[1][1])
	assert.Equal(t, 2, db.OperatorCount[1])

	index, ok := db.Lookup([]int64{6})
	require.True(t, ok)
	assert.Equal(t, 0, index)

	index, ok = db.Lookup([]int64{8})
	require.True(t, ok)
	assert.Equal(t, 1, index)

	_, ok = db.Lookup([]int64{42})
	assert.False(t, ok)
}

func TestReadNot(t *testing.T) {
	// NOT is the only unary type: one operand, not counted as an
	// operator.
	db, err := Read(strings.NewReader("1 1 1 1 NOT 0\n"))
	require.NoError(t, err)
	require.Equal(t, 1, db.Len())
	assert.Equal(t, []circuit.GateType{circuit.NOT}, db.Types[0])
	assert.Equal(t, []circuit.ID{0}, db.Operands[0][0])
	assert.Equal(t, 0, db.OperatorCount[0])
}

func TestReadOperandExtendsRecord(t *testing.T) {
	// Gate 2's operand 3 extends the record: gate 3 must follow even
	// though the output is gate 2.
	db, err := Read(strings.NewReader("2 1 9 2 XNOR 1 3 NOT 0\n"))
	require.NoError(t, err)
	require.Equal(t, 1, db.Len())
	require.Len(t, db.Types[0], 2)
	assert.Equal(t, circuit.XNOR, db.Types[0][0])
	assert.Equal(t, circuit.NOT, db.Types[0][1])
	assert.Equal(t, 1, db.OperatorCount[0])
}

func TestReadDuplicateKeyOverwrites(t *testing.T) {
	db, err := Read(strings.NewReader("2 1 6 2 AND 0 1\n2 1 6 2 OR 0 1\n"))
	require.NoError(t, err)
	require.Equal(t, 2, db.Len())

	index, ok := db.Lookup([]int64{6})
	require.True(t, ok)
	assert.Equal(t, 1, index)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("2 1 6"))
	assert.Error(t, err, "truncated record")

	_, err = Read(strings.NewReader("2 1 6 2 FROB 0 1\n"))
	assert.Error(t, err, "unknown gate type")

	_, err = Read(strings.NewReader("x 1 6 2 AND 0 1\n"))
	assert.Error(t, err, "bad input count")
}

func TestRoundTrip(t *testing.T) {
	db, err := Read(strings.NewReader(dbData))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, db.WriteTo(&sb))

	db2, err := Read(strings.NewReader(sb.String()))
	require.NoError(t, err)

	if diff := cmp.Diff(db, db2, cmp.AllowUnexported(DB{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.txt")
	require.NoError(t, os.WriteFile(path, []byte(dbData), 0644))

	db, err := Load(path, circuit.AIG)
	require.NoError(t, err)
	assert.Equal(t, circuit.AIG, db.Basis)
	assert.Equal(t, 2, db.Len())
}

func TestLoadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.txt")
	require.NoError(t, os.WriteFile(path, []byte(dbData), 0644))

	_, err := Load(path, circuit.Basis(42))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect basis")

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"), circuit.BENCH)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sub-circuit database")
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.txt")
	require.NoError(t, os.WriteFile(path, []byte(dbData), 0644))

	set, err := LoadSet(path, "")
	require.NoError(t, err)

	db, err := set.ForBasis(circuit.AIG)
	require.NoError(t, err)
	assert.Equal(t, 2, db.Len())

	_, err = set.ForBasis(circuit.BENCH)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.Contains(t, err.Error(), "BENCH")
}
