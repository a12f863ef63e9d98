//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package pattern implements the database of pre-computed optimal
// sub-circuits that drives the rewriting stage. The database is a
// whitespace-delimited text stream of concatenated records, each
// describing one sub-circuit: input count, output count, the output
// truth tables as decimal integers, the output gate IDs, and the
// internal gates with their types and operands.
package pattern

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/markkurossi/csimp/circuit"
	"github.com/markkurossi/csimp/logger"
)

// DB holds the pattern database for one basis. All slices are
// indexed by sub-circuit index in file order.
type DB struct {
	Basis circuit.Basis

	// Patterns are the output truth-table vectors, in file order.
	Patterns [][]int64

	// Inputs is the number of sub-circuit inputs; gates 0..Inputs-1
	// are the inputs.
	Inputs []int

	// Outputs are the output gate IDs inside the sub-circuit.
	Outputs [][]circuit.ID

	// Operands and Types describe the internal gates from index
	// Inputs upward.
	Operands [][][]circuit.ID
	Types    [][]circuit.GateType

	// OperatorCount counts gates other than NOT, used as the size
	// tie-breaker by the rewriter.
	OperatorCount []int

	patternIndex map[string]int
}

// Load reads the pattern database from the file for the basis.
func Load(path string, basis circuit.Basis) (*DB, error) {
	if basis != circuit.AIG && basis != circuit.BENCH {
		return nil, fmt.Errorf("incorrect basis '%v': choose one of [AIG, BENCH]",
			basis)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no sub-circuit database at %s", path)
		}
		return nil, err
	}
	defer f.Close()

	db, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", path, err)
	}
	db.Basis = basis

	log := logger.Logger()
	log.Debug().Str("path", path).Stringer("basis", basis).
		Int("subcircuits", db.Len()).Msg("pattern database loaded")

	return db, nil
}

// Read reads the pattern database from the input. Record boundaries
// are implicit: the input-count token of the next record follows the
// last gate of the previous one, and a clean end of input terminates
// the database.
func Read(in io.Reader) (*DB, error) {
	db := &DB{
		patternIndex: make(map[string]int),
	}

	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	nextInt := func() (int64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		return strconv.ParseInt(scanner.Text(), 10, 64)
	}

	for scanner.Scan() {
		index := db.Len()

		numInputs, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("record %d: %s", index, err)
		}
		numOutputs, err := nextInt()
		if err != nil {
			return nil, fmt.Errorf("record %d: %s", index, err)
		}

		patterns := make([]int64, numOutputs)
		for i := range patterns {
			patterns[i], err = nextInt()
			if err != nil {
				return nil, fmt.Errorf("record %d: %s", index, err)
			}
		}
		db.patternIndex[patternKey(patterns)] = index

		// The maximum gate ID seen so far determines where the
		// record ends.
		outputs := make([]circuit.ID, numOutputs)
		var maxIndex int64
		for i := range outputs {
			id, err := nextInt()
			if err != nil {
				return nil, fmt.Errorf("record %d: %s", index, err)
			}
			outputs[i] = circuit.ID(id)
			if id > maxIndex {
				maxIndex = id
			}
		}

		var operands [][]circuit.ID
		var types []circuit.GateType
		var operators int

		for i := numInputs; i <= maxIndex; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("record %d: %s",
					index, io.ErrUnexpectedEOF)
			}
			typ, err := circuit.ParseGateType(scanner.Text())
			if err != nil {
				return nil, fmt.Errorf("record %d: %s", index, err)
			}
			types = append(types, typ)

			op1, err := nextInt()
			if err != nil {
				return nil, fmt.Errorf("record %d: %s", index, err)
			}
			in := []circuit.ID{circuit.ID(op1)}
			if op1 > maxIndex {
				maxIndex = op1
			}

			// NOT is the only unary type in the database.
			if typ != circuit.NOT {
				op2, err := nextInt()
				if err != nil {
					return nil, fmt.Errorf("record %d: %s", index, err)
				}
				in = append(in, circuit.ID(op2))
				if op2 > maxIndex {
					maxIndex = op2
				}
				operators++
			}
			operands = append(operands, in)
		}

		db.Patterns = append(db.Patterns, patterns)
		db.Inputs = append(db.Inputs, int(numInputs))
		db.Outputs = append(db.Outputs, outputs)
		db.Operands = append(db.Operands, operands)
		db.Types = append(db.Types, types)
		db.OperatorCount = append(db.OperatorCount, operators)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return db, nil
}

// Len returns the number of sub-circuits in the database.
func (db *DB) Len() int {
	return len(db.Patterns)
}

// Lookup returns the sub-circuit index of the output-pattern vector.
func (db *DB) Lookup(patterns []int64) (int, bool) {
	index, ok := db.patternIndex[patternKey(patterns)]
	return index, ok
}

// WriteTo writes the database in the file format Read consumes.
func (db *DB) WriteTo(out io.Writer) error {
	w := bufio.NewWriter(out)
	for index := 0; index < db.Len(); index++ {
		fmt.Fprintf(w, "%d %d", db.Inputs[index], len(db.Patterns[index]))
		for _, tt := range db.Patterns[index] {
			fmt.Fprintf(w, " %d", tt)
		}
		for _, id := range db.Outputs[index] {
			fmt.Fprintf(w, " %d", id)
		}
		fmt.Fprintln(w)
		for gate, typ := range db.Types[index] {
			fmt.Fprintf(w, "  %s", typ)
			for _, op := range db.Operands[index][gate] {
				fmt.Fprintf(w, " %d", op)
			}
			fmt.Fprintln(w)
		}
	}
	return w.Flush()
}

func patternKey(patterns []int64) string {
	parts := make([]string, len(patterns))
	for idx, tt := range patterns {
		parts[idx] = strconv.FormatInt(tt, 10)
	}
	return strings.Join(parts, ",")
}
