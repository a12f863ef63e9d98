//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package pattern

import (
	"errors"
	"fmt"

	"github.com/markkurossi/csimp/circuit"
)

// ErrNoDatabase is returned when a database is requested for a basis
// it has not been loaded for.
var ErrNoDatabase = errors.New("database is not available")

// Set holds the loaded per-basis databases. It is populated once at
// program start and passed explicitly to the consumers; it must not
// be mutated afterwards.
type Set struct {
	AIG   *DB
	BENCH *DB
}

// LoadSet loads the databases whose paths are non-empty.
func LoadSet(aigPath, benchPath string) (*Set, error) {
	set := new(Set)
	if len(aigPath) > 0 {
		db, err := Load(aigPath, circuit.AIG)
		if err != nil {
			return nil, err
		}
		set.AIG = db
	}
	if len(benchPath) > 0 {
		db, err := Load(benchPath, circuit.BENCH)
		if err != nil {
			return nil, err
		}
		set.BENCH = db
	}
	return set, nil
}

// ForBasis returns the database of the basis.
func (s *Set) ForBasis(basis circuit.Basis) (*DB, error) {
	var db *DB
	switch basis {
	case circuit.AIG:
		db = s.AIG
	case circuit.BENCH:
		db = s.BENCH
	default:
		return nil, fmt.Errorf("unknown basis '%v'", basis)
	}
	if db == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoDatabase, basis)
	}
	return db, nil
}
