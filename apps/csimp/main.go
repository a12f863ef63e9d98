//
// main.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/markkurossi/csimp/circuit"
	"github.com/markkurossi/csimp/logger"
	"github.com/markkurossi/csimp/pattern"
	"github.com/markkurossi/csimp/rewrite"
	"github.com/markkurossi/csimp/utils"
	"github.com/rs/zerolog"
)

func main() {
	basisName := flag.String("basis", "BENCH", "Circuit basis (AIG, BENCH)")
	aigDB := flag.String("aig-db", "", "AIG sub-circuit database file")
	benchDB := flag.String("bench-db", "", "BENCH sub-circuit database file")
	output := flag.String("o", "", "Output circuit file")
	dotOut := flag.String("dot", "", "Graphviz dot output file")
	fVerbose := flag.Bool("v", false, "Verbose output")
	fDiag := flag.Bool("d", false, "Diagnostics output")
	flag.Parse()

	params := utils.NewParams()
	params.Verbose = *fVerbose
	params.Diagnostics = *fDiag
	params.AigDB = *aigDB
	params.BenchDB = *benchDB

	if params.Verbose {
		logger.Set(logger.Logger().Level(zerolog.DebugLevel))
	}

	basis, err := circuit.ParseBasis(*basisName)
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}
	if len(flag.Args()) == 0 {
		fmt.Printf("No input files\n")
		os.Exit(1)
	}

	dbs, err := pattern.LoadSet(params.AigDB, params.BenchDB)
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}

	for _, arg := range flag.Args() {
		if err := processFile(arg, basis, params, dbs, *output, *dotOut); err != nil {
			fmt.Printf("%s: %s\n", arg, err)
			os.Exit(1)
		}
	}
}

func processFile(path string, basis circuit.Basis, params *utils.Params,
	dbs *pattern.Set, output, dotOut string) error {

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	c, err := circuit.ParseBench(f)
	f.Close()
	if err != nil {
		return err
	}
	if err := c.CheckBasis(basis); err != nil {
		return err
	}
	fmt.Printf("circuit: %v\n", c)

	timing := circuit.NewTiming()
	timing.Sample("Parse", []string{fmt.Sprintf("%d", c.Size())})

	simplified, stats, err := rewrite.New(params, dbs).Rewrite(c, basis)
	if err != nil {
		if !errors.Is(err, pattern.ErrNoDatabase) {
			return err
		}
		// No database for the basis: nothing to rewrite with.
		fmt.Printf("no %s database loaded, skipping rewrite\n", basis)
		simplified = c
	} else {
		timing.Sample("Rewrite", []string{fmt.Sprintf("%d", simplified.Size())})
		fmt.Printf("rewrite: %v\n", stats)
		fmt.Printf("simplified: %v\n", simplified)
	}

	if params.Diagnostics {
		timing.Print(os.Stdout)
	}

	if len(output) > 0 {
		out, err := os.Create(output)
		if err != nil {
			return err
		}
		err = simplified.WriteBench(out)
		out.Close()
		if err != nil {
			return err
		}
	}
	if len(dotOut) > 0 {
		out, err := os.Create(dotOut)
		if err != nil {
			return err
		}
		simplified.Dot(out)
		out.Close()
	}
	return nil
}
