//
// bench.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	reBenchIO  = regexp.MustCompilePOSIX(`^(INPUT|OUTPUT)[[:space:]]*\(([^()]+)\)$`)
	reBenchDef = regexp.MustCompilePOSIX(`^([^=[:space:]]+)[[:space:]]*=[[:space:]]*([A-Za-z_]+)[[:space:]]*\(([^()]*)\)$`)
)

type benchDef struct {
	name string
	typ  GateType
	in   []string
	line int
}

// ParseBench parses a circuit in the BENCH format: `INPUT(n)`,
// `OUTPUT(n)`, and `n = TYPE(a, b)` lines, `#` starting a comment.
// Signal names are mapped to dense gate IDs in definition order;
// operands may reference signals defined later in the file.
func ParseBench(in io.Reader) (*Circuit, error) {
	var defs []benchDef
	var outputs []string
	var outputLines []int

	scanner := bufio.NewScanner(in)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if idx := strings.IndexRune(text, '#'); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		if m := reBenchIO.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[2])
			if m[1] == "INPUT" {
				defs = append(defs, benchDef{
					name: name,
					typ:  INPUT,
					line: line,
				})
			} else {
				outputs = append(outputs, name)
				outputLines = append(outputLines, line)
			}
			continue
		}

		m := reBenchDef.FindStringSubmatch(text)
		if m == nil {
			return nil, fmt.Errorf("%d: invalid line '%s'", line, text)
		}
		typ, err := ParseGateType(m[2])
		if err != nil {
			return nil, fmt.Errorf("%d: %s", line, err)
		}
		var operands []string
		for _, arg := range strings.Split(m[3], ",") {
			arg = strings.TrimSpace(arg)
			if len(arg) > 0 {
				operands = append(operands, arg)
			}
		}
		if len(operands) != typ.Arity() {
			return nil, fmt.Errorf("%d: %s takes %d operands, got %d",
				line, typ, typ.Arity(), len(operands))
		}
		defs = append(defs, benchDef{
			name: strings.TrimSpace(m[1]),
			typ:  typ,
			in:   operands,
			line: line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	ids := make(map[string]ID)
	for _, def := range defs {
		if _, ok := ids[def.name]; ok {
			return nil, fmt.Errorf("%d: signal '%s' defined twice",
				def.line, def.name)
		}
		ids[def.name] = ID(len(ids))
	}

	c := New()
	for _, def := range defs {
		in := make([]ID, len(def.in))
		for idx, name := range def.in {
			id, ok := ids[name]
			if !ok {
				return nil, fmt.Errorf("%d: unknown signal '%s'",
					def.line, name)
			}
			in[idx] = id
		}
		c.AddGate(def.typ, in...)
	}
	for idx, name := range outputs {
		id, ok := ids[name]
		if !ok {
			return nil, fmt.Errorf("%d: unknown output signal '%s'",
				outputLines[idx], name)
		}
		c.AddOutput(id)
	}
	return c, nil
}

// WriteBench writes the circuit in the BENCH format. Signals are
// named gN after their gate IDs.
func (c *Circuit) WriteBench(out io.Writer) error {
	w := bufio.NewWriter(out)
	for _, id := range c.Inputs {
		fmt.Fprintf(w, "INPUT(%s)\n", id)
	}
	for _, id := range c.Outputs {
		fmt.Fprintf(w, "OUTPUT(%s)\n", id)
	}
	for id, gate := range c.Gates {
		if gate.Type == INPUT {
			continue
		}
		parts := make([]string, len(gate.In))
		for idx, in := range gate.In {
			parts[idx] = in.String()
		}
		fmt.Fprintf(w, "%s = %s(%s)\n",
			ID(id), gate.Type, strings.Join(parts, ", "))
	}
	return w.Flush()
}
