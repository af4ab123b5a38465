// Package dsl turns BeanScript source text into the instruction graph the
// runtime executes. Parse reads the line grammar (kind, id, with-clause)
// into a sequence of Lines; Resolve then builds the instruction table,
// wires indentation-based nesting into parent/child relationships, and
// collects the top-level execution list and the set of top-level
// schedulers the runtime ticks every loop iteration.
package dsl

import (
	"fmt"

	"github.com/beanscript-lang/beanscript/internal/instr"
)

// ParseError reports a fatal, line-numbered parse or semantic failure.
// cmd/beanscript treats any ParseError as exit code 1.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Line is one tokenized source line, ready for nesting resolution. Inst's
// ID is empty, with Ref holding the id-position token, whenever the parser
// could not yet tell whether that token names an existing instruction (a
// reference, resolved into an alias) or start/stop's mandatory target;
// Resolve settles both cases once it has seen enough of the table.
type Line struct {
	Indent int
	Inst   *instr.Instruction
}

// Result is everything the runtime needs after resolving a script.
type Result struct {
	Table *instr.Table
	// Schedulers holds the top-level Waitlist, Routine, and Random
	// instructions, in source order. The runtime ticks each of these every
	// loop iteration regardless of whether anything else references them.
	Schedulers []*instr.Instruction
}

// Resolve builds the instruction table and nesting graph from a sequence
// of already-tokenized lines, in the order they appeared in the source
// file.
func Resolve(lines []Line) (*Result, error) {
	table := instr.NewTable()
	aliases := instr.NewAliasGenerator()

	var seen []placedLine

	var schedulers []*instr.Instruction

	for _, ln := range lines {
		inst := ln.Inst

		if inst.ID == "" && inst.Kind.CanDefineInplace() && inst.Ref != "" {
			if _, exists := table.Get(inst.Ref); !exists {
				// Nothing by this name exists yet: the id-position token was
				// not a reference after all, but this instruction's own id
				// (e.g. "press p1 with button a").
				inst.ID = inst.Ref
				inst.Ref = ""
			}
		}

		if inst.ID == "" {
			switch {
			case inst.Kind.CanDefineInplace(), inst.Kind == instr.Start, inst.Kind == instr.Stop:
				inst.ID = aliases.Generate(inst.Ref)
			default:
				return nil, &ParseError{Line: inst.Line, Message: fmt.Sprintf("%s instruction requires an explicit id", inst.Kind)}
			}
		}

		if err := table.Insert(inst); err != nil {
			return nil, err
		}

		parentID, hasParent := findParent(seen, ln.Indent)
		if ln.Indent > 0 {
			if !hasParent {
				return nil, &ParseError{Line: inst.Line, Message: "indented line has no enclosing instruction"}
			}
			parent := table.MustGet(parentID)
			parent.AddChild(inst.ID)
		} else {
			if inst.Kind.IsTransaction() {
				table.AppendExecution(inst.ID)
			}
			if inst.Kind.IsScheduler() {
				schedulers = append(schedulers, inst)
			}
		}

		seen = append(seen, placedLine{indent: ln.Indent, id: inst.ID})
	}

	return &Result{Table: table, Schedulers: schedulers}, nil
}

type placedLine struct {
	indent int
	id     string
}

// findParent returns the id of the nearest preceding line whose indent is
// strictly less than indent, scanning backward. This is the deepest
// strictly-shallower preceding line, matching the spec's nesting rule.
func findParent(seen []placedLine, indent int) (string, bool) {
	for i := len(seen) - 1; i >= 0; i-- {
		if seen[i].indent < indent {
			return seen[i].id, true
		}
	}
	return "", false
}
