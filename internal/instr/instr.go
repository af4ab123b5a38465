// Package instr defines BeanScript's instruction model: the instruction
// kinds, their parameters, and the table that resolves ids to instructions.
package instr

import (
	"fmt"

	"github.com/beanscript-lang/beanscript/internal/param"
)

// Kind is one of the twelve instruction kinds the language supports.
type Kind int

const (
	Key Kind = iota
	Press
	Hold
	Release
	Start
	Stop
	Script
	Window
	Waitlist
	Routine
	Random
	Group
)

func (k Kind) String() string {
	switch k {
	case Key:
		return "key"
	case Press:
		return "press"
	case Hold:
		return "hold"
	case Release:
		return "release"
	case Start:
		return "start"
	case Stop:
		return "stop"
	case Script:
		return "script"
	case Window:
		return "window"
	case Waitlist:
		return "waitlist"
	case Routine:
		return "routine"
	case Random:
		return "random"
	case Group:
		return "group"
	default:
		return fmt.Sprintf("instr.Kind(%d)", int(k))
	}
}

// ParseKind resolves the leading token of a script line to a Kind.
func ParseKind(token string) (Kind, bool) {
	switch token {
	case "key":
		return Key, true
	case "press":
		return Press, true
	case "hold":
		return Hold, true
	case "release":
		return Release, true
	case "start":
		return Start, true
	case "stop":
		return Stop, true
	case "script":
		return Script, true
	case "window":
		return Window, true
	case "waitlist":
		return Waitlist, true
	case "routine":
		return Routine, true
	case "random":
		return Random, true
	case "group":
		return Group, true
	default:
		return 0, false
	}
}

// IsDefinition reports whether the kind introduces a named, referenceable
// instruction rather than only an in-place action.
func (k Kind) IsDefinition() bool {
	switch k {
	case Key, Script, Window, Waitlist, Routine, Random, Group:
		return true
	default:
		return false
	}
}

// CanDefineInplace reports whether the kind may appear directly in the
// execution list or as a scheduler member without a prior named definition,
// generating an implicit alias for itself.
func (k Kind) CanDefineInplace() bool {
	switch k {
	case Press, Hold, Release:
		return true
	default:
		return false
	}
}

// IsTransaction reports whether the kind is an executable action (a
// keystroke, or starting/stopping another instruction) that is enqueued in
// the execution list when it appears at indent 0.
func (k Kind) IsTransaction() bool {
	switch k {
	case Press, Hold, Release, Start, Stop:
		return true
	default:
		return false
	}
}

// IsScheduler reports whether the kind owns a dispatch policy over its
// children. Group is deliberately excluded: it nests children but applies
// no scheduling policy of its own (see Instruction.Children and the
// runtime's group-expansion handling).
func (k Kind) IsScheduler() bool {
	switch k {
	case Waitlist, Routine, Random:
		return true
	default:
		return false
	}
}

// Instruction is one parsed line of a BeanScript source file, resolved
// into the instruction graph by the dsl package.
type Instruction struct {
	ID string
	Kind Kind

	// KeyRef names the key catalog entry this instruction acts on. Only
	// meaningful for Key, Press, Hold, and Release.
	KeyRef string

	// Ref is the id this instruction refers to, for kinds that wrap another
	// instruction by reference (Start, Stop referencing a Script, Window,
	// Group or scheduler; an in-place Press/Hold/Release referencing a key).
	Ref string

	Params param.Set

	// Children holds the ids of instructions listed as bare references in
	// this line's with-clause or nested beneath it by indentation, in source
	// order. Any kind can receive children; only Group, Script and the
	// schedulers (Waitlist, Routine, Random) act on them.
	Children []string

	Line int
}

// New constructs an instruction with the documented default parameters.
func New(id string, kind Kind, line int) *Instruction {
	return &Instruction{
		ID:     id,
		Kind:   kind,
		Params: param.Defaults(),
		Line:   line,
	}
}

// AddChild appends a sub-instruction id, preserving source order.
func (i *Instruction) AddChild(childID string) {
	i.Children = append(i.Children, childID)
}
