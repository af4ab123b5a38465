package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/keycatalog"
	"github.com/beanscript-lang/beanscript/internal/param"
)

// tabWidth is how many indent columns a tab character counts for, per the
// source format's indentation rule.
const tabWidth = 4

// Parse turns the raw text of a .bs source file into a sequence of Lines,
// ready for Resolve. It owns the grammar described by the source format:
// leading whitespace as indent, `<kind> <id tokens...> [with <param>, ...]`
// as the line body, and comma-separated groups inside the with-clause as
// either a button binding, a named parameter range, or a bare reference to
// an existing id.
func Parse(source string) ([]Line, error) {
	var lines []Line

	for i, raw := range strings.Split(source, "\n") {
		lineNum := i + 1
		if strings.TrimSpace(raw) == "" {
			continue
		}

		indent, body := splitIndent(raw)
		fields := strings.Fields(body)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "none" {
			continue
		}

		inst, err := parseBody(fields, lineNum)
		if err != nil {
			return nil, err
		}
		lines = append(lines, Line{Indent: indent, Inst: inst})
	}

	return lines, nil
}

// splitIndent returns the indent width (tabs count as tabWidth, spaces as
// 1) and the line with leading whitespace stripped.
func splitIndent(raw string) (int, string) {
	indent := 0
	i := 0
	for i < len(raw) {
		switch raw[i] {
		case '\t':
			indent += tabWidth
		case ' ':
			indent++
		default:
			return indent, raw[i:]
		}
		i++
	}
	return indent, ""
}

func parseBody(fields []string, lineNum int) (*instr.Instruction, error) {
	kind, ok := instr.ParseKind(fields[0])
	if !ok {
		return nil, &ParseError{Line: lineNum, Message: fmt.Sprintf("unknown kind %q", fields[0])}
	}

	idTokens, paramSection := splitOnWith(fields[1:])
	id := strings.Join(idTokens, " ")

	var inst *instr.Instruction
	switch {
	case kind == instr.Start || kind == instr.Stop:
		// start/stop never define anything themselves; the token in id
		// position names the scheduler/script/window they act on. Resolve
		// mints this instruction its own alias id.
		if id == "" {
			return nil, &ParseError{Line: lineNum, Message: fmt.Sprintf("%s instruction requires a target id", kind)}
		}
		inst = instr.New("", kind, lineNum)
		inst.Ref = id

	case kind.CanDefineInplace() && id != "":
		// The token in id position may name an instruction already in the
		// table (S1/S5's "press k" form, resolved into an alias) or, if
		// nothing by that name exists yet, a fresh named leaf (e.g. "press
		// p1 with button a"). Resolve is the first point with enough
		// context (the table as built so far) to tell which.
		inst = instr.New("", kind, lineNum)
		inst.Ref = id

	default:
		inst = instr.New(id, kind, lineNum)
	}

	if paramSection != nil {
		if err := applyGroups(inst, paramSection, lineNum); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

// splitOnWith separates the id tokens from the with-clause tokens. It
// returns a nil paramSection when there is no "with" keyword, distinct
// from an empty-but-present with-clause.
func splitOnWith(fields []string) (idTokens []string, paramSection []string) {
	for i, f := range fields {
		if f == "with" {
			return fields[:i], fields[i+1:]
		}
	}
	return fields, nil
}

// applyGroups parses each comma-separated group of a with-clause and
// applies it to inst: a button binding, a named parameter range, or a
// bare reference.
func applyGroups(inst *instr.Instruction, paramSection []string, lineNum int) error {
	for _, group := range splitGroups(paramSection) {
		if len(group) == 0 {
			return &ParseError{Line: lineNum, Message: "empty parameter group"}
		}

		switch {
		case group[0] == "button":
			if len(group) != 2 {
				return &ParseError{Line: lineNum, Message: "button requires exactly one key name"}
			}
			inst.KeyRef = group[1]

		case isParamName(group[0]):
			kind, _ := param.ParseKind(group[0])
			r, err := parseRange(group[1:], lineNum)
			if err != nil {
				return err
			}
			inst.Params = inst.Params.Set(kind, r)

		default:
			inst.AddChild(strings.Join(group, " "))
		}
	}
	return nil
}

// splitGroups splits with-clause tokens on bare "," tokens or tokens that
// end in a comma, since the tokenizer has already split on whitespace.
func splitGroups(fields []string) [][]string {
	var groups [][]string
	var cur []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		for f != "" {
			if idx := strings.IndexByte(f, ','); idx >= 0 {
				head := f[:idx]
				if head != "" {
					cur = append(cur, head)
				}
				groups = append(groups, cur)
				cur = nil
				f = f[idx+1:]
			} else {
				cur = append(cur, f)
				f = ""
			}
		}
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

func isParamName(token string) bool {
	_, ok := param.ParseKind(token)
	return ok
}

func parseRange(values []string, lineNum int) (param.Range, error) {
	if len(values) == 0 || len(values) > 2 {
		return param.Range{}, &ParseError{Line: lineNum, Message: "parameter takes one or two integers"}
	}
	lo, err := strconv.Atoi(values[0])
	if err != nil {
		return param.Range{}, &ParseError{Line: lineNum, Message: fmt.Sprintf("non-numeric parameter value %q", values[0])}
	}
	hi := lo
	if len(values) == 2 {
		hi, err = strconv.Atoi(values[1])
		if err != nil {
			return param.Range{}, &ParseError{Line: lineNum, Message: fmt.Sprintf("non-numeric parameter value %q", values[1])}
		}
	}
	return param.Range{Lo: lo, Hi: hi}, nil
}

// ValidateButtons checks every KeyRef a parse pass produced against the
// catalog; Parse itself stays catalog-agnostic so it can run before a
// catalog exists (e.g. unit tests with a trimmed-down key set).
func ValidateButtons(lines []Line, catalog *keycatalog.Catalog) error {
	for _, ln := range lines {
		name := ln.Inst.KeyRef
		if name == "" {
			continue
		}
		if !catalog.Has(name) {
			return &ParseError{Line: ln.Inst.Line, Message: fmt.Sprintf("unknown key %q", name)}
		}
	}
	return nil
}
