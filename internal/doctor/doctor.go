// Package doctor runs static checks over a compiled instruction table
// before the runtime ever starts the tick loop: unresolved key names,
// dangling references, and scheduler members that point nowhere.
package doctor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/keycatalog"
)

// Issue describes a single validation error or warning.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
}

// Result holds the outcome of a validation run.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// Doctor validates a compiled instruction table against the key catalog.
type Doctor struct {
	table   *instr.Table
	catalog *keycatalog.Catalog
}

// New creates a Doctor over an already-resolved instruction table.
func New(table *instr.Table, catalog *keycatalog.Catalog) *Doctor {
	return &Doctor{table: table, catalog: catalog}
}

// Validate runs every check and returns a result.
func (d *Doctor) Validate() *Result {
	r := &Result{Valid: true}

	d.validateKeyReferences(r)
	d.validateReferences(r)
	d.validateChildrenResolve(r)
	d.warnUnreachableDefinitions(r)

	r.Valid = len(r.Errors) == 0
	return r
}

func (d *Doctor) addError(r *Result, category, field, msg string) {
	r.Errors = append(r.Errors, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) addWarning(r *Result, category, field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Category: category, Field: field, Message: msg})
}

// validateKeyReferences checks that every Press/Hold/Release/Key names a
// key the catalog actually has.
func (d *Doctor) validateKeyReferences(r *Result) {
	for _, i := range d.table.All() {
		name := i.KeyRef
		if name == "" {
			continue
		}
		switch i.Kind {
		case instr.Key, instr.Press, instr.Hold, instr.Release:
			if !d.catalog.Has(name) {
				d.addError(r, "key_catalog", i.ID,
					fmt.Sprintf("instruction %q references unknown key %q", i.ID, name))
			}
		}
	}
}

// validateReferences checks that every Ref (Start/Stop's target, or an
// in-place Press/Hold/Release alias's referenced key) resolves to something
// in the table.
func (d *Doctor) validateReferences(r *Result) {
	for _, i := range d.table.All() {
		if i.Ref == "" {
			continue
		}
		switch i.Kind {
		case instr.Start, instr.Stop, instr.Press, instr.Hold, instr.Release:
			if _, ok := d.table.Get(i.Ref); !ok {
				d.addError(r, "references", i.ID,
					fmt.Sprintf("%s %q targets unknown instruction %q", i.Kind, i.ID, i.Ref))
			}
		}
	}
}

// validateChildrenResolve checks that every child id a Group, Routine,
// Waitlist, or Random lists actually exists in the table.
func (d *Doctor) validateChildrenResolve(r *Result) {
	for _, i := range d.table.All() {
		for _, childID := range i.Children {
			if _, ok := d.table.Get(childID); !ok {
				d.addError(r, "children", i.ID,
					fmt.Sprintf("%s %q has unresolved member %q", i.Kind, i.ID, childID))
			}
		}
	}
}

// warnUnreachableDefinitions warns about every definition (Key, Script,
// Window, Group, or scheduler) whose id no other instruction names as its
// Ref or lists among its Children.
func (d *Doctor) warnUnreachableDefinitions(r *Result) {
	referenced := make(map[string]bool)
	for _, i := range d.table.All() {
		if i.Ref != "" {
			referenced[i.Ref] = true
		}
		for _, c := range i.Children {
			referenced[c] = true
		}
	}
	for _, i := range d.table.All() {
		if !i.Kind.IsDefinition() {
			continue
		}
		if !referenced[i.ID] {
			d.addWarning(r, "unreachable", i.ID,
				fmt.Sprintf("%s %q is defined but never referenced", i.Kind, i.ID))
		}
	}
}

// FormatHuman renders a validation result for terminal output.
func FormatHuman(r *Result) string {
	var b strings.Builder

	switch {
	case r.Valid && len(r.Warnings) == 0:
		b.WriteString("Script valid.\n")
		return b.String()
	case r.Valid:
		fmt.Fprintf(&b, "Script valid (%d warning(s))\n", len(r.Warnings))
	default:
		fmt.Fprintf(&b, "Script invalid (%d error(s), %d warning(s))\n", len(r.Errors), len(r.Warnings))
	}

	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  ERROR [%s] %s\n", e.Category, e.Message)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  WARN  [%s] %s\n", w.Category, w.Message)
	}
	return b.String()
}

// FormatJSON renders a validation result as indented JSON.
func FormatJSON(r *Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
