// Package inspect renders a compiled instruction table as a diagnostic
// report: a human-readable summary, or a YAML dump keyed for diffing two
// versions of a script.
package inspect

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beanscript-lang/beanscript/internal/dsl"
	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/param"
)

// InstructionDump is the YAML- and JSON-serializable shape of one
// instruction.
type InstructionDump struct {
	ID       string   `yaml:"id" json:"id"`
	Kind     string   `yaml:"kind" json:"kind"`
	KeyRef   string   `yaml:"key_ref,omitempty" json:"key_ref,omitempty"`
	Ref      string   `yaml:"ref,omitempty" json:"ref,omitempty"`
	Children []string `yaml:"children,omitempty" json:"children,omitempty"`
	Duration [2]int   `yaml:"duration" json:"duration"`
	Before   [2]int   `yaml:"before" json:"before"`
	After    [2]int   `yaml:"after" json:"after"`
	Repeat   [2]int   `yaml:"repeat" json:"repeat"`
	Cooldown [2]int   `yaml:"cooldown" json:"cooldown"`
}

// Dump is the top-level diagnostic document for one compiled script.
type Dump struct {
	Fingerprint  string            `yaml:"fingerprint" json:"fingerprint"`
	Instructions []InstructionDump `yaml:"instructions" json:"instructions"`
	Execution    []string          `yaml:"execution_list" json:"execution_list"`
	Schedulers   []string          `yaml:"schedulers" json:"schedulers"`
}

// Build gathers a Dump for table, given the schedulers the dsl resolver
// collected for it.
func Build(table *instr.Table, schedulers []*instr.Instruction) (*Dump, error) {
	fp, err := dsl.Fingerprint(table)
	if err != nil {
		return nil, fmt.Errorf("fingerprint table: %w", err)
	}

	all := table.All()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	d := &Dump{Fingerprint: fp}
	for _, i := range all {
		d.Instructions = append(d.Instructions, toDump(i))
	}
	for _, i := range table.ExecutionList() {
		d.Execution = append(d.Execution, i.ID)
	}
	for _, s := range schedulers {
		d.Schedulers = append(d.Schedulers, s.ID)
	}
	return d, nil
}

func toDump(i *instr.Instruction) InstructionDump {
	return InstructionDump{
		ID:       i.ID,
		Kind:     i.Kind.String(),
		KeyRef:   i.KeyRef,
		Ref:      i.Ref,
		Children: i.Children,
		Duration: boundsOf(i, param.Duration),
		Before:   boundsOf(i, param.Before),
		After:    boundsOf(i, param.After),
		Repeat:   boundsOf(i, param.Repeat),
		Cooldown: boundsOf(i, param.Cooldown),
	}
}

func boundsOf(i *instr.Instruction, kind param.Kind) [2]int {
	r := i.Params.Get(kind)
	return [2]int{r.Lo, r.Hi}
}

// YAML renders the dump as YAML text.
func (d *Dump) YAML() (string, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal dump: %w", err)
	}
	return string(out), nil
}

// Human renders a short terminal-friendly summary, in the spirit of a
// lineage report: one line of header context, then one block per
// instruction.
func (d *Dump) Human() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Instruction Table\n")
	fmt.Fprintf(&b, "Fingerprint : %s\n", d.Fingerprint)
	fmt.Fprintf(&b, "Executions  : %d\n", len(d.Execution))
	fmt.Fprintf(&b, "Schedulers  : %d\n\n", len(d.Schedulers))

	for _, i := range d.Instructions {
		fmt.Fprintf(&b, "[%s] %s\n", i.ID, i.Kind)
		if i.KeyRef != "" {
			fmt.Fprintf(&b, "    key      : %s\n", i.KeyRef)
		}
		if i.Ref != "" {
			fmt.Fprintf(&b, "    ref      : %s\n", i.Ref)
		}
		if len(i.Children) > 0 {
			fmt.Fprintf(&b, "    children : %s\n", strings.Join(i.Children, ", "))
		}
		fmt.Fprintf(&b, "    duration : %d-%d  before : %d-%d  after : %d-%d  repeat : %d-%d  cooldown : %d-%d\n",
			i.Duration[0], i.Duration[1], i.Before[0], i.Before[1], i.After[0], i.After[1],
			i.Repeat[0], i.Repeat[1], i.Cooldown[0], i.Cooldown[1])
	}
	return b.String()
}
