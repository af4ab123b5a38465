package dsl

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/param"
)

// instructionShape is the normalized, order-independent JSON view of an
// instruction used for fingerprinting. Params are flattened explicitly so
// the hash is stable across Go struct layout changes.
type instructionShape struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	KeyRef   string   `json:"key_ref,omitempty"`
	Ref      string   `json:"ref,omitempty"`
	Children []string `json:"children,omitempty"`
	Duration [2]int   `json:"duration"`
	Before   [2]int   `json:"before"`
	After    [2]int   `json:"after"`
	Repeat   [2]int   `json:"repeat"`
	Cooldown [2]int   `json:"cooldown"`
}

// Fingerprint returns a stable content hash of the compiled instruction
// table, for diagnostics that need to answer "did the script change
// without re-parsing it" (beanscript inspect, the status server).
func Fingerprint(table *instr.Table) (string, error) {
	all := table.All()
	shapes := make([]instructionShape, 0, len(all))
	for _, i := range all {
		shapes = append(shapes, instructionShape{
			ID:       i.ID,
			Kind:     i.Kind.String(),
			KeyRef:   i.KeyRef,
			Ref:      i.Ref,
			Children: append([]string(nil), i.Children...),
			Duration: rangeOf(i, param.Duration),
			Before:   rangeOf(i, param.Before),
			After:    rangeOf(i, param.After),
			Repeat:   rangeOf(i, param.Repeat),
			Cooldown: rangeOf(i, param.Cooldown),
		})
	}
	sort.Slice(shapes, func(a, b int) bool { return shapes[a].ID < shapes[b].ID })

	body, err := json.Marshal(shapes)
	if err != nil {
		return "", fmt.Errorf("marshal instruction table fingerprint input: %w", err)
	}
	sum := blake3.Sum256(body)
	return "blake3:" + hex.EncodeToString(sum[:]), nil
}

func rangeOf(i *instr.Instruction, kind param.Kind) [2]int {
	r := i.Params.Get(kind)
	return [2]int{r.Lo, r.Hi}
}
