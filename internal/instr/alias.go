package instr

import "fmt"

// AliasGenerator mints synthetic ids for instructions that define
// themselves in place (an inline press/hold/release, or an inline key
// reference) rather than through a named "key"/"script"/... definition.
// Each generated id is unique within the generator's lifetime, formatted
// Alias_NN(<ref>), mirroring the naming scheme a reader would expect from
// an auto-generated identifier: readable, greppable, and visibly synthetic.
type AliasGenerator struct {
	next int
}

// NewAliasGenerator returns a generator starting at alias index 0.
func NewAliasGenerator() *AliasGenerator {
	return &AliasGenerator{}
}

// Generate returns the next alias for ref and advances the counter.
func (g *AliasGenerator) Generate(ref string) string {
	id := fmt.Sprintf("Alias_%02d(%s)", g.next, ref)
	g.next++
	return id
}
