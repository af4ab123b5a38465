package instr

import "fmt"

// DuplicateIDError is returned when a script defines the same instruction
// id twice. The dsl package treats this as fatal.
type DuplicateIDError struct {
	ID   string
	Line int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("line %d: duplicate instruction id %q", e.Line, e.ID)
}

// Table is the flat map from instruction id to instruction, built once at
// parse time and read many times by the schedulers and runtime.
type Table struct {
	byID map[string]*Instruction
	// execution holds the ids of top-level transactional instructions, in
	// the order they appeared in the source file.
	execution []string
}

// NewTable returns an empty instruction table.
func NewTable() *Table {
	return &Table{byID: make(map[string]*Instruction)}
}

// Insert adds instr to the table. A duplicate id is a fatal error: the
// table never silently overwrites an existing definition.
func (t *Table) Insert(i *Instruction) error {
	if _, exists := t.byID[i.ID]; exists {
		return &DuplicateIDError{ID: i.ID, Line: i.Line}
	}
	t.byID[i.ID] = i
	return nil
}

// Get looks up an instruction by id.
func (t *Table) Get(id string) (*Instruction, bool) {
	i, ok := t.byID[id]
	return i, ok
}

// MustGet looks up an instruction by id and panics if absent. Callers use
// this only for ids already known to resolve: parents the dsl resolver has
// just inserted, and children and references the doctor has checked before
// the runtime starts.
func (t *Table) MustGet(id string) *Instruction {
	i, ok := t.byID[id]
	if !ok {
		panic(fmt.Sprintf("instr: table has no instruction %q", id))
	}
	return i
}

// AppendExecution records id as a top-level transaction, in source order.
func (t *Table) AppendExecution(id string) {
	t.execution = append(t.execution, id)
}

// ExecutionList returns the top-level transactional instructions, in the
// order they were declared in the source file.
func (t *Table) ExecutionList() []*Instruction {
	out := make([]*Instruction, 0, len(t.execution))
	for _, id := range t.execution {
		out = append(out, t.MustGet(id))
	}
	return out
}

// Len returns the number of distinct instructions in the table.
func (t *Table) Len() int {
	return len(t.byID)
}

// All returns every instruction currently in the table. Order is
// unspecified; callers that need determinism should sort.
func (t *Table) All() []*Instruction {
	out := make([]*Instruction, 0, len(t.byID))
	for _, i := range t.byID {
		out = append(out, i)
	}
	return out
}
