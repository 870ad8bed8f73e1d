package core

import "errors"

const (
	Branch    EntityKind = "branch"
	Commodity EntityKind = "commodity"
)

type (
	// EntityKind names one dimension sales are totalled by.
	EntityKind string

	Entity struct {
		Code  string
		Name  string
		Total int64
	}

	// Table holds the definitions of one entity kind together with their
	// running totals. Iteration follows the order codes were first added.
	Table struct {
		kind   EntityKind
		order  []string
		names  map[string]string
		totals map[string]int64
	}
)

var ErrUnknownCode = errors.New("unknown code")

// NewTable returns an empty table for kind.
func NewTable(kind EntityKind) *Table {
	return &Table{
		kind:   kind,
		names:  make(map[string]string),
		totals: make(map[string]int64),
	}
}

func (t *Table) Kind() EntityKind {
	return t.kind
}

// Define registers code with a zero total. Redefining a code replaces its
// name and resets its total but keeps its original position.
func (t *Table) Define(code, name string) {
	if _, ok := t.names[code]; !ok {
		t.order = append(t.order, code)
	}
	t.names[code] = name
	t.totals[code] = 0
}

func (t *Table) Has(code string) bool {
	_, ok := t.totals[code]
	return ok
}

func (t *Table) Len() int {
	return len(t.order)
}

// Codes returns the defined codes in definition order.
func (t *Table) Codes() []string {
	return append([]string(nil), t.order...)
}

func (t *Table) Name(code string) string {
	return t.names[code]
}

func (t *Table) Total(code string) int64 {
	return t.totals[code]
}

// SetTotal overwrites the total of an already defined code.
func (t *Table) SetTotal(code string, total int64) error {
	if !t.Has(code) {
		return ErrUnknownCode
	}
	t.totals[code] = total
	return nil
}

// Entities returns a snapshot of the table in definition order.
func (t *Table) Entities() []Entity {
	out := make([]Entity, 0, len(t.order))
	for _, code := range t.order {
		out = append(out, Entity{Code: code, Name: t.names[code], Total: t.totals[code]})
	}
	return out
}
