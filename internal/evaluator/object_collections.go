package evaluator

import (
	"strings"

	"github.com/funvibe/basic/internal/token"
)

type listStore struct {
	items []Object
}

// List is an ordered sequence of values. Copies made by WithPos and
// WithContext share element storage, so APPEND through one binding is seen
// through every other.
type List struct {
	store *listStore
	provenance
}

func NewList(elements []Object) *List {
	return &List{store: &listStore{items: elements}}
}

func (l *List) Type() ObjectType { return LIST_OBJ }

func (l *List) Inspect() string {
	parts := make([]string, len(l.store.items))
	for i, el := range l.store.items {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) String() string {
	parts := make([]string, len(l.store.items))
	for i, el := range l.store.items {
		parts[i] = el.String()
	}
	return strings.Join(parts, ", ")
}

func (l *List) IsTrue() bool { return len(l.store.items) > 0 }

func (l *List) WithPos(start, end token.Position) Object {
	c := *l
	c.start, c.end = start, end
	return &c
}

func (l *List) WithContext(ctx *Context) Object {
	c := *l
	c.ctx = ctx
	return &c
}

// Elements returns the live element slice. Callers must not retain it across
// mutations.
func (l *List) Elements() []Object { return l.store.items }

func (l *List) Len() int { return len(l.store.items) }

// Copy returns a list with its own storage holding the same elements.
func (l *List) Copy() *List {
	items := make([]Object, len(l.store.items))
	copy(items, l.store.items)
	return &List{store: &listStore{items: items}, provenance: l.provenance}
}

func (l *List) Append(values ...Object) {
	l.store.items = append(l.store.items, values...)
}

// resolveIndex maps a possibly negative whole-number index onto the list.
func (l *List) resolveIndex(idx *Number) (int, bool) {
	if !idx.IsInteger() {
		return 0, false
	}
	i := int(idx.Value)
	if i < 0 {
		i += len(l.store.items)
	}
	if i < 0 || i >= len(l.store.items) {
		return 0, false
	}
	return i, true
}

func (l *List) Get(idx *Number) (Object, bool) {
	i, ok := l.resolveIndex(idx)
	if !ok {
		return nil, false
	}
	return l.store.items[i], true
}

// Remove deletes the element at idx in place and returns it.
func (l *List) Remove(idx *Number) (Object, bool) {
	i, ok := l.resolveIndex(idx)
	if !ok {
		return nil, false
	}
	el := l.store.items[i]
	l.store.items = append(l.store.items[:i], l.store.items[i+1:]...)
	return el, true
}
