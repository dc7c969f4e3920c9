package evaluator

import "sort"

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Object), parent: parent}
}

// SymbolTable maps names to values. Lookups fall back to the parent chain;
// writes are always local.
type SymbolTable struct {
	symbols map[string]Object
	parent  *SymbolTable
}

func (s *SymbolTable) Get(name string) (Object, bool) {
	obj, ok := s.symbols[name]
	if !ok && s.parent != nil {
		return s.parent.Get(name)
	}
	return obj, ok
}

func (s *SymbolTable) Set(name string, val Object) Object {
	s.symbols[name] = val
	return val
}

func (s *SymbolTable) Remove(name string) {
	delete(s.symbols, name)
}

func (s *SymbolTable) Parent() *SymbolTable {
	return s.parent
}

// Names returns the locally bound names in sorted order.
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
