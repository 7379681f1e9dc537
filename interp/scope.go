package interp

import "github.com/Yemiez/ysen/value"

// Kind tags what a Scope is for, controlling return-propagation.
type Kind int

// Scope kinds.
const (
	// Normal is used for block expressions, for-loop bodies (superseded by
	// Loopable) and if/else branches.
	Normal Kind = iota
	// Returnable is pushed on function entry; return-propagation stops here.
	Returnable
	// Loopable is reserved for future break/continue; currently behaves
	// exactly like Normal.
	Loopable
)

// Variable is a name bound to a mutable Value cell.
type Variable struct {
	Name string
	Cell *value.Value
}

// Scope is a lexical context: a parent back-reference (never ownership),
// name-to-variable and name-to-function bindings, and the returning flag
// used for return-propagation (§4.4).
type Scope struct {
	Parent    *Scope
	Name      string
	Kind      Kind
	Vars      map[string]*Variable
	Funcs     map[string]*value.Function
	Returning bool
}

func newScope(parent *Scope, kind Kind, name string) *Scope {
	return &Scope{
		Parent: parent,
		Name:   name,
		Kind:   kind,
		Vars:   make(map[string]*Variable),
		Funcs:  make(map[string]*value.Function),
	}
}

// LookupVariable walks the scope chain from s to the root, returning the
// first Variable bound to name.
func (s *Scope) LookupVariable(name string) (*Variable, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if v, ok := cur.Vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// LookupFunction walks the scope chain from s to the root, returning the
// first Function bound to name.
func (s *Scope) LookupFunction(name string) (*value.Function, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if f, ok := cur.Funcs[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// Declare binds name to v in s, creating a fresh Value cell.
func (s *Scope) Declare(name string, v value.Value) *Variable {
	cell := v
	variable := &Variable{Name: name, Cell: &cell}
	s.Vars[name] = variable
	return variable
}
