package ast

import (
	"fmt"
	"strings"
)

// Namespace is the scoped symbol table of a single entity. Lookup walks
// strictly upward through parents; auto-identifiers are deterministic and
// monotonically increasing per prefix, scoped to this namespace.
type Namespace struct {
	name     string
	parent   *Namespace
	table    map[string]Node
	order    []string
	autoCtrs map[string]int
}

// Entry is one bound name, for ordered enumeration.
type Entry struct {
	Name  string
	Value Node
}

func NewNamespace(name string, parent *Namespace) *Namespace {
	return &Namespace{
		name:     name,
		parent:   parent,
		table:    make(map[string]Node),
		autoCtrs: make(map[string]int),
	}
}

// Get retrieves a bound name. With recursive set, parent namespaces are
// searched upward and the first match wins; failure surfaces the
// originating scope's full name.
func (n *Namespace) Get(name string, recursive bool) (Node, error) {
	if v, ok := n.table[name]; ok {
		return v, nil
	}
	if recursive && n.parent != nil {
		v, err := n.parent.Get(name, true)
		if err != nil {
			return nil, &NameError{Name: name, Scope: n.FullName()}
		}
		return v, nil
	}
	return nil, &NameError{Name: name, Scope: n.FullName()}
}

// Add binds a name. A name may be bound at most once unless overwrite is
// explicit.
func (n *Namespace) Add(name string, value Node, overwrite bool) error {
	if _, ok := n.table[name]; ok {
		if !overwrite {
			return &NameError{Name: name, Scope: n.FullName(), Duplicate: true}
		}
		n.table[name] = value
		return nil
	}
	n.table[name] = value
	n.order = append(n.order, name)
	return nil
}

// AutoID returns the next anonymous identifier for prefix, of the form
// _<prefix><n>.
func (n *Namespace) AutoID(prefix string) string {
	ctr := n.autoCtrs[prefix]
	n.autoCtrs[prefix]++
	return fmt.Sprintf("_%s%d", prefix, ctr)
}

// FullName joins the namespace chain down from the root with "::".
func (n *Namespace) FullName() string {
	if n.parent == nil || n.parent.FullName() == "" {
		return n.name
	}
	return n.parent.FullName() + "::" + n.name
}

// Entries enumerates bound names in insertion order.
func (n *Namespace) Entries() []Entry {
	ret := make([]Entry, 0, len(n.order))
	for _, name := range n.order {
		ret = append(ret, Entry{Name: name, Value: n.table[name]})
	}
	return ret
}

func (n *Namespace) setParent(parent *Namespace) {
	n.parent = parent
}

// String lists bound names, hiding auto-identifiers.
func (n *Namespace) String() string {
	var sb strings.Builder
	for _, e := range n.Entries() {
		if strings.HasPrefix(e.Name, "_") {
			continue
		}
		fmt.Fprintf(&sb, "%s: %v\n", e.Name, e.Value)
	}
	return sb.String()
}
