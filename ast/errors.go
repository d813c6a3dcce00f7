package ast

import "fmt"

// NameError reports a failed namespace lookup, or a duplicate binding
// without overwrite. Scope is the full name of the namespace searched.
type NameError struct {
	Name      string
	Scope     string
	Duplicate bool
}

func (e *NameError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("name %q already exists in namespace %s", e.Name, e.Scope)
	}
	return fmt.Sprintf("can't resolve reference %q in namespace %s", e.Name, e.Scope)
}

// LogicError reports a boolean facet asserted both true and false by
// simultaneously valid transformational derivations.
type LogicError struct {
	Facet string
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("contradictory derivations for %s", e.Facet)
}

// TypeError reports an operation on a node that structurally cannot
// support it, such as firing the wildcard action.
type TypeError struct {
	Op string
}

func (e *TypeError) Error() string {
	return e.Op
}

// DescriptorError reports an illegal descriptor mutation, such as
// removing an entity from its own descriptor set.
type DescriptorError struct {
	Op string
}

func (e *DescriptorError) Error() string {
	return e.Op
}
