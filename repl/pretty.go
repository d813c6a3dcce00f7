package repl

import (
	"fmt"
	"strings"

	"github.com/dpcl-lang/dpcl/ast"
)

// Pretty renders the entity tree under an object, one entity per line.
// Active entities are marked with "+", inactive ones with "-", and the
// resolved descriptor set follows in brackets.
func Pretty(root *ast.Object) string {
	var b strings.Builder
	writeEntity(&b, root, 0, make(map[ast.ID]bool))
	return b.String()
}

func writeEntity(b *strings.Builder, obj *ast.Object, depth int, seen map[ast.ID]bool) {
	if seen[obj.ID()] {
		return
	}
	seen[obj.ID()] = true

	marker := "-"
	if obj.Active() {
		marker = "+"
	}
	fmt.Fprintf(b, "%s%s %s", strings.Repeat("  ", depth), marker, obj.Name())

	if descriptors := obj.AllDescriptors(); len(descriptors) > 0 {
		names := make([]string, 0, len(descriptors))
		for _, d := range descriptors {
			names = append(names, d.Name())
		}
		fmt.Fprintf(b, " [%s]", strings.Join(names, ", "))
	}
	b.WriteByte('\n')

	for _, entry := range obj.Namespace().Entries() {
		if entry.Name == "*" {
			continue
		}
		if child, ok := ast.EntityObject(entry.Value); ok {
			writeEntity(b, child, depth+1, seen)
		}
	}
}
