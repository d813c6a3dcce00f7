// Package loaders reads model documents (JSON, YAML or CUE), validates
// them against the wire-shape schema, and builds executed programs.
package loaders

import (
	"github.com/dpcl-lang/dpcl/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
