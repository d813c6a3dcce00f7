// Package debugs provides an interactive starlark tap for probing a
// running program.
package debugs

import (
	"github.com/dpcl-lang/dpcl/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
