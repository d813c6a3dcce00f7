// Package repl provides the interactive shell over a loaded program,
// with live reload of the backing model file.
package repl

import (
	"github.com/dpcl-lang/dpcl/debugs"
	"github.com/dpcl-lang/dpcl/loaders"
	"github.com/dpcl-lang/dpcl/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Loaders loaders.Module
	Debugs  debugs.Module
	Logs    logs.Module
}
