package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dpcl-lang/dpcl/cmds"
	"github.com/dpcl-lang/dpcl/debugs"
	"github.com/dpcl-lang/dpcl/loaders"
	"github.com/dpcl-lang/dpcl/logs"
	"github.com/dpcl-lang/dpcl/repl"
	"github.com/reusee/dscope"
)

var (
	interactiveFlag = cmds.Switch("i")
	tapFlag         = cmds.Switch("tap")
)

func main() {
	rest := cmds.MustExecute(os.Args[1:])

	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: dpcl [flags] <model file>")
		os.Exit(1)
	}
	filePath := rest[0]

	dscope.New(
		new(repl.Module),
	).Call(func(
		runShell repl.RunShell,
		load loaders.LoadProgram,
		tap debugs.Tap,
		logger logs.Logger,
	) {
		ctx := context.Background()

		if *interactiveFlag {
			if err := runShell(ctx, filePath); err != nil {
				logger.Error("shell failed", "err", err)
				os.Exit(1)
			}
			return
		}

		program, err := load(filePath)
		if err != nil {
			logger.Error("load failed", "path", filePath, "err", err)
			os.Exit(1)
		}

		if *tapFlag {
			tap(ctx, program)
			return
		}

		fmt.Print(repl.Pretty(program.Root()))
	})
}
