package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dpcl-lang/dpcl/ast"
	"github.com/dpcl-lang/dpcl/debugs"
	"github.com/dpcl-lang/dpcl/loaders"
	"github.com/dpcl-lang/dpcl/logs"
)

type shell struct {
	program  *ast.Program
	filePath string
	load     loaders.LoadProgram
	tap      debugs.Tap
	logger   logs.Logger
	out      io.Writer
}

// RunShell loads a model file and drops into an interactive prompt over
// it. Edits to the file are picked up between commands.
type RunShell func(ctx context.Context, filePath string) error

func (Module) RunShell(
	logger logs.Logger,
	load loaders.LoadProgram,
	tap debugs.Tap,
) RunShell {
	return func(ctx context.Context, filePath string) error {

		program, err := load(filePath)
		if err != nil {
			return err
		}

		s := &shell{
			program:  program,
			filePath: filePath,
			load:     load,
			tap:      tap,
			logger:   logger,
			out:      os.Stdout,
		}

		changed := make(chan struct{}, 1)
		watcher, err := watchFile(filePath, changed, logger)
		if err != nil {
			logger.Warn("file watch unavailable", "err", err)
		} else {
			defer watcher.Close()
		}

		in := bufio.NewScanner(os.Stdin)
		for {
			select {
			case <-changed:
				s.reload()
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			fmt.Fprintf(s.out, "%s> ", s.program.Name())
			if !in.Scan() {
				return in.Err()
			}
			if quit := s.Eval(ctx, in.Text()); quit {
				return nil
			}
		}
	}
}

func (s *shell) Eval(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {

	case "help":
		fmt.Fprint(s.out, `commands:
  ls                            show the entity tree
  show <name>                   show one entity
  fire <#action> [key=name...]  fire an action
  tap                           drop into a starlark prompt
  reload                        rebuild from the model file
  exit                          leave the shell
`)

	case "ls":
		fmt.Fprint(s.out, Pretty(s.program.Root()))

	case "show":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "usage: show <name>")
			break
		}
		obj, err := s.resolve(fields[1])
		if err != nil {
			fmt.Fprintln(s.out, err)
			break
		}
		fmt.Fprint(s.out, Pretty(obj))

	case "fire":
		if len(fields) < 2 || !strings.HasPrefix(fields[1], "#") {
			fmt.Fprintln(s.out, "usage: fire <#action> [key=name...]")
			break
		}
		args := make(ast.Args)
		for _, pair := range fields[2:] {
			key, name, ok := strings.Cut(pair, "=")
			if !ok {
				fmt.Fprintf(s.out, "bad argument %q, want key=name\n", pair)
				return false
			}
			obj, err := s.resolve(name)
			if err != nil {
				fmt.Fprintln(s.out, err)
				return false
			}
			args[key] = obj
		}
		fired, err := s.program.Registry().Action(fields[1]).Fire(args)
		if err != nil {
			fmt.Fprintln(s.out, err)
			break
		}
		if fired {
			fmt.Fprintln(s.out, "fired", fields[1])
		} else {
			fmt.Fprintln(s.out, fields[1], "not enabled by any powers")
		}

	case "tap":
		s.tap(ctx, s.program)

	case "reload":
		s.reload()

	case "exit", "quit":
		return true

	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", fields[0])
	}

	return false
}

func (s *shell) resolve(name string) (*ast.Object, error) {
	node, err := s.program.GetVariable(name)
	if err != nil {
		return nil, err
	}
	obj, ok := ast.EntityObject(node)
	if !ok {
		return nil, fmt.Errorf("%s does not name an entity", name)
	}
	return obj, nil
}

// reload rebuilds the program from the file, keeping the previous one on
// failure.
func (s *shell) reload() {
	program, err := s.load(s.filePath)
	if err != nil {
		s.logger.Error("reload failed", "path", s.filePath, "err", err)
		return
	}
	s.program = program
	fmt.Fprintln(s.out, "reloaded", s.filePath)
}
