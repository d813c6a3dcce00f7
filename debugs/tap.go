package debugs

import (
	"context"
	"fmt"

	"github.com/dpcl-lang/dpcl/ast"
	"github.com/dpcl-lang/dpcl/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap drops into an interactive starlark prompt scoped to a program. The
// program's global entities are exposed as dicts, next to a few probing
// builtins.
type Tap func(ctx context.Context, program *ast.Program)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, program *ast.Program) {
		logger.InfoContext(ctx, "tap: "+program.Name())
		defer func() {
			logger.InfoContext(ctx, "tap end: "+program.Name())
		}()

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, Globals(program, logger))
	}
}

// Globals builds the starlark environment for a program tap.
func Globals(program *ast.Program, logger logs.Logger) starlark.StringDict {

	resolve := func(name string) (*ast.Object, error) {
		node, err := program.GetVariable(name)
		if err != nil {
			return nil, err
		}
		obj, ok := ast.EntityObject(node)
		if !ok {
			return nil, fmt.Errorf("%s does not name an entity", name)
		}
		return obj, nil
	}

	mappings := make(starlark.StringDict)
	for _, entry := range program.Root().Namespace().Entries() {
		if entry.Name == "*" {
			continue
		}
		if obj, ok := ast.EntityObject(entry.Value); ok {
			mappings[entry.Name] = entityValue(obj)
		}
	}

	mappings["active"] = starlark.NewBuiltin("active",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
				return nil, err
			}
			obj, err := resolve(name)
			if err != nil {
				return nil, err
			}
			return starlark.Bool(obj.Active()), nil
		})

	mappings["has"] = starlark.NewBuiltin("has",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var entity, descriptor string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &entity, &descriptor); err != nil {
				return nil, err
			}
			obj, err := resolve(entity)
			if err != nil {
				return nil, err
			}
			d, err := resolve(descriptor)
			if err != nil {
				return nil, err
			}
			return starlark.Bool(obj.HasDescriptor(d)), nil
		})

	mappings["descriptors"] = starlark.NewBuiltin("descriptors",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
				return nil, err
			}
			obj, err := resolve(name)
			if err != nil {
				return nil, err
			}
			var names []starlark.Value
			for _, d := range obj.AllDescriptors() {
				names = append(names, starlark.String(d.FullName()))
			}
			return starlark.NewList(names), nil
		})

	// fire("#action", holder="alice", ...): keyword arguments name the
	// entities forwarded as action arguments.
	mappings["fire"] = starlark.NewBuiltin("fire",
		func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var action string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, nil, 1, &action); err != nil {
				return nil, err
			}
			fireArgs := make(ast.Args)
			for _, kv := range kwargs {
				key, _ := starlark.AsString(kv[0])
				name, ok := starlark.AsString(kv[1])
				if !ok {
					return nil, fmt.Errorf("%s: argument %s must name an entity, got %s", b.Name(), key, kv[1].Type())
				}
				obj, err := resolve(name)
				if err != nil {
					return nil, err
				}
				fireArgs[key] = obj
			}
			fired, err := program.Registry().Action(action).Fire(fireArgs)
			if err != nil {
				return nil, err
			}
			if !fired {
				logger.Info("action not enabled", "action", action)
			}
			return starlark.Bool(fired), nil
		})

	return mappings
}
