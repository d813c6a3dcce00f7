package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/dpcl-lang/dpcl/ast"
	"github.com/dpcl-lang/dpcl/logs"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	getSchema func() (cue.Value, error)
}

func NewLoader() Loader {
	return Loader{

		getSchema: sync.OnceValues(func() (cue.Value, error) {
			ctx := cuecontext.New()
			schema := ctx.CompileString(documentSchema)
			if err := schema.Err(); err != nil {
				return cue.Value{}, err
			}
			return schema.LookupPath(cue.ParsePath("#Document")), nil
		}),
	}
}

// LoadDocument reads and decodes a model file, picking the codec from the
// file extension, then validates the decoded form against the schema.
func (l Loader) LoadDocument(filePath string) (any, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var doc any
	switch strings.ToLower(filepath.Ext(filePath)) {

	case ".json":
		if err := json.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}

	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}

	case ".cue":
		ctx := cuecontext.New()
		value := ctx.CompileBytes(content, cue.Filename(filePath))
		if err := value.Err(); err != nil {
			return nil, err
		}
		if err := value.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}

	default:
		return nil, fmt.Errorf("%s: unsupported document format", filePath)
	}

	if err := l.Validate(filePath, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (l Loader) Validate(filePath string, doc any) error {
	schema, err := l.getSchema()
	if err != nil {
		return err
	}
	value := schema.Context().Encode(doc)
	if err := value.Err(); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	if err := schema.Unify(value).Validate(); err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	return nil
}

// LoadProgram builds and executes a program from a model file.
type LoadProgram func(filePath string) (*ast.Program, error)

func (Module) LoadProgram(logger logs.Logger) LoadProgram {
	loader := NewLoader()
	return func(filePath string) (*ast.Program, error) {

		doc, err := loader.LoadDocument(filePath)
		if err != nil {
			return nil, err
		}

		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		program, err := ast.FromJSON(name, doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}
		program.SetLogger(logger)

		if err := program.Execute(); err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}

		return program, nil
	}
}
