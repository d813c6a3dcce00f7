package debugs

import (
	"fmt"
	"reflect"

	"github.com/dpcl-lang/dpcl/ast"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case bool:
		return starlark.Bool(v)

	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int64:
		return starlark.MakeInt64(v)

	case float64:
		return starlark.Float(v)

	case *ast.Object:
		return entityValue(v)

	case ast.Args:
		d := starlark.NewDict(len(v))
		for name, obj := range v {
			d.SetKey(starlark.String(name), entityValue(obj))
		}
		return d

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elems[i] = toStarlarkValue(e)
		}
		return starlark.NewList(elems)

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			d.SetKey(starlark.String(k), toStarlarkValue(val))
		}
		return d

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

// entityValue flattens an entity to a dict of its observable facets.
func entityValue(obj *ast.Object) starlark.Value {
	descriptors := obj.AllDescriptors()
	names := make([]starlark.Value, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, starlark.String(d.FullName()))
	}

	var children []starlark.Value
	for _, entry := range obj.Namespace().Entries() {
		if entry.Name == "*" {
			continue
		}
		if _, ok := ast.EntityObject(entry.Value); ok {
			children = append(children, starlark.String(entry.Name))
		}
	}

	d := starlark.NewDict(5)
	d.SetKey(starlark.String("name"), starlark.String(obj.Name()))
	d.SetKey(starlark.String("full_name"), starlark.String(obj.FullName()))
	d.SetKey(starlark.String("active"), starlark.Bool(obj.Active()))
	d.SetKey(starlark.String("descriptors"), starlark.NewList(names))
	d.SetKey(starlark.String("children"), starlark.NewList(children))
	return d
}
