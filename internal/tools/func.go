package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

// Func adapts a typed Go function into a schema.Tool.
//
// The parameter schema is derived once from the fields of A:
//   - name comes from the `json` tag (falling back to the field name)
//   - description comes from the `description` tag
//   - a field with a `default` tag is optional, every other field is required
//
// Incoming arguments are decoded as JSON into a fresh A after the defaults
// have been applied.
type Func[A any] struct {
	schema   schema.ToolSchema
	defaults []fieldDefault
	fn       func(ctx context.Context, args A) (string, error)
}

type fieldDefault struct {
	index []int
	raw   string
}

// NewFunc builds a Func. It panics if A is not a struct or a default tag
// cannot be parsed, both of which are programming errors.
func NewFunc[A any](name, description string, fn func(ctx context.Context, args A) (string, error)) *Func[A] {
	var zero A
	typ := reflect.TypeOf(zero)
	if typ == nil || typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("tool %s: argument type must be a struct", name))
	}

	f := &Func[A]{
		schema: schema.ToolSchema{Name: name, Description: description},
		fn:     fn,
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		paramName := jsonName(field)
		if paramName == "-" {
			continue
		}
		raw, hasDefault := field.Tag.Lookup("default")
		if hasDefault {
			probe := reflect.New(typ).Elem()
			if err := setDefault(probe.Field(i), raw); err != nil {
				panic(fmt.Sprintf("tool %s: bad default for %s: %v", name, paramName, err))
			}
			f.defaults = append(f.defaults, fieldDefault{index: field.Index, raw: raw})
		}
		f.schema.Params = append(f.schema.Params, schema.ParamSchema{
			Name:        paramName,
			Type:        paramType(field.Type),
			Required:    !hasDefault,
			Description: field.Tag.Get("description"),
		})
	}
	return f
}

// Schema implements schema.Tool.
func (f *Func[A]) Schema() schema.ToolSchema { return f.schema }

// Execute implements schema.Tool.
func (f *Func[A]) Execute(ctx context.Context, args map[string]any) (string, error) {
	for _, p := range f.schema.Params {
		if _, ok := args[p.Name]; p.Required && !ok {
			return "", fmt.Errorf("missing required parameter '%s'", p.Name)
		}
	}

	var a A
	v := reflect.ValueOf(&a).Elem()
	for _, d := range f.defaults {
		if err := setDefault(v.FieldByIndex(d.index), d.raw); err != nil {
			return "", err
		}
	}

	if len(args) > 0 {
		data, err := json.Marshal(args)
		if err != nil {
			return "", fmt.Errorf("encode arguments: %w", err)
		}
		if err := json.Unmarshal(data, &a); err != nil {
			return "", fmt.Errorf("decode arguments: %w", err)
		}
	}
	return f.fn(ctx, a)
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

// paramType maps a Go type to the tool type vocabulary; anything
// unrecognised is presented as a string.
func paramType(t reflect.Type) schema.ParamType {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return schema.TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return schema.TypeInteger
	case reflect.Float32, reflect.Float64:
		return schema.TypeNumber
	case reflect.Bool:
		return schema.TypeBoolean
	case reflect.Slice, reflect.Array:
		return schema.TypeArray
	case reflect.Map, reflect.Struct:
		return schema.TypeObject
	default:
		return schema.TypeString
	}
}

func setDefault(v reflect.Value, raw string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		v.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		v.SetBool(b)
	default:
		return json.Unmarshal([]byte(raw), v.Addr().Interface())
	}
	return nil
}
