package schemagen

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	js "github.com/reoring/schemagen/jsonschema"
)

// Reflect derives a schema from the Go type of v using json and jsonschema
// struct tags (for example `jsonschema:"minimum=1,maximum=10"`), so sample
// data can be generated for existing types. v must be a struct or a pointer
// to one. Fields without omitempty are required. Other roots, recursive
// types, and fields without a generator counterpart such as maps or
// channels fail with ErrInvalidSchema.
func Reflect(v any) (s Schema, err error) {
	t := structType(v)
	if t == nil {
		return nil, Issues{rootPath().Issue(CodeInvalidSchema, "reason", fmt.Sprintf("cannot reflect %T: root must be a struct", v))}
	}
	if recursiveType(t, map[reflect.Type]bool{}) {
		return nil, Issues{rootPath().Issue(CodeInvalidSchema, "reason", fmt.Sprintf("cannot reflect %s: recursive type", t))}
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, Issues{rootPath().Issue(CodeInvalidSchema, "reason", fmt.Sprintf("cannot reflect %s: %v", t, r))}
		}
	}()
	r := &jsonschema.Reflector{
		DoNotReference: true, // inline every type, including the root
		Anonymous:      true, // no $id
	}
	doc, err := fromReflected(r.ReflectFromType(t), rootPath())
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}

// ReflectType is Reflect for a type parameter.
func ReflectType[T any]() (Schema, error) { return Reflect(new(T)) }

// structType returns the struct type behind v and any pointers, or nil.
func structType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

// recursiveType reports whether t reaches itself through exported fields,
// pointers or container elements.
func recursiveType(t reflect.Type, active map[reflect.Type]bool) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
		return recursiveType(t.Elem(), active)
	case reflect.Struct:
	default:
		return false
	}
	if active[t] {
		return true
	}
	active[t] = true
	defer delete(active, t)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() && !f.Anonymous {
			continue
		}
		if recursiveType(f.Type, active) {
			return true
		}
	}
	return false
}

// fromReflected maps an invopop schema onto the document form.
func fromReflected(s *jsonschema.Schema, p pathRef) (*js.Schema, error) {
	if s == nil {
		return nil, nil
	}
	if s.Ref != "" || len(s.OneOf) > 0 || len(s.AnyOf) > 0 || len(s.AllOf) > 0 {
		return nil, Issues{p.Issue(CodeInvalidSchema, "reason", "composite schemas are not supported")}
	}
	out := &js.Schema{
		Type:        s.Type,
		Enum:        s.Enum,
		UniqueItems: s.UniqueItems,
		Required:    s.Required,
	}
	var err error
	if out.Minimum, err = number(s.Minimum, p.Field("minimum")); err != nil {
		return nil, err
	}
	if out.Maximum, err = number(s.Maximum, p.Field("maximum")); err != nil {
		return nil, err
	}
	out.MinLength = length(s.MinLength)
	out.MaxLength = length(s.MaxLength)
	out.MinItems = length(s.MinItems)
	out.MaxItems = length(s.MaxItems)
	if s.Items != nil {
		if out.Items, err = fromReflected(s.Items, p.Field("items")); err != nil {
			return nil, err
		}
	}
	if s.Properties != nil {
		out.Properties = js.NewProperties()
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			child, err := fromReflected(el.Value, p.Property(el.Key))
			if err != nil {
				return nil, err
			}
			out.Properties.Set(el.Key, child)
		}
	}
	return out, nil
}

func number(n json.Number, p pathRef) (*float64, error) {
	if n == "" {
		return nil, nil
	}
	f, err := n.Float64()
	if err != nil {
		it := p.Issue(CodeInvalidSchema, "reason", fmt.Sprintf("bad number %q", n))
		it.Cause = err
		return nil, Issues{it}
	}
	return &f, nil
}

func length(n *uint64) *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}
