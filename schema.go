package schemagen

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	js "github.com/reoring/schemagen/jsonschema"
)

// Kind identifies a schema variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindInteger
	KindNumber
	KindString
	KindBoolean
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Default bounds substituted for absent schema fields before sampling.
const (
	DefaultMinimum   = 0
	DefaultMaximum   = 100
	DefaultMinLength = 3
	DefaultMaxLength = 10
	DefaultMinItems  = 0
	DefaultMaxItems  = 5
)

// Schema is a closed set of variants: *IntegerSchema, *NumberSchema,
// *StringSchema, *BooleanSchema, *ArraySchema, *ObjectSchema and
// *UnknownSchema. Nil bound pointers mean the bound is absent.
type Schema interface {
	Kind() Kind
	// JSONSchema projects the schema into its document representation.
	JSONSchema() *js.Schema
	isSchema()
}

// IntegerSchema draws integers uniformly over [Minimum, Maximum].
type IntegerSchema struct {
	Minimum *int64
	Maximum *int64
}

// NumberSchema draws floats uniformly over [Minimum, Maximum).
type NumberSchema struct {
	Minimum *float64
	Maximum *float64
}

// StringSchema draws a member of Enum when it is non-empty, otherwise an
// alphanumeric string with a length in [MinLength, MaxLength].
type StringSchema struct {
	MinLength *int
	MaxLength *int
	Enum      []string
}

type BooleanSchema struct{}

// ArraySchema draws between MinItems and MaxItems elements from Items.
type ArraySchema struct {
	Items       Schema
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
}

// ObjectSchema declares named properties in order. Names listed in Required
// are always generated; the others appear with probability 0.5.
type ObjectSchema struct {
	Properties *orderedmap.OrderedMap[string, Schema]
	Required   []string
}

// UnknownSchema stands for a missing or unrecognized type and generates nil.
type UnknownSchema struct {
	Type string
}

func (*IntegerSchema) Kind() Kind { return KindInteger }
func (*NumberSchema) Kind() Kind  { return KindNumber }
func (*StringSchema) Kind() Kind  { return KindString }
func (*BooleanSchema) Kind() Kind { return KindBoolean }
func (*ArraySchema) Kind() Kind   { return KindArray }
func (*ObjectSchema) Kind() Kind  { return KindObject }
func (*UnknownSchema) Kind() Kind { return KindUnknown }

func (*IntegerSchema) isSchema() {}
func (*NumberSchema) isSchema()  {}
func (*StringSchema) isSchema()  {}
func (*BooleanSchema) isSchema() {}
func (*ArraySchema) isSchema()   {}
func (*ObjectSchema) isSchema()  {}
func (*UnknownSchema) isSchema() {}

// ---- constructors ----

// Integer returns an integer schema over [min, max].
func Integer(min, max int64) *IntegerSchema { return &IntegerSchema{Minimum: &min, Maximum: &max} }

// Number returns a number schema over [min, max).
func Number(min, max float64) *NumberSchema { return &NumberSchema{Minimum: &min, Maximum: &max} }

// String returns a string schema with lengths in [minLen, maxLen].
func String(minLen, maxLen int) *StringSchema {
	return &StringSchema{MinLength: &minLen, MaxLength: &maxLen}
}

// Enum returns a string schema choosing among values.
func Enum(values ...string) *StringSchema { return &StringSchema{Enum: values} }

func Boolean() *BooleanSchema { return &BooleanSchema{} }

// Unknown returns the schema for a missing type.
func Unknown() *UnknownSchema { return &UnknownSchema{} }

// Array returns an array schema of items with default length bounds.
func Array(items Schema) *ArraySchema { return &ArraySchema{Items: items} }

// Len sets the length bounds.
func (a *ArraySchema) Len(min, max int) *ArraySchema {
	a.MinItems, a.MaxItems = &min, &max
	return a
}

// Unique requires pairwise structurally distinct elements.
func (a *ArraySchema) Unique() *ArraySchema { a.UniqueItems = true; return a }

// Property is a named property schema used by Object.
type Property struct {
	Name   string
	Schema Schema
}

// Prop pairs a property name with its schema.
func Prop(name string, s Schema) Property { return Property{Name: name, Schema: s} }

// Object returns an object schema with properties in the given order. A
// repeated name keeps its first position and takes the last schema.
func Object(props ...Property) *ObjectSchema {
	m := orderedmap.New[string, Schema](len(props))
	for _, p := range props {
		m.Set(p.Name, p.Schema)
	}
	return &ObjectSchema{Properties: m}
}

// Require marks property names as required.
func (o *ObjectSchema) Require(names ...string) *ObjectSchema {
	o.Required = append(o.Required, names...)
	return o
}

func (o *ObjectSchema) isRequired(name string) bool {
	for _, r := range o.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ---- bounds with defaults applied ----

func (s *IntegerSchema) bounds() (int64, int64) {
	lo, hi := int64(DefaultMinimum), int64(DefaultMaximum)
	if s.Minimum != nil {
		lo = *s.Minimum
	}
	if s.Maximum != nil {
		hi = *s.Maximum
	}
	return lo, hi
}

func (s *NumberSchema) bounds() (float64, float64) {
	lo, hi := float64(DefaultMinimum), float64(DefaultMaximum)
	if s.Minimum != nil {
		lo = *s.Minimum
	}
	if s.Maximum != nil {
		hi = *s.Maximum
	}
	return lo, hi
}

func (s *StringSchema) bounds() (int, int) {
	return intOr(s.MinLength, DefaultMinLength), intOr(s.MaxLength, DefaultMaxLength)
}

func (s *ArraySchema) bounds() (int, int) {
	return intOr(s.MinItems, DefaultMinItems), intOr(s.MaxItems, DefaultMaxItems)
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// ---- JSON Schema projection ----

func (s *IntegerSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "integer"}
	if s.Minimum != nil {
		out.Minimum = js.Ptr(float64(*s.Minimum))
	}
	if s.Maximum != nil {
		out.Maximum = js.Ptr(float64(*s.Maximum))
	}
	return out
}

func (s *NumberSchema) JSONSchema() *js.Schema {
	return &js.Schema{Type: "number", Minimum: s.Minimum, Maximum: s.Maximum}
}

func (s *StringSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "string", MinLength: s.MinLength, MaxLength: s.MaxLength}
	for _, e := range s.Enum {
		out.Enum = append(out.Enum, e)
	}
	return out
}

func (*BooleanSchema) JSONSchema() *js.Schema { return &js.Schema{Type: "boolean"} }

func (s *ArraySchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "array", MinItems: s.MinItems, MaxItems: s.MaxItems, UniqueItems: s.UniqueItems}
	if s.Items != nil {
		out.Items = s.Items.JSONSchema()
	}
	return out
}

func (s *ObjectSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "object"}
	if s.Properties != nil {
		out.Properties = js.NewProperties()
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			var child *js.Schema
			if el.Value != nil {
				child = el.Value.JSONSchema()
			}
			out.Properties.Set(el.Key, child)
		}
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	return out
}

func (s *UnknownSchema) JSONSchema() *js.Schema { return &js.Schema{Type: s.Type} }
