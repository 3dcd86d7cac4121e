package jsonschema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Schema is the document form of a generator schema: the subset of JSON
// Schema keywords the generator understands. Keywords outside the subset are
// ignored on decode.
type Schema struct {
	Type string `json:"type,omitempty"`

	// Integer / number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// String
	MinLength *int  `json:"minLength,omitempty"`
	MaxLength *int  `json:"maxLength,omitempty"`
	Enum      []any `json:"enum,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty"`
	MinItems    *int    `json:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`

	// Object
	Properties *orderedmap.OrderedMap[string, *Schema] `json:"properties,omitempty"`
	Required   []string                                `json:"required,omitempty"`
}

// NewProperties returns an empty ordered property map.
func NewProperties() *orderedmap.OrderedMap[string, *Schema] {
	return orderedmap.New[string, *Schema]()
}

// Ptr returns a pointer to v. It keeps bound literals short at call sites.
func Ptr[T any](v T) *T { return &v }
