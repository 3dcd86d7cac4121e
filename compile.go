package schemagen

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	js "github.com/reoring/schemagen/jsonschema"
)

// Compile converts a schema document into the typed model and validates the
// result. A nil document, an object without properties, non-integral integer
// bounds and non-string enum members are reported as ErrInvalidSchema. The
// size limit is not checked here; the Generator applies its own.
func Compile(doc *js.Schema) (Schema, error) {
	c := &compiler{}
	s := c.node(doc, rootPath())
	if len(c.iss) > 0 {
		return nil, c.iss
	}
	if err := validate(s, math.MaxInt); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseJSON decodes and compiles a JSON schema document.
func ParseJSON(data []byte) (Schema, error) {
	doc, err := js.ParseJSON(data)
	if err != nil {
		return nil, documentError(err)
	}
	return Compile(doc)
}

// ParseYAML decodes and compiles a YAML schema document.
func ParseYAML(data []byte) (Schema, error) {
	doc, err := js.ParseYAML(data)
	if err != nil {
		return nil, documentError(err)
	}
	return Compile(doc)
}

// LoadFile reads a schema document, choosing the decoder by extension:
// .yaml and .yml are YAML, anything else is JSON.
func LoadFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemagen: reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

func documentError(err error) error {
	reason := "malformed document"
	if errors.Is(err, js.ErrNotObject) {
		reason = "schema must be an object"
	}
	it := rootPath().Issue(CodeInvalidSchema, "reason", reason)
	it.Cause = err
	return Issues{it}
}

type compiler struct {
	iss Issues
}

func (c *compiler) fail(p pathRef, reason string, kv ...any) {
	c.iss = AppendIssues(c.iss, p.Issue(CodeInvalidSchema, append([]any{"reason", reason}, kv...)...))
}

func (c *compiler) node(doc *js.Schema, p pathRef) Schema {
	if doc == nil {
		c.fail(p, "missing schema")
		return nil
	}
	switch doc.Type {
	case "integer":
		s := &IntegerSchema{}
		s.Minimum = c.integral(doc.Minimum, p.Field("minimum"))
		s.Maximum = c.integral(doc.Maximum, p.Field("maximum"))
		return s
	case "number":
		return &NumberSchema{Minimum: doc.Minimum, Maximum: doc.Maximum}
	case "string":
		s := &StringSchema{MinLength: doc.MinLength, MaxLength: doc.MaxLength}
		for i, e := range doc.Enum {
			str, ok := e.(string)
			if !ok {
				c.fail(p.Field("enum").Index(i), "enum member must be a string")
				continue
			}
			s.Enum = append(s.Enum, str)
		}
		return s
	case "boolean":
		return &BooleanSchema{}
	case "array":
		if doc.Items == nil {
			c.fail(p.Field("items"), "array requires items")
			return nil
		}
		return &ArraySchema{
			Items:       c.node(doc.Items, p.Field("items")),
			MinItems:    doc.MinItems,
			MaxItems:    doc.MaxItems,
			UniqueItems: doc.UniqueItems,
		}
	case "object":
		if doc.Properties == nil {
			c.fail(p.Field("properties"), "object requires properties")
			return nil
		}
		props := orderedmap.New[string, Schema](doc.Properties.Len())
		for el := doc.Properties.Oldest(); el != nil; el = el.Next() {
			props.Set(el.Key, c.node(el.Value, p.Property(el.Key)))
		}
		return &ObjectSchema{Properties: props, Required: append([]string(nil), doc.Required...)}
	default:
		return &UnknownSchema{Type: doc.Type}
	}
}

func (c *compiler) integral(f *float64, p pathRef) *int64 {
	if f == nil {
		return nil
	}
	if math.Trunc(*f) != *f || *f < math.MinInt64 || *f >= math.MaxInt64 {
		c.fail(p, "integer bound must be an integral value", "value", *f)
		return nil
	}
	n := int64(*f)
	return &n
}
