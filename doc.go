// Package schemagen generates random values that conform to a restricted
// JSON Schema subset: type, numeric bounds, string length bounds, enum, array
// length and uniqueness, object required/optional properties, and nesting.
//
// Schemas are a closed set of Go types (IntegerSchema, NumberSchema,
// StringSchema, BooleanSchema, ArraySchema, ObjectSchema, UnknownSchema).
// They can be built in code, compiled from JSON or YAML documents, or
// reflected from Go types:
//
//	s := schemagen.Object(
//		schemagen.Prop("id", schemagen.Integer(1, 100)),
//		schemagen.Prop("name", schemagen.String(3, 10)),
//		schemagen.Prop("tags", schemagen.Array(schemagen.Enum("a", "b", "c")).Len(0, 3).Unique()),
//	).Require("id", "name")
//
//	v, err := schemagen.Generate(ctx, s)
//
//	g := schemagen.NewSeeded(42) // reproducible values
//	v, err = g.Generate(ctx, s)
//
// Errors are Issues carrying a JSON Pointer into the schema and a code; match
// them with errors.Is against ErrInvalidSchema, ErrDegenerateRange and
// ErrUnsatisfiableUniqueness.
//
// This is not a validator for external data, and $ref, oneOf,
// patternProperties, format and multipleOf are not supported.
package schemagen
