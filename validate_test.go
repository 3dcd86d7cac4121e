package schemagen_test

import (
	"errors"
	"math"
	"testing"

	"github.com/reoring/schemagen"
)

func TestValidate_WellFormed(t *testing.T) {
	s := schemagen.Object(
		schemagen.Prop("id", schemagen.Integer(1, 1)),
		schemagen.Prop("tags", schemagen.Array(schemagen.Enum("a", "b")).Len(0, 2).Unique()),
		schemagen.Prop("anything", schemagen.Unknown()),
	).Require("id")
	if err := schemagen.Validate(s); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestValidate_ReportsPathAndCode(t *testing.T) {
	neg := -1
	cases := []struct {
		name string
		s    schemagen.Schema
		code string
		path string
	}{
		{"nil root", nil, schemagen.CodeInvalidSchema, "/"},
		{"typed nil", (*schemagen.IntegerSchema)(nil), schemagen.CodeInvalidSchema, "/"},
		{"missing properties", &schemagen.ObjectSchema{}, schemagen.CodeInvalidSchema, "/properties"},
		{"missing items", &schemagen.ArraySchema{}, schemagen.CodeInvalidSchema, "/items"},
		{"nil property", schemagen.Object(schemagen.Prop("a/b", nil)), schemagen.CodeInvalidSchema, "/properties/a~1b"},
		{"undeclared required", schemagen.Object(schemagen.Prop("a", schemagen.Boolean())).Require("a", "zzz"), schemagen.CodeInvalidSchema, "/required/1"},
		{"negative length", &schemagen.StringSchema{MinLength: &neg}, schemagen.CodeInvalidSchema, "/"},
		{"nan bound", schemagen.Number(math.NaN(), 1), schemagen.CodeInvalidSchema, "/"},
		{"inf bound", schemagen.Number(0, math.Inf(1)), schemagen.CodeInvalidSchema, "/"},
		{"integer range", schemagen.Integer(3, 2), schemagen.CodeDegenerateRange, "/"},
		{"default max below min", &schemagen.IntegerSchema{Minimum: ptr(int64(500))}, schemagen.CodeDegenerateRange, "/"},
		{"number range", schemagen.Number(1, 0.5), schemagen.CodeDegenerateRange, "/"},
		{"array range", schemagen.Array(schemagen.Boolean()).Len(4, 1), schemagen.CodeDegenerateRange, "/"},
		{"nested range", schemagen.Object(schemagen.Prop("x", schemagen.Array(schemagen.String(9, 1)))), schemagen.CodeDegenerateRange, "/properties/x/items"},
		{"enum uniqueness", schemagen.Array(schemagen.Enum("a", "a", "b")).Len(3, 3).Unique(), schemagen.CodeUnsatisfiableUniqueness, "/"},
		{"null uniqueness", schemagen.Array(schemagen.Unknown()).Len(2, 2).Unique(), schemagen.CodeUnsatisfiableUniqueness, "/"},
		{"invalid utf-8 enum", schemagen.Array(schemagen.Enum("ok", "\xff")).Len(2, 2).Unique(), schemagen.CodeInvalidSchema, "/items/enum/1"},
		{"invalid utf-8 property", schemagen.Object(schemagen.Prop("\xfe", schemagen.Boolean())), schemagen.CodeInvalidSchema, "/properties/\xfe"},
		{"items above size limit", schemagen.Array(schemagen.Boolean()).Len(0, schemagen.DefaultSizeLimit+1), schemagen.CodeInvalidSchema, "/"},
		{"length above size limit", schemagen.Object(schemagen.Prop("s", schemagen.String(0, schemagen.DefaultSizeLimit+1))), schemagen.CodeInvalidSchema, "/properties/s"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := schemagen.Validate(tc.s)
			iss, ok := schemagen.AsIssues(err)
			if !ok || len(iss) == 0 {
				t.Fatalf("expected issues, got %v", err)
			}
			if iss[0].Code != tc.code || iss[0].Path != tc.path {
				t.Fatalf("got %s at %s, want %s at %s", iss[0].Code, iss[0].Path, tc.code, tc.path)
			}
			if iss[0].Message == "" {
				t.Fatalf("empty message")
			}
		})
	}
}

func TestValidate_EnumIgnoresLengthBounds(t *testing.T) {
	s := &schemagen.StringSchema{MinLength: ptr(9), MaxLength: ptr(1), Enum: []string{"ok"}}
	if err := schemagen.Validate(s); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestValidate_CollectsEveryIssue(t *testing.T) {
	s := schemagen.Object(
		schemagen.Prop("a", schemagen.Integer(2, 1)),
		schemagen.Prop("b", schemagen.String(2, 1)),
	).Require("c")
	iss, _ := schemagen.AsIssues(schemagen.Validate(s))
	if len(iss) != 3 {
		t.Fatalf("want 3 issues, got %v", iss)
	}
	err := error(iss)
	if !errors.Is(err, schemagen.ErrDegenerateRange) || !errors.Is(err, schemagen.ErrInvalidSchema) {
		t.Fatalf("errors.Is mismatch: %v", err)
	}
	if errors.Is(err, schemagen.ErrUnsatisfiableUniqueness) {
		t.Fatalf("unexpected uniqueness match")
	}
}

func TestValidate_DetectsCycles(t *testing.T) {
	node := schemagen.Object(schemagen.Prop("id", schemagen.Integer(0, 9)))
	node.Properties.Set("children", schemagen.Array(node))
	err := schemagen.Validate(node)
	if !errors.Is(err, schemagen.ErrInvalidSchema) {
		t.Fatalf("want invalid schema, got %v", err)
	}
	iss, _ := schemagen.AsIssues(err)
	if iss[0].Path != "/properties/children/items" {
		t.Fatalf("path %s", iss[0].Path)
	}
}

func TestValidate_SharedSubtreeIsNotACycle(t *testing.T) {
	shared := schemagen.Array(schemagen.Boolean()).Len(0, 2)
	s := schemagen.Object(schemagen.Prop("a", shared), schemagen.Prop("b", shared))
	if err := schemagen.Validate(s); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := schemagen.Issues{
		{Path: "/a", Code: schemagen.CodeInvalidSchema},
		{Path: "/b", Code: schemagen.CodeDegenerateRange},
		{Path: "/c", Code: schemagen.CodeDegenerateRange},
		{Path: "/d", Code: schemagen.CodeEmptyChoice},
	}
	want := "invalid_schema at /a; degenerate_range at /b; degenerate_range at /c; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("got %q", got)
	}
}

func ptr[T any](v T) *T { return &v }

func TestValidate_SizeLimitAtBoundary(t *testing.T) {
	if err := schemagen.Validate(schemagen.Array(schemagen.Boolean()).Len(0, schemagen.DefaultSizeLimit)); err != nil {
		t.Fatalf("limit itself should be accepted: %v", err)
	}
	g := schemagen.New(schemagen.Options{SizeLimit: 8})
	iss, _ := schemagen.AsIssues(g.Validate(schemagen.String(0, 9)))
	if len(iss) != 1 || iss[0].Params["limit"] != 8 {
		t.Fatalf("issues=%v", iss)
	}
}
