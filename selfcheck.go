package schemagen

import (
	"context"
	"fmt"
	"strings"
)

// CheckResult is the outcome of one named self check.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

type selfCheck struct {
	name   string
	schema Schema
	verify func(v any) bool
}

func selfChecks() []selfCheck {
	return []selfCheck{
		{
			name:   "Integer generation test",
			schema: Integer(10, 20),
			verify: func(v any) bool {
				n, ok := v.(int64)
				return ok && n >= 10 && n <= 20
			},
		},
		{
			name:   "Number generation test",
			schema: Number(1.5, 2.5),
			verify: func(v any) bool {
				f, ok := v.(float64)
				return ok && f >= 1.5 && f < 2.5
			},
		},
		{
			name:   "String generation test",
			schema: String(5, 10),
			verify: func(v any) bool {
				s, ok := v.(string)
				return ok && len(s) >= 5 && len(s) <= 10 && strings.Trim(s, alphabet) == ""
			},
		},
		{
			name:   "Enum generation test",
			schema: &StringSchema{MinLength: intPtr(50), MaxLength: intPtr(60), Enum: []string{"red", "green", "blue"}},
			verify: func(v any) bool {
				s, _ := v.(string)
				return s == "red" || s == "green" || s == "blue"
			},
		},
		{
			name:   "Boolean generation test",
			schema: Boolean(),
			verify: func(v any) bool {
				_, ok := v.(bool)
				return ok
			},
		},
		{
			name: "Object generation test",
			schema: Object(
				Prop("id", Integer(1, 100)),
				Prop("name", String(3, 10)),
			).Require("id", "name"),
			verify: func(v any) bool {
				m, ok := v.(map[string]any)
				if !ok {
					return false
				}
				id, ok := m["id"].(int64)
				if !ok || id < 1 || id > 100 {
					return false
				}
				name, ok := m["name"].(string)
				return ok && len(name) >= 3 && len(name) <= 10
			},
		},
		{
			name:   "Unique array generation test",
			schema: Array(Integer(1, 10)).Len(5, 5).Unique(),
			verify: func(v any) bool {
				arr, ok := v.([]any)
				if !ok || len(arr) != 5 {
					return false
				}
				seen := map[int64]bool{}
				for _, e := range arr {
					n, ok := e.(int64)
					if !ok || n < 1 || n > 10 || seen[n] {
						return false
					}
					seen[n] = true
				}
				return true
			},
		},
	}
}

// RunSelfChecks generates a value for each built-in example schema and
// reports whether it satisfies the schema's constraints. An error or panic in
// one check becomes a failing result named "Error during tests: <message>";
// the remaining checks still run. A nil g uses a randomly seeded Generator.
func RunSelfChecks(ctx context.Context, g *Generator) []CheckResult {
	if g == nil {
		g = New(Options{})
	}
	checks := selfChecks()
	out := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		out = append(out, runCheck(ctx, g, c))
	}
	return out
}

func runCheck(ctx context.Context, g *Generator, c selfCheck) (res CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			res = CheckResult{Name: fmt.Sprintf("Error during tests: %v", r)}
		}
	}()
	v, err := g.Generate(ctx, c.schema)
	if err != nil {
		return CheckResult{Name: "Error during tests: " + err.Error()}
	}
	return CheckResult{Name: c.name, Passed: c.verify(v)}
}

func intPtr(n int) *int { return &n }
