package schemagen_test

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/schemagen"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func bounds64(lo, hi *int64) (int64, int64) {
	a, b := int64(schemagen.DefaultMinimum), int64(schemagen.DefaultMaximum)
	if lo != nil {
		a = *lo
	}
	if hi != nil {
		b = *hi
	}
	return a, b
}

func orDefault(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// conforms checks a generated value against the schema it came from.
func conforms(s schemagen.Schema, v any) error {
	switch t := s.(type) {
	case *schemagen.IntegerSchema:
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("want int64, got %T", v)
		}
		lo, hi := bounds64(t.Minimum, t.Maximum)
		if n < lo || n > hi {
			return fmt.Errorf("%d outside [%d,%d]", n, lo, hi)
		}
	case *schemagen.NumberSchema:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("want float64, got %T", v)
		}
		lo, hi := float64(schemagen.DefaultMinimum), float64(schemagen.DefaultMaximum)
		if t.Minimum != nil {
			lo = *t.Minimum
		}
		if t.Maximum != nil {
			hi = *t.Maximum
		}
		if lo == hi {
			if f != lo {
				return fmt.Errorf("%v != %v", f, lo)
			}
			return nil
		}
		if f < lo || f >= hi {
			return fmt.Errorf("%v outside [%v,%v)", f, lo, hi)
		}
	case *schemagen.StringSchema:
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("want string, got %T", v)
		}
		if len(t.Enum) > 0 {
			for _, e := range t.Enum {
				if e == str {
					return nil
				}
			}
			return fmt.Errorf("%q not in enum %v", str, t.Enum)
		}
		lo := orDefault(t.MinLength, schemagen.DefaultMinLength)
		hi := orDefault(t.MaxLength, schemagen.DefaultMaxLength)
		if len(str) < lo || len(str) > hi {
			return fmt.Errorf("len(%q) outside [%d,%d]", str, lo, hi)
		}
		if strings.Trim(str, alphabet) != "" {
			return fmt.Errorf("%q has characters outside the alphabet", str)
		}
	case *schemagen.BooleanSchema:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("want bool, got %T", v)
		}
	case *schemagen.UnknownSchema:
		if v != nil {
			return fmt.Errorf("want nil, got %v", v)
		}
	case *schemagen.ArraySchema:
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("want []any, got %T", v)
		}
		lo := orDefault(t.MinItems, schemagen.DefaultMinItems)
		hi := orDefault(t.MaxItems, schemagen.DefaultMaxItems)
		if len(arr) < lo || len(arr) > hi {
			return fmt.Errorf("len %d outside [%d,%d]", len(arr), lo, hi)
		}
		seen := map[string]bool{}
		for i, e := range arr {
			if err := conforms(t.Items, e); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
			if t.UniqueItems {
				b, _ := json.Marshal(e)
				if seen[string(b)] {
					return fmt.Errorf("[%d]: duplicate %s", i, b)
				}
				seen[string(b)] = true
			}
		}
	case *schemagen.ObjectSchema:
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("want map[string]any, got %T", v)
		}
		for _, r := range t.Required {
			if _, ok := m[r]; !ok {
				return fmt.Errorf("missing required %q", r)
			}
		}
		for k, e := range m {
			ps, ok := t.Properties.Get(k)
			if !ok {
				return fmt.Errorf("undeclared property %q", k)
			}
			if err := conforms(ps, e); err != nil {
				return fmt.Errorf(".%s: %w", k, err)
			}
		}
	default:
		return fmt.Errorf("unexpected schema %T", s)
	}
	return nil
}
