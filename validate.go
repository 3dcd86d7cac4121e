package schemagen

import (
	"math"
	"unicode/utf8"
)

// Validate checks that s is a well-formed schema tree. It returns Issues
// listing every problem found, or nil.
//
// Besides structural checks (nil nodes, objects without properties, required
// names that are not declared, cycles) it rejects degenerate ranges, strings
// that are not valid UTF-8, maxItems or maxLength above DefaultSizeLimit,
// and unique arrays whose minItems exceeds the number of distinct values the
// items schema can produce.
func Validate(s Schema) error {
	return validate(s, DefaultSizeLimit)
}

func validate(s Schema, limit int) error {
	v := &validator{active: map[Schema]bool{}, limit: limit}
	v.walk(s, rootPath())
	if len(v.iss) > 0 {
		return v.iss
	}
	return nil
}

type validator struct {
	iss    Issues
	active map[Schema]bool
	limit  int
}

func (v *validator) add(it Issue) { v.iss = AppendIssues(v.iss, it) }

func (v *validator) walk(s Schema, p pathRef) {
	switch t := s.(type) {
	case nil:
		v.add(p.Issue(CodeInvalidSchema, "reason", "missing schema"))
	case *IntegerSchema:
		if t == nil {
			v.add(p.Issue(CodeInvalidSchema, "reason", "missing schema"))
			return
		}
		if lo, hi := t.bounds(); lo > hi {
			v.add(p.Issue(CodeDegenerateRange, "min", lo, "max", hi))
		}
	case *NumberSchema:
		if t == nil {
			v.add(p.Issue(CodeInvalidSchema, "reason", "missing schema"))
			return
		}
		lo, hi := t.bounds()
		if !isFinite(lo) || !isFinite(hi) {
			v.add(p.Issue(CodeInvalidSchema, "reason", "bounds must be finite"))
			return
		}
		if lo > hi {
			v.add(p.Issue(CodeDegenerateRange, "min", lo, "max", hi))
		}
	case *StringSchema:
		if t == nil {
			v.add(p.Issue(CodeInvalidSchema, "reason", "missing schema"))
			return
		}
		if len(t.Enum) > 0 {
			for i, e := range t.Enum {
				if !utf8.ValidString(e) {
					v.add(p.Field("enum").Index(i).Issue(CodeInvalidSchema, "reason", "enum member is not valid UTF-8"))
				}
			}
			return
		}
		lo, hi := t.bounds()
		v.lengths(p, lo, hi)
	case *BooleanSchema:
		if t == nil {
			v.add(p.Issue(CodeInvalidSchema, "reason", "missing schema"))
		}
	case *UnknownSchema:
		if t == nil {
			v.add(p.Issue(CodeInvalidSchema, "reason", "missing schema"))
		}
	case *ArraySchema:
		if t == nil {
			v.add(p.Issue(CodeInvalidSchema, "reason", "missing schema"))
			return
		}
		if !v.enter(t, p) {
			return
		}
		defer delete(v.active, t)
		lo, hi := t.bounds()
		v.lengths(p, lo, hi)
		if t.Items == nil {
			v.add(p.Field("items").Issue(CodeInvalidSchema, "reason", "array requires items"))
			return
		}
		before := len(v.iss)
		v.walk(t.Items, p.Field("items"))
		if len(v.iss) > before || !t.UniqueItems {
			return
		}
		if c := cardinality(t.Items); c != unbounded && uint64(max(lo, 0)) > c {
			v.add(p.Issue(CodeUnsatisfiableUniqueness, "minItems", lo, "distinct", c))
		}
	case *ObjectSchema:
		if t == nil {
			v.add(p.Issue(CodeInvalidSchema, "reason", "missing schema"))
			return
		}
		if !v.enter(t, p) {
			return
		}
		defer delete(v.active, t)
		if t.Properties == nil {
			v.add(p.Field("properties").Issue(CodeInvalidSchema, "reason", "object requires properties"))
			return
		}
		for el := t.Properties.Oldest(); el != nil; el = el.Next() {
			if !utf8.ValidString(el.Key) {
				v.add(p.Property(el.Key).Issue(CodeInvalidSchema, "reason", "property name is not valid UTF-8"))
				continue
			}
			v.walk(el.Value, p.Property(el.Key))
		}
		for i, name := range t.Required {
			if _, ok := t.Properties.Get(name); !ok {
				v.add(p.Field("required").Index(i).Issue(CodeInvalidSchema, "reason", "required property is not declared", "name", name))
			}
		}
	default:
		v.add(p.Issue(CodeInvalidSchema, "reason", "unsupported schema node"))
	}
}

// enter marks a container as being walked; it reports false on a cycle.
func (v *validator) enter(s Schema, p pathRef) bool {
	if v.active[s] {
		v.add(p.Issue(CodeInvalidSchema, "reason", "cyclic schema"))
		return false
	}
	v.active[s] = true
	return true
}

func (v *validator) lengths(p pathRef, lo, hi int) {
	if lo < 0 || hi < 0 {
		v.add(p.Issue(CodeInvalidSchema, "reason", "lengths must not be negative"))
		return
	}
	if lo > hi {
		v.add(p.Issue(CodeDegenerateRange, "min", lo, "max", hi))
		return
	}
	if hi > v.limit {
		v.add(p.Issue(CodeInvalidSchema, "reason", "length exceeds size limit", "max", hi, "limit", v.limit))
	}
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// unbounded marks a value space too large to count.
const unbounded = math.MaxUint64

// cardinality counts the distinct values s can produce, saturating at
// unbounded. It expects a validated, acyclic schema.
func cardinality(s Schema) uint64 {
	switch t := s.(type) {
	case *IntegerSchema:
		lo, hi := t.bounds()
		if lo > hi {
			return 0
		}
		return satAdd(uint64(hi)-uint64(lo), 1)
	case *NumberSchema:
		if lo, hi := t.bounds(); lo == hi {
			return 1
		}
		return unbounded
	case *StringSchema:
		if len(t.Enum) > 0 {
			seen := make(map[string]struct{}, len(t.Enum))
			for _, e := range t.Enum {
				seen[e] = struct{}{}
			}
			return uint64(len(seen))
		}
		lo, hi := t.bounds()
		var total uint64
		for l := lo; l <= hi && total != unbounded; l++ {
			total = satAdd(total, satPow(uint64(len(alphabet)), l))
		}
		return total
	case *BooleanSchema:
		return 2
	case *UnknownSchema:
		return 1
	case *ArraySchema:
		lo, hi := t.bounds()
		c := cardinality(t.Items)
		if t.UniqueItems {
			hi = int(min(uint64(hi), c))
			var total uint64
			for l := lo; l <= hi && total != unbounded; l++ {
				total = satAdd(total, permutations(c, l))
			}
			return total
		}
		if c <= 1 {
			if c == 0 {
				if lo == 0 {
					return 1
				}
				return 0
			}
			return uint64(hi - lo + 1)
		}
		var total uint64
		for l := lo; l <= hi && total != unbounded; l++ {
			total = satAdd(total, satPow(c, l))
		}
		return total
	case *ObjectSchema:
		total := uint64(1)
		for el := t.Properties.Oldest(); el != nil; el = el.Next() {
			c := cardinality(el.Value)
			if !t.isRequired(el.Key) {
				c = satAdd(c, 1)
			}
			total = satMul(total, c)
		}
		return total
	}
	return unbounded
}

func satAdd(a, b uint64) uint64 {
	if a > unbounded-b {
		return unbounded
	}
	return a + b
}

func satMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > unbounded/b {
		return unbounded
	}
	return a * b
}

func satPow(base uint64, exp int) uint64 {
	out := uint64(1)
	for i := 0; i < exp && out != unbounded; i++ {
		out = satMul(out, base)
	}
	return out
}

// permutations counts ordered selections of k distinct values out of n.
func permutations(n uint64, k int) uint64 {
	if uint64(k) > n {
		return 0
	}
	out := uint64(1)
	for i := 0; i < k && out != unbounded; i++ {
		out = satMul(out, n-uint64(i))
	}
	return out
}
