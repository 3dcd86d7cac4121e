package schemagen

import (
	"context"
	"math"
	"math/bits"
	"math/rand/v2"
	"sync"

	"github.com/reoring/schemagen/internal/canon"
)

// DefaultMaxUniqueAttempts is the least number of duplicate draws in a row a
// unique array tolerates before generation fails with
// ErrUnsatisfiableUniqueness.
const DefaultMaxUniqueAttempts = 1000

// DefaultSizeLimit caps maxItems and maxLength. Larger bounds are rejected as
// ErrInvalidSchema.
const DefaultSizeLimit = 1 << 16

// Options configures a Generator.
type Options struct {
	// Rand is the randomness source. Nil selects a randomly seeded source.
	Rand Rand
	// MaxUniqueAttempts fixes the consecutive duplicate draw budget for
	// uniqueItems arrays. Zero or negative scales the budget with the
	// number of distinct values the items can take, and never goes below
	// DefaultMaxUniqueAttempts.
	MaxUniqueAttempts int
	// SizeLimit caps maxItems and maxLength. Zero or negative selects
	// DefaultSizeLimit.
	SizeLimit int
}

// Generator produces values from schemas using one randomness source. It is
// safe for concurrent use: calls are serialized on the source, so a seeded
// Generator replays the same values for the same sequence of calls.
type Generator struct {
	mu                sync.Mutex
	r                 Rand
	maxUniqueAttempts int
	sizeLimit         int
}

// New returns a Generator configured by opts.
func New(opts Options) *Generator {
	r := opts.Rand
	if r == nil {
		r = NewRand(rand.Uint64())
	}
	limit := opts.SizeLimit
	if limit <= 0 {
		limit = DefaultSizeLimit
	}
	return &Generator{r: r, maxUniqueAttempts: max(opts.MaxUniqueAttempts, 0), sizeLimit: limit}
}

// NewSeeded returns a Generator with a deterministic source.
func NewSeeded(seed uint64) *Generator { return New(Options{Rand: NewRand(seed)}) }

// Generate validates s and returns a freshly allocated value conforming to
// it, using a per-call randomness source. See Generator.Generate.
func Generate(ctx context.Context, s Schema) (any, error) {
	return New(Options{}).Generate(ctx, s)
}

// Generate validates s and returns a value conforming to it: int64 for
// integers, float64 for numbers, string, bool, []any for arrays,
// map[string]any for objects and nil for unknown types. On failure no
// partial value is returned.
func (g *Generator) Generate(ctx context.Context, s Schema) (any, error) {
	if err := g.Validate(s); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value(ctx, s, rootPath())
}

// Validate is like the package-level Validate but applies g's size limit.
func (g *Generator) Validate(s Schema) error {
	return validate(s, g.sizeLimit)
}

func (g *Generator) value(ctx context.Context, s Schema, p pathRef) (any, error) {
	switch t := s.(type) {
	case *IntegerSchema:
		lo, hi := t.bounds()
		return randomInt(g.r, lo, hi), nil
	case *NumberSchema:
		lo, hi := t.bounds()
		return randomFloat(g.r, lo, hi), nil
	case *StringSchema:
		if len(t.Enum) > 0 {
			return chooseOne(g.r, p, t.Enum)
		}
		lo, hi := t.bounds()
		return randomString(g.r, lo, hi), nil
	case *BooleanSchema:
		return coinFlip(g.r), nil
	case *ArraySchema:
		return g.array(ctx, t, p)
	case *ObjectSchema:
		return g.object(ctx, t, p)
	case *UnknownSchema:
		return nil, nil
	}
	return nil, Issues{p.Issue(CodeInvalidSchema, "reason", "unsupported schema node")}
}

func (g *Generator) array(ctx context.Context, s *ArraySchema, p pathRef) (any, error) {
	lo, hi := s.bounds()
	if !s.UniqueItems {
		n := int(randomInt(g.r, int64(lo), int64(hi)))
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, canceled(p, err)
			}
			v, err := g.value(ctx, s.Items, p.Field("items"))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	// Never ask for more distinct elements than the items can supply.
	c := cardinality(s.Items)
	if c != unbounded && uint64(hi) > c {
		hi = int(c)
	}
	budget := g.uniqueBudget(c)
	n := int(randomInt(g.r, int64(lo), int64(hi)))
	set := canon.NewSet(n)
	misses := 0
	for set.Len() < n {
		if err := ctx.Err(); err != nil {
			return nil, canceled(p, err)
		}
		v, err := g.value(ctx, s.Items, p.Field("items"))
		if err != nil {
			return nil, err
		}
		added, err := set.Add(v)
		if err != nil {
			return nil, Issues{Issue{Path: p.Pointer(), Code: CodeInvalidSchema, Message: err.Error(), Cause: err}}
		}
		if added {
			misses = 0
			continue
		}
		misses++
		if misses >= budget {
			return nil, Issues{p.Issue(CodeUnsatisfiableUniqueness, "want", n, "have", set.Len(), "attempts", misses)}
		}
	}
	return set.Items(), nil
}

// uniqueBudgetSlack is added to log2 of the value space size when scaling
// the duplicate draw budget. Filling the last free slot of c values then
// fails with probability below exp(-slack).
const uniqueBudgetSlack = 30

// uniqueBudget returns how many duplicate draws in a row a unique array over
// c distinct values may see.
func (g *Generator) uniqueBudget(c uint64) int {
	if g.maxUniqueAttempts > 0 {
		return g.maxUniqueAttempts
	}
	if c == unbounded {
		return DefaultMaxUniqueAttempts
	}
	b := satMul(c, uint64(bits.Len64(c))+uniqueBudgetSlack)
	if b > math.MaxInt32 {
		return math.MaxInt32
	}
	return max(int(b), DefaultMaxUniqueAttempts)
}

func (g *Generator) object(ctx context.Context, s *ObjectSchema, p pathRef) (any, error) {
	out := make(map[string]any, s.Properties.Len())
	for el := s.Properties.Oldest(); el != nil; el = el.Next() {
		if !s.isRequired(el.Key) && !coinFlip(g.r) {
			continue
		}
		v, err := g.value(ctx, el.Value, p.Property(el.Key))
		if err != nil {
			return nil, err
		}
		out[el.Key] = v
	}
	return out, nil
}

func canceled(p pathRef, err error) error {
	it := p.Issue(CodeCanceled)
	it.Cause = err
	return Issues{it}
}
