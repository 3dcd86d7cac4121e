package schemagen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/schemagen/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidSchema           = "invalid_schema"
	CodeDegenerateRange         = "degenerate_range"
	CodeUnsatisfiableUniqueness = "unsatisfiable_uniqueness"
	CodeEmptyChoice             = "empty_choice"
	CodeCanceled                = "canceled"
)

// Sentinel errors matched by errors.Is against Issues.
var (
	ErrInvalidSchema           = errors.New("schemagen: invalid schema")
	ErrDegenerateRange         = errors.New("schemagen: degenerate range")
	ErrUnsatisfiableUniqueness = errors.New("schemagen: unsatisfiable uniqueness")
	ErrEmptyChoice             = errors.New("schemagen: empty choice set")
)

func sentinelFor(code string) error {
	switch code {
	case CodeInvalidSchema:
		return ErrInvalidSchema
	case CodeDegenerateRange:
		return ErrDegenerateRange
	case CodeUnsatisfiableUniqueness:
		return ErrUnsatisfiableUniqueness
	case CodeEmptyChoice:
		return ErrEmptyChoice
	}
	return nil
}

// Issue is a single problem found while validating a schema or generating
// from it.
type Issue struct {
	Path    string // JSON Pointer into the schema (for example: /properties/tags/items).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":5, "max":1}) for i18n
	// and observability.
	Params map[string]any
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. degenerate_range at /properties/age: minimum is greater than maximum
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue carries the code behind target, so callers can
// write errors.Is(err, ErrDegenerateRange).
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if s := sentinelFor(it.Code); s != nil && s == target {
			return true
		}
	}
	return false
}

// Unwrap exposes issue causes to errors.Is/As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// newIssue builds an issue whose message comes from the i18n catalog. Params
// are rendered into the message as key=value pairs.
func newIssue(path, code string, params map[string]any) Issue {
	var data map[string]string
	if len(params) > 0 {
		data = make(map[string]string, len(params))
		for k, v := range params {
			data[k] = fmt.Sprint(v)
		}
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, data), Params: params}
}
