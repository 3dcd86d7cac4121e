package schemagen

import (
	"strconv"
	"strings"
)

// pathRef builds JSON Pointer paths into a schema document.
type pathRef struct {
	parts []string
}

func rootPath() pathRef { return pathRef{} }

func (p pathRef) Field(name string) pathRef {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p pathRef) Index(i int) pathRef {
	return pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Property addresses a property schema of an object schema.
func (p pathRef) Property(name string) pathRef { return p.Field("properties").Field(name) }

func (p pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p pathRef) Issue(code string, kv ...any) Issue {
	var params map[string]any
	if len(kv) > 1 {
		params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			k, _ := kv[i].(string)
			params[k] = kv[i+1]
		}
	}
	return newIssue(p.Pointer(), code, params)
}
