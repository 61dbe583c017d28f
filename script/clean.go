package script

import (
	"encoding/json"
	"slices"
	"strings"
)

// ContainerParams are the parameters whose values hold the raw text of
// nested commands, in priority order.
var ContainerParams = []string{"layouts", "actors", "backgrounds"}

func isContainerParam(name string) bool {
	return slices.Contains(ContainerParams, name)
}

// CleanParams returns a copy of p prepared for export.
//
// A value that begins with '{' is decoded as JSON when it is valid. A value
// that begins with '[' is decoded the same way unless its name is one of
// [ContainerParams]. Every other value is kept as text.
//
// When the first of [ContainerParams] present in p still holds text, every
// parameter name that appears whitespace-preceded and followed by '=' inside
// that text is removed from the copy. Those names belong to the nested
// commands, not to the command itself. The container parameter is kept.
func CleanParams(p *Params) *Params {
	cleaned := NewParams()

	for k, v := range p.All() {
		cleaned.Set(k, interpret(k, v))
	}

	container := ""

	for _, k := range ContainerParams {
		if cleaned.Has(k) {
			container = k

			break
		}
	}

	if container == "" {
		return cleaned
	}

	v, _ := cleaned.Get(container)
	if v.Kind() == KindDecoded {
		return cleaned
	}

	for _, name := range nestedNames(v.String()) {
		if name != container {
			cleaned.Delete(name)
		}
	}

	return cleaned
}

// interpret decodes v when its text looks like a JSON object, or a JSON
// array outside a container parameter.
func interpret(name string, v Value) Value {
	if v.Kind() == KindDecoded {
		return v
	}

	text := v.String()

	switch {
	case strings.HasPrefix(text, "{"):
	case strings.HasPrefix(text, "[") && !isContainerParam(name):
	default:
		return v
	}

	var tree any
	if err := json.Unmarshal([]byte(text), &tree); err != nil {
		return v
	}

	return Decoded(tree)
}

// nestedNames returns every word run in s that follows whitespace and is
// immediately followed by '='.
func nestedNames(s string) []string {
	found := spacedBoundaries(newCursor(s))
	names := make([]string, len(found))

	for i, b := range found {
		names[i] = b.name
	}

	return names
}
