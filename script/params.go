package script

import (
	"bytes"
	"iter"
	"slices"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
)

// Params is an ordered mapping of parameter name to [Value].
// Iteration follows the order in which names were first set.
type Params struct {
	values map[string]Value
	keys   []string
}

// NewParams returns an empty Params.
func NewParams() *Params {
	return &Params{values: make(map[string]Value)}
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}

	return len(p.keys)
}

// Keys returns the parameter names in order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}

	return slices.Clone(p.keys)
}

// Has reports whether name is set.
func (p *Params) Has(name string) bool {
	_, ok := p.Get(name)

	return ok
}

// Get returns the value of name.
func (p *Params) Get(name string) (Value, bool) {
	if p == nil {
		return Value{}, false
	}

	v, ok := p.values[name]

	return v, ok
}

// Text returns the text of name, or "" if it is not set.
func (p *Params) Text(name string) string {
	v, _ := p.Get(name)

	return v.String()
}

// Set assigns v to name. A name that is already set keeps its position.
func (p *Params) Set(name string, v Value) {
	if p.values == nil {
		p.values = make(map[string]Value)
	}

	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}

	p.values[name] = v
}

// Delete removes name and reports whether it was set.
func (p *Params) Delete(name string) bool {
	if _, ok := p.values[name]; !ok {
		return false
	}

	delete(p.values, name)

	p.keys = slices.DeleteFunc(p.keys, func(k string) bool { return k == name })

	return true
}

// All returns an iterator over name/value pairs in order.
func (p *Params) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if p == nil {
			return
		}

		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Clone returns a copy of p that shares no state with it.
func (p *Params) Clone() *Params {
	c := NewParams()

	for k, v := range p.All() {
		c.Set(k, v)
	}

	return c
}

// Strings returns the parameters as a map of name to text.
func (p *Params) Strings() map[string]string {
	m := make(map[string]string, p.Len())

	for k, v := range p.All() {
		m[k] = v.String()
	}

	return m
}

// MarshalJSON implements json.Marshaler, preserving parameter order.
func (p *Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalJSON(k)
		if err != nil {
			return nil, err
		}

		val, err := marshalJSON(p.values[k].Native())
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler, preserving
// parameter order.
func (p *Params) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, 0, p.Len())

	for k, v := range p.All() {
		ms = append(ms, yaml.MapItem{Key: k, Value: v.Native()})
	}

	return ms, nil
}

// boundary is the location of one `name=` occurrence in a parameter string.
type boundary struct {
	name  string
	start int // offset of the first byte of name
	value int // offset of the first byte after '='
}

// boundaries finds every parameter name that either starts the string or
// follows a run of whitespace, and is immediately followed by '='.
func boundaries(s string) []boundary {
	var found []boundary

	c := newCursor(s)

	if b, ok := boundaryAt(c); ok {
		found = append(found, b)
		c.pos = b.value
	}

	return append(found, spacedBoundaries(c)...)
}

// spacedBoundaries finds the boundaries from c onward that follow a run of
// whitespace.
func spacedBoundaries(c cursor) []boundary {
	var found []boundary

	for !c.done() {
		r, w := c.decodeRune()
		if !unicode.IsSpace(r) {
			c.pos += w

			continue
		}

		c = skipSpace(c)

		if b, ok := boundaryAt(c); ok {
			found = append(found, b)
			c.pos = b.value
		}
	}

	return found
}

// boundaryAt matches a word run followed by '=' at the cursor.
func boundaryAt(c cursor) (boundary, bool) {
	name, next := readWord(c)
	if name == "" || next.done() || next.at() != '=' {
		return boundary{}, false
	}

	return boundary{name: name, start: c.pos, value: next.pos + 1}, true
}

// SplitParams splits a parameter string into an ordered mapping.
//
// A parameter begins at a word run followed by '=' that is either at the
// start of s or preceded by whitespace. A value that opens with a bracket
// or brace (bare, escaped or quoted) spans exactly the structured value
// found by [Extract], and any `name=` inside that span is part of the value.
// Any other value runs up to the next parameter, without trailing
// whitespace. A repeated name keeps its first position and its last value.
//
// Free text that contains a whitespace-preceded `word=` is split there; the
// format has no way to tell such text apart from a new parameter.
func SplitParams(s string) *Params {
	params := NewParams()
	found := boundaries(s)
	resume := 0

	for i, b := range found {
		if b.start < resume {
			continue
		}

		valueStart := skipSpace(cursor{src: s, pos: b.value})

		if mode := detectMode(valueStart); mode != ModeNone {
			value, next := extract(valueStart)
			params.Set(b.name, Structured(value))

			resume = next.pos

			continue
		}

		params.Set(b.name, Scalar(scalarValue(s, b, nextBoundary(found, i, resume))))
	}

	return params
}

// nextBoundary returns the offset where the value of found[i] ends: the
// start of the next boundary, or -1 if found[i] is the last one.
func nextBoundary(found []boundary, i, resume int) int {
	for _, b := range found[i+1:] {
		if b.start >= resume {
			return b.start
		}
	}

	return -1
}

func scalarValue(s string, b boundary, end int) string {
	if end < 0 {
		return strings.TrimSpace(s[b.value:])
	}

	return strings.TrimRightFunc(s[b.value:end], unicode.IsSpace)
}
