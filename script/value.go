package script

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// Kind indicates which variant a [Value] holds.
type Kind int

const (
	// KindScalar is a plain string value.
	KindScalar Kind = iota

	// KindStructured is a JSON-like object or array kept as text.
	KindStructured

	// KindDecoded is a structured value deserialized into a generic tree of
	// map[string]any, []any, string, float64, bool and nil.
	KindDecoded
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindStructured:
		return "Structured"
	case KindDecoded:
		return "Decoded"
	default:
		return "Unknown"
	}
}

// Value is a parameter value.
// Exactly one of text or tree is meaningful, depending on kind.
type Value struct {
	tree any
	text string
	kind Kind
}

// Scalar returns a plain string value.
func Scalar(s string) Value { return Value{kind: KindScalar, text: s} }

// Structured returns a structured value holding raw JSON-like text.
func Structured(s string) Value { return Value{kind: KindStructured, text: s} }

// Decoded returns a value holding an already deserialized tree.
func Decoded(tree any) Value { return Value{kind: KindDecoded, tree: tree} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// String returns the text of a scalar or structured value. Decoded values
// are re-encoded as compact JSON.
func (v Value) String() string {
	if v.kind != KindDecoded {
		return v.text
	}

	data, err := json.Marshal(v.tree)
	if err != nil {
		return ""
	}

	return string(data)
}

// Tree returns the deserialized tree of a decoded value, or nil.
func (v Value) Tree() any {
	if v.kind != KindDecoded {
		return nil
	}

	return v.tree
}

// Decode interprets a structured value as JSON.
// Decoding an already decoded value returns it unchanged.
func (v Value) Decode() (Value, error) {
	switch v.kind {
	case KindDecoded:
		return v, nil

	case KindStructured:
		var tree any

		err := json.Unmarshal([]byte(v.text), &tree)
		if err != nil {
			return Value{}, ErrDecodeValue.Wrap(err).
				With(slog.String("kind", v.kind.String()))
		}

		return Decoded(tree), nil

	default:
		return Value{}, ErrDecodeValue.
			With(slog.String("kind", v.kind.String()))
	}
}

// Native returns v as a plain Go value: the tree for decoded values,
// otherwise the text.
func (v Value) Native() any {
	if v.kind == KindDecoded {
		return v.tree
	}

	return v.text
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return marshalJSON(v.Native())
}

// marshalJSON encodes v like json.Marshal without escaping HTML characters.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}
