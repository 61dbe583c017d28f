package script

import (
	"strings"
	"unicode"
)

// ExtractMode identifies how a structured parameter value is delimited.
type ExtractMode int

const (
	// ModeNone means the value is a plain scalar.
	ModeNone ExtractMode = iota

	// ModeEscaped is a value opened by `\{` or `\[`.
	// The payload is JSON text that was escaped again for embedding.
	ModeEscaped

	// ModeUnescaped is a value opened by a bare `{` or `[`.
	ModeUnescaped

	// ModeQuoted is a double-quoted structured value such as
	// `"[actorlayout id=amao]"`. The closing quote must directly follow the
	// structure and be followed by whitespace or the end of the text.
	ModeQuoted
)

// String returns a string representation of the mode.
func (m ExtractMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeEscaped:
		return "escaped"
	case ModeUnescaped:
		return "unescaped"
	case ModeQuoted:
		return "quoted"
	default:
		return "unknown"
	}
}

func isOpener(b byte) bool { return b == '{' || b == '[' }

func closerOf(open byte) byte {
	if open == '{' {
		return '}'
	}

	return ']'
}

// DetectMode reports how the value starting at text[from] is delimited.
func DetectMode(text string, from int) ExtractMode {
	return detectMode(cursor{src: text, pos: from})
}

func detectMode(c cursor) ExtractMode {
	if c.pos < 0 || c.done() {
		return ModeNone
	}

	b0 := c.at()
	b1, ok := c.peek(1)

	switch {
	case b0 == '\\' && ok && isOpener(b1):
		return ModeEscaped

	case isOpener(b0):
		return ModeUnescaped

	case b0 == '"' && ok && quotedEnd(c.advance(1)):
		return ModeQuoted
	}

	return ModeNone
}

// quotedEnd reports whether the structured value at c is closed by a quote
// that ends the value.
func quotedEnd(c cursor) bool {
	if m := detectMode(c); m != ModeEscaped && m != ModeUnescaped {
		return false
	}

	_, next := extract(c)
	if next.done() || next.at() != '"' {
		return false
	}

	if next = next.advance(1); next.done() {
		return true
	}

	r, _ := next.decodeRune()

	return unicode.IsSpace(r)
}

// Extract returns the structured value beginning at text[from] and the
// number of bytes of text it spans, delimiters included.
//
// Escaped values are returned with their embedding escapes removed so the
// result is plain JSON text. Unescaped values are returned verbatim. If
// text[from] does not open a structured value, Extract returns "" and 0.
// A value whose closing delimiter is missing extends to the end of text.
func Extract(text string, from int) (string, int) {
	value, next := extract(cursor{src: text, pos: from})

	return value, next.pos - from
}

func extract(c cursor) (string, cursor) {
	switch detectMode(c) {
	case ModeEscaped:
		return extractEscaped(c)

	case ModeUnescaped:
		return extractUnescaped(c)

	case ModeQuoted:
		value, next := extract(c.advance(1))

		return value, next.advance(1)

	default:
		return "", c
	}
}

// extractEscaped scans a value opened by `\{` or `\[`.
//
// Depth follows both escaped and bare occurrences of the opening delimiter
// kind. Escaped brackets lose their backslash, `\"` becomes `"`, and every
// other escape sequence (including `\r` and `\n`) is copied unchanged.
func extractEscaped(c cursor) (string, cursor) {
	open, _ := c.peek(1)
	closer := closerOf(open)

	var (
		sb    strings.Builder
		depth int
	)

	for !c.done() {
		b := c.at()

		if next, ok := c.peek(1); ok && b == '\\' {
			switch next {
			case '{', '}', '[', ']':
				sb.WriteByte(next)

				c = c.advance(2)

				switch next {
				case open:
					depth++
				case closer:
					if depth--; depth == 0 {
						return sb.String(), c
					}
				}

			case '"':
				sb.WriteByte('"')

				c = c.advance(2)

			default:
				sb.WriteByte('\\')
				sb.WriteByte(next)

				c = c.advance(2)
			}

			continue
		}

		sb.WriteByte(b)

		c = c.advance(1)

		switch b {
		case open:
			depth++
		case closer:
			if depth--; depth == 0 {
				return sb.String(), c
			}
		}
	}

	return sb.String(), c
}

// extractUnescaped scans a value opened by a bare `{` or `[`, skipping the
// byte after every backslash.
func extractUnescaped(c cursor) (string, cursor) {
	start := c
	open := c.at()
	closer := closerOf(open)
	depth := 0

	for !c.done() {
		switch c.at() {
		case '\\':
			c = c.advance(2)

			continue

		case open:
			depth++

		case closer:
			if depth--; depth == 0 {
				c = c.advance(1)

				return c.src[start.pos:c.pos], c
			}
		}

		c = c.advance(1)
	}

	return c.src[start.pos:], c
}
