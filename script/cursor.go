package script

import (
	"unicode"
	"unicode/utf8"
)

// cursor is a read position within a source string.
//
// A cursor is passed and returned by value. Functions that consume input
// return the advanced cursor alongside their result and never modify the
// cursor they were given, so any sub-span can be re-scanned from a saved
// position.
type cursor struct {
	src string
	pos int
}

func newCursor(src string) cursor { return cursor{src: src} }

// done reports whether the cursor has reached the end of input.
func (c cursor) done() bool { return c.pos >= len(c.src) }

// at returns the byte under the cursor. The cursor must not be done.
func (c cursor) at() byte { return c.src[c.pos] }

// peek returns the byte n positions past the cursor, if any.
func (c cursor) peek(n int) (byte, bool) {
	if i := c.pos + n; i >= 0 && i < len(c.src) {
		return c.src[i], true
	}

	return 0, false
}

// advance moves the cursor n bytes forward, stopping at end of input.
func (c cursor) advance(n int) cursor {
	c.pos = min(c.pos+n, len(c.src))

	return c
}

// decodeRune decodes the rune under the cursor and its width in bytes.
func (c cursor) decodeRune() (rune, int) {
	return utf8.DecodeRuneInString(c.src[c.pos:])
}

// isBlank reports whether b is one of the four whitespace bytes that end a
// command type token.
func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isWord reports whether r may appear in a parameter name.
func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// skipBlank returns the cursor at the first byte that is not blank.
func skipBlank(c cursor) cursor {
	for !c.done() && isBlank(c.at()) {
		c.pos++
	}

	return c
}

// skipSpace returns the cursor at the first rune that is not Unicode
// whitespace.
func skipSpace(c cursor) cursor {
	for !c.done() {
		r, w := c.decodeRune()
		if !unicode.IsSpace(r) {
			break
		}

		c.pos += w
	}

	return c
}

// readType consumes a command type token: everything up to the first blank
// byte or closing bracket.
func readType(c cursor) (string, cursor) {
	start := c.pos

	for !c.done() && !isBlank(c.at()) && c.at() != ']' {
		c.pos++
	}

	return c.src[start:c.pos], c
}

// readWord consumes a run of word runes.
func readWord(c cursor) (string, cursor) {
	start := c.pos

	for !c.done() {
		r, w := c.decodeRune()
		if !isWord(r) {
			break
		}

		c.pos += w
	}

	return c.src[start:c.pos], c
}
