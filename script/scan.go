package script

import (
	"iter"
	"strings"
)

// Scan returns the commands of content in source order.
func Scan(content string) []*Command {
	var cmds []*Command

	for cmd := range Commands(content) {
		cmds = append(cmds, cmd)
	}

	return cmds
}

// Commands returns an iterator over the commands of content in source
// order. Each call scans content from the beginning.
//
// A command is a '[' followed by a type token, then parameters up to the
// matching ']'. Inside a command a backslash escapes the next byte and
// bare brackets nest. Outside any command a backslash escapes the next
// byte, so "\[" never opens one. A command whose closing bracket is
// missing, or whose type token is empty, is skipped and scanning resumes
// at the byte after its opening bracket.
func Commands(content string) iter.Seq[*Command] {
	return scanCommands(content, nil)
}

// scanCommands drives the scanner. If dropped is non-nil it is called with
// the offset of every span that does not produce a command.
func scanCommands(content string, dropped func(offset int)) iter.Seq[*Command] {
	return func(yield func(*Command) bool) {
		c := newCursor(content)

		for !c.done() {
			switch c.at() {
			case '\\':
				c = c.advance(2)

				continue

			case '[':
				cmd, next, ok := scanSpan(c)
				if !ok {
					if dropped != nil {
						dropped(c.pos)
					}

					c = c.advance(1)

					continue
				}

				c = next

				if !yield(cmd) {
					return
				}

				continue
			}

			c = c.advance(1)
		}
	}
}

// scanSpan scans the command whose opening bracket is under c. It returns
// the cursor after the closing bracket, and false if the span is
// unterminated or has an empty type token.
func scanSpan(c cursor) (*Command, cursor, bool) {
	start := c

	typ, c := readType(c.advance(1))
	c = skipBlank(c)

	paramStart := c.pos
	depth := 1

	for !c.done() {
		switch c.at() {
		case '\\':
			c = c.advance(2)

			continue

		case '[':
			depth++

		case ']':
			if depth--; depth == 0 {
				if typ == "" {
					return nil, start, false
				}

				params := strings.TrimSpace(c.src[paramStart:c.pos])
				c = c.advance(1)

				return newCommand(typ, params, c.src[start.pos:c.pos], start.pos), c, true
			}
		}

		c = c.advance(1)
	}

	return nil, start, false
}
