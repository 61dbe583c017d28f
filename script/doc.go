// Package script parses bracket-delimited scene scripts into streams of
// typed commands.
//
// A script is free text interleaved with commands:
//
//	[message text=Hello name=amao clip=\{"_startTime":1.5,"_duration":2\}]
//	[actorlayoutgroup layouts="[actorlayout id=amao]" id=amao]
//
// Each command has a type token, an ordered set of key=value parameters and
// an optional [Clip] decoded from its clip parameter.
//
// # Parsing
//
// [Scan] and [Commands] recover commands from text. [ParseString],
// [ParseBytes], [ParseReader] and [ParseFile] wrap the result in a [Stream]
// that offers derived views:
//
//	s, err := script.ParseFile(ctx, "adv_001.txt")
//	if err != nil {
//		return err
//	}
//
//	for _, line := range s.Dialogue() {
//		fmt.Println(line.Name, line.Text)
//	}
//
// [ParseCached] reuses the commands of identical content across calls.
//
// # Parameter values
//
// A parameter value is a [Value] of one of three kinds. Values that open
// with a bracket or brace are [KindStructured] and span exactly the nested
// structure, even if it contains whitespace or other name=value pairs. The
// structure may be bare, backslash-escaped (`\{...\}`) or double-quoted.
// Other values are [KindScalar] and run to the next parameter name.
//
// A scalar value containing whitespace followed by word=... is split into
// two parameters. The format offers no way to tell such text apart from a
// new parameter.
//
// # Export
//
// [Stream.Document] produces the export form, with parameters interpreted
// and deduplicated by [CleanParams]. Documents encode to JSON or YAML and
// can be checked against [DocumentSchema].
package script
