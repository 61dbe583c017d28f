package script

import (
	"log/slog"
	"strconv"
)

// ClipParam is the parameter name that carries a command's [Clip].
const ClipParam = "clip"

// Command is one bracketed directive of a script.
type Command struct {
	// Params holds the parameters in source order. It never contains
	// [ClipParam]; a clip parameter is decoded into Clip instead.
	Params *Params
	// Clip is nil unless the command had a clip parameter.
	Clip *Clip
	// Type is the token following the opening bracket. It is never empty.
	Type string
	// Raw is the source text of the command, brackets included.
	Raw string
	// Offset is the byte offset of the opening bracket in the source.
	Offset int
}

// newCommand builds a command from its type token and parameter string.
func newCommand(typ, params, raw string, offset int) *Command {
	cmd := &Command{
		Type:   typ,
		Params: SplitParams(params),
		Raw:    raw,
		Offset: offset,
	}

	if v, ok := cmd.Params.Get(ClipParam); ok {
		clip := DecodeClip(v.String())
		cmd.Clip = &clip

		cmd.Params.Delete(ClipParam)
	}

	return cmd
}

// HasClip reports whether the command carries timeline data.
func (c *Command) HasClip() bool { return c.Clip != nil }

// String returns the raw source text of the command.
func (c *Command) String() string { return c.Raw }

// LogValue implements slog.LogValuer.
func (c *Command) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", c.Type),
		slog.Int("offset", c.Offset),
		slog.Int("params", c.Params.Len()),
	}

	if c.Clip != nil {
		attrs = append(attrs,
			slog.String("start", strconv.FormatFloat(c.Clip.StartTime, 'f', -1, 64)),
		)
	}

	return slog.GroupValue(attrs...)
}
