package script

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/xeipuuv/gojsonschema"
)

// DocumentSchema is the JSON Schema that every exported [Document]
// satisfies.
//
//go:embed document.schema.json
var DocumentSchema []byte

// Document is the export form of a [Stream].
type Document struct {
	Commands []DocumentCommand `json:"commands" yaml:"commands"`
	Summary  Summary           `json:"summary"  yaml:"summary"`
}

// DocumentCommand is the export form of a [Command].
// Its parameters are cleaned by [CleanParams].
type DocumentCommand struct {
	Type   string  `json:"type"   yaml:"type"`
	Params *Params `json:"params" yaml:"params"`
	Clip   *Clip   `json:"clip"   yaml:"clip"`
}

// Document returns the export form of the stream.
func (s *Stream) Document() Document {
	doc := Document{
		Commands: make([]DocumentCommand, len(s.commands)),
		Summary:  s.Summary(),
	}

	for i, cmd := range s.commands {
		doc.Commands[i] = DocumentCommand{
			Type:   cmd.Type,
			Params: CleanParams(cmd.Params),
			Clip:   cmd.Clip,
		}
	}

	return doc
}

// Format identifies a document encoding.
type Format int

const (
	FormatJSON Format = iota // json
	FormatYAML               // yaml
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Ext returns the file name extension of the format, including the dot.
func (f Format) Ext() string { return "." + f.String() }

// Formats lists the names of all formats.
func Formats() []string { return []string{FormatJSON.String(), FormatYAML.String()} }

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, ErrInvalidFormat.With(
			slog.String("format", s),
			slog.String("valid", strings.Join(Formats(), ", ")),
		)
	}
}

// Write encodes the document to w in the given format.
func (d Document) Write(ctx context.Context, w io.Writer, format Format, indent int) error {
	switch format {
	case FormatJSON:
		return d.WriteJSON(w, indent)
	case FormatYAML:
		return d.WriteYAML(ctx, w, indent)
	default:
		return ErrInvalidFormat.With(slog.String("format", format.String()))
	}
}

// WriteJSON writes the document as JSON. A positive indent selects
// multi-line output indented by that many spaces.
func (d Document) WriteJSON(w io.Writer, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	if err := enc.Encode(d); err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", FormatJSON.String()))
	}

	return nil
}

// WriteYAML writes the document as YAML. A positive indent sets the block
// indentation; otherwise flow style is used.
func (d Document) WriteYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, d, opts...)
	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", FormatYAML.String()))
	}

	if _, err = w.Write(data); err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", FormatYAML.String()))
	}

	return nil
}

// Validate checks the document against [DocumentSchema].
func (d Document) Validate() error {
	data, err := json.Marshal(d)
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	return ValidateDocument(data)
}

// ValidateDocument checks JSON document data against [DocumentSchema].
// It checks the shape of the export, not the meaning of any command.
func ValidateDocument(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(DocumentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return ErrSchema.Wrap(err)
	}

	if result.Valid() {
		return nil
	}

	issues := make([]string, len(result.Errors()))
	for i, e := range result.Errors() {
		issues[i] = e.String()
	}

	return ErrSchema.Wrap(errors.New(strings.Join(issues, "; "))).
		With(slog.Int("issues", len(issues)))
}
