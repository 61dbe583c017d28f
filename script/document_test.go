package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func TestDocumentWriteJSON(t *testing.T) {
	doc := ParseString(t.Context(), `[a x=1 t={"k":[1]}]`).Document()

	var buf bytes.Buffer
	if err := doc.WriteJSON(&buf, 0); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	want := `{"commands":[{"type":"a","params":{"x":"1","t":{"k":[1]}},"clip":null}],` +
		`"summary":{"command_types":{"a":1},"total_commands":1,"duration":0,"has_timeline":false}}` + "\n"
	if buf.String() != want {
		t.Errorf("WriteJSON() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestDocumentCleansParams(t *testing.T) {
	doc := ParseString(t.Context(), `[actorlayoutgroup layouts="[actorlayout id=amao]" id=amao]`).Document()

	if diff := cmp.Diff([]string{"layouts"}, doc.Commands[0].Params.Keys()); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentWriteYAML(t *testing.T) {
	doc := ParseString(t.Context(), sampleScript).Document()

	var buf bytes.Buffer
	if err := doc.WriteYAML(t.Context(), &buf, 2); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	var got struct {
		Commands []struct {
			Type   string            `yaml:"type"`
			Params map[string]string `yaml:"params"`
			Clip   *Clip             `yaml:"clip"`
		} `yaml:"commands"`
		Summary Summary `yaml:"summary"`
	}

	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, buf.String())
	}

	if len(got.Commands) != 4 {
		t.Fatalf("decoded %d commands, want 4", len(got.Commands))
	}

	if got.Commands[0].Type != "bgm" || got.Commands[0].Params["id"] != "bgm_001" {
		t.Errorf("first command = %+v", got.Commands[0])
	}

	if got.Commands[1].Clip == nil || got.Commands[1].Clip.StartTime != 1.5 {
		t.Errorf("second command clip = %+v", got.Commands[1].Clip)
	}

	if got.Commands[2].Clip != nil {
		t.Errorf("third command clip = %+v, want nil", got.Commands[2].Clip)
	}

	if diff := cmp.Diff(doc.Summary, got.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentValidate(t *testing.T) {
	for _, content := range []string{sampleScript, ``, `[a clip={}]`} {
		if err := ParseString(t.Context(), content).Document().Validate(); err != nil {
			t.Errorf("Validate(%q) error = %v", content, err)
		}
	}
}

func TestValidateDocumentRejects(t *testing.T) {
	tests := map[string]string{
		"missing summary": `{"commands":[]}`,
		"empty type":      `{"commands":[{"type":"","params":{},"clip":null}],"summary":{"total_commands":1,"duration":0,"command_types":{},"has_timeline":false}}`,
		"clip param":      `{"commands":[{"type":"a","params":{"clip":"x"},"clip":null}],"summary":{"total_commands":1,"duration":0,"command_types":{},"has_timeline":false}}`,
		"not JSON":        `{`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if err := ValidateDocument([]byte(data)); !errors.Is(err, ErrSchema) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, ErrSchema)
			}
		})
	}
}

func TestDocumentWrite(t *testing.T) {
	doc := ParseString(t.Context(), `[a]`).Document()

	for _, name := range Formats() {
		format, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error = %v", name, err)
		}

		var buf bytes.Buffer
		if err := doc.Write(t.Context(), &buf, format, 2); err != nil {
			t.Errorf("Write(%v) error = %v", format, err)
		}

		if buf.Len() == 0 {
			t.Errorf("Write(%v) wrote nothing", format)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want %v", err, ErrInvalidFormat)
	}

	if err := doc.Write(t.Context(), &bytes.Buffer{}, Format(7), 0); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Write(7) error = %v, want %v", err, ErrInvalidFormat)
	}
}

func TestDocumentJSONRoundTripValid(t *testing.T) {
	var buf bytes.Buffer
	if err := ParseString(t.Context(), sampleScript).Document().WriteJSON(&buf, 2); err != nil {
		t.Fatal(err)
	}

	if !json.Valid(buf.Bytes()) {
		t.Fatalf("WriteJSON() produced invalid JSON:\n%s", buf.String())
	}

	if err := ValidateDocument(buf.Bytes()); err != nil {
		t.Errorf("ValidateDocument() error = %v", err)
	}
}
