package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

type initCLI struct {
	LogLevel string `default:"info"`
	Workers  int    `default:"4"`
	Verify   bool   `default:"true"`
	Empty    string
	Secret   string `default:"x"    hidden:""`

	Init Init `cmd:""`
}

func newInitContext(t *testing.T, confPath string, args ...string) (*kong.Context, *initCLI) {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	if err != nil {
		t.Fatal(err)
	}

	return ktx, &cli
}

const wantConfig = `log-level: info
workers: 4
verify: true
`

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	ktx, _ := newInitContext(t, "")

	var buf bytes.Buffer
	if err := writeConfig(t.Context(), &buf, ktx); err != nil {
		t.Fatalf("writeConfig() error = %v", err)
	}

	if got := buf.String(); got != wantConfig {
		t.Errorf("config mismatch\n got: %q\nwant: %q", got, wantConfig)
	}
}

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		force    bool
		existing string
		wantErr  error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, existing: "existing content"},
		{name: "fail_without_force", existing: "existing content", wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "advparse", "config.yaml")

			if tt.existing != "" {
				if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
					t.Fatal(err)
				}

				if err := os.WriteFile(confPath, []byte(tt.existing), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ktx, _ := newInitContext(t, confPath)
			ctx := WithContext(t.Context(), ktx)

			err := (&Init{Force: tt.force}).Run(ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				data, _ := os.ReadFile(confPath)
				if string(data) != tt.existing {
					t.Errorf("config was modified: %q", data)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			if string(data) != wantConfig {
				t.Errorf("config mismatch\n got: %q\nwant: %q", data, wantConfig)
			}
		})
	}
}

func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	ktx, _ := newInitContext(t, filepath.Join(blocker, "config.yaml"))

	err := (&Init{}).Run(WithContext(t.Context(), ktx))
	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Run() error = %v, want %v", err, ErrWriteConfig)
	}
}

func TestConfigValue(t *testing.T) {
	t.Parallel()

	type level string

	tests := []struct {
		name   string
		in     any
		want   any
		wantOK bool
	}{
		{name: "nil"},
		{name: "bool", in: false, want: false, wantOK: true},
		{name: "int", in: 3, want: int64(3), wantOK: true},
		{name: "uint", in: uint8(7), want: uint64(7), wantOK: true},
		{name: "float", in: float32(0.5), want: 0.5, wantOK: true},
		{name: "string", in: "debug", want: "debug", wantOK: true},
		{name: "named_string", in: level("warn"), want: "warn", wantOK: true},
		{name: "empty_string", in: "", want: ""},
		{name: "empty_slice", in: []string{}, want: []string{}},
		{name: "struct", in: struct{ A int }{1}, want: "{1}", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := configValue(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("configValue(%#v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}

			if ok && got != tt.want {
				t.Errorf("configValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
