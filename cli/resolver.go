package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] for YAML config files.
//
// Keys are flag names. Hyphens may be written as underscores, so both
// "log-level" and "log_level" set --log-level:
//
//	log-level: debug
//	log_format: text
//	workers: 4
//
// Command-line flags override config file values. A file that is empty or
// is not a YAML mapping configures nothing.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	c := make(config, len(values))
	for key, val := range values {
		c[strings.ReplaceAll(key, "_", "-")] = flagValue(val)
	}

	return c, nil
}

// flagValue converts a decoded YAML scalar to a value kong can parse.
// Kong parses numbers from strings.
func flagValue(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return v
	}
}

// config implements [kong.Resolver] over flag names with hyphens.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
