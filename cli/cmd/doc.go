// Package cmd implements the advparse subcommands.
//
// Each command is a kong command struct with a Run(context.Context) method.
// Output goes to the stdout writer of the [kong.Context] stored in the
// context by [WithContext], or to [os.Stdout] if there is none.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// of the YAML configuration file.
	ConfigIdentifier = "config"
)
