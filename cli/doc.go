// Package cli contains the command line interface for advparse.
//
// # Commands
//
//   - parse: export one script as a JSON or YAML document (the default)
//   - summary: print command statistics of one script
//   - dialogue: print the dialogue lines of one script
//   - query: print the commands matching a type or an expression
//   - batch: export every script under one or more directories in parallel
//   - init: write the current global flags to the configuration file
//
// # Configuration
//
// Global flags are read from config.yaml or config.json in the user
// configuration directory. Command-line flags take precedence.
//
//	log-level: debug
//	log-format: text
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-file: Write to a rotated log file instead of stderr
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o advparse .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Examples
//
//	# Export a script to YAML
//	advparse parse --format=yaml chapter1.txt
//
//	# Export a tree of scripts with a progress bar
//	advparse batch -r -o out --progress scripts/
//
//	# Count the sound effects played
//	advparse query -c -t se chapter1.txt
package cli
