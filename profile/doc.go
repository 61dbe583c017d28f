// Package profile provides optional runtime profiling for advparse.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag. Without it, [Profiler.Start] returns a no-op and
// [Modes] is empty.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/advparse"}
//	defer p.Start().Stop()
//
// Profile files are written to Path with names matching the mode (for
// example cpu.pprof or mem.pprof) and can be inspected with
// "go tool pprof". Batch runs are the usual target:
//
//	go build -tags pprof .
//	./advparse --pprof-mode cpu batch scripts/ -o out/
//	go tool pprof -http=: ~/.cache/advparse/pprof/cpu.pprof
//
// The default output directory is the "pprof" subdirectory of the user
// cache directory for advparse.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
