// Package profile starts optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof -o chaindo .
//
// Without the tag [Modes] is empty and [Profiler.Start] does nothing.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profiles are written under Path with names matching the mode, such as
// cpu.pprof, and are read with go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
