//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the supported profiling modes in sorted order.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// option appends pkg/profile options for one Profiler field.
type option func(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile)

func withMode(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	if fn, ok := mode[p.Mode]; ok {
		opts = append(opts, fn)
	}

	return opts
}

func withPath(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	if p.Path != "" {
		opts = append(opts, profile.ProfilePath(p.Path))
	}

	return opts
}

func withQuiet(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	if p.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return opts
}

func start(p Profiler) Stopper {
	var opts []func(*profile.Profile)

	if opts = withMode(p, opts); len(opts) == 0 {
		return ignore{}
	}

	for _, apply := range []option{withPath, withQuiet} {
		opts = apply(p, opts)
	}

	return profile.Start(opts...)
}
