package profile

// Profiler describes one profiling session.
type Profiler struct {
	// Mode is one of [Modes]; empty disables profiling.
	Mode string
	// Path is the output directory; empty uses the current directory.
	Path string
	// Quiet suppresses the start and stop messages of the profiler.
	Quiet bool
}

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Start starts profiling and returns the value that stops it. It returns a
// no-op Stopper when Mode is empty or unknown, or when built without the
// pprof tag.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether p would start a profiler.
func (p Profiler) Enabled() bool {
	for _, m := range Modes() {
		if m == p.Mode {
			return true
		}
	}

	return false
}

type ignore struct{}

func (ignore) Stop() {}
