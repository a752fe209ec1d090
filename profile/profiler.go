package profile

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. Profiling is disabled when empty.
	Mode string
	// Dir is the output directory. The working directory is used when empty.
	Dir string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Stopper stops a running profile and flushes its output.
type Stopper interface{ Stop() }

// Start starts profiling. The returned Stopper is never nil; it does nothing
// when p.Mode is empty, unknown, or the build lacks the pprof tag.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Option modifies a [Profiler].
type Option func(Profiler) Profiler

// New returns a Profiler with opts applied.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(p Profiler) Profiler {
		p.Dir = dir

		return p
	}
}

// WithQuiet sets whether the profiler logs.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

type ignore struct{}

func (ignore) Stop() {}
