package mng

// options holds Build's configurable behavior. Unexported: callers only
// ever see functional Option values.
type options struct {
	logger        *Logger
	seed          int64
	maxAttempts   int
	initialDegree int
}

// Option configures Build.
type Option func(*options)

// WithLogger configures structured logging for Build. Pass nil to disable
// logging entirely.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithSeed configures the deterministic seed used for random-edge seeding
// and uncovered-bucket shuffling. Two Build calls over the same point set
// with the same seed and the same GOMAXPROCS produce the same graph.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithMaxAttempts bounds the number of exponential-search doublings Build
// will try before returning ErrBudgetSearchExhausted. The reference
// algorithm searches forever; this is a safety valve for callers that would
// rather fail than hang on a pathological input.
func WithMaxAttempts(maxAttempts int) Option {
	return func(o *options) {
		o.maxAttempts = maxAttempts
	}
}

// WithInitialDegree overrides the starting target degree for the
// exponential search (default: 1, so the search tries 1, 2, 4, 8, ...).
func WithInitialDegree(initialDegree int) Option {
	return func(o *options) {
		o.initialDegree = initialDegree
	}
}

func applyOptions(optFns []Option, n int) options {
	o := options{
		logger:        NoopLogger(),
		seed:          0,
		maxAttempts:   32,
		initialDegree: 1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
