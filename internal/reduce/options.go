package reduce

// Option customizes a reduction.
type Option interface{ apply(eng *engine) }

type withLogfn func(mess string, args ...interface{})
type stepLimitOption int

// WithLogf sets a function to trace every reduction step.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithStepLimit stops reduction with a StepLimitError after limit steps.
// Zero, the default, means no limit.
func WithStepLimit(limit int) Option { return stepLimitOption(limit) }

func (logfn withLogfn) apply(eng *engine) { eng.logfn = logfn }

func (lim stepLimitOption) apply(eng *engine) { eng.stepLimit = int(lim) }
