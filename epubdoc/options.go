package epubdoc

import "go.uber.org/zap"

// Option configures a Parse call.
type Option func(*parseOptions)

type parseOptions struct {
	logger        *zap.Logger
	applyLexicons bool
}

func defaultOptions() parseOptions {
	return parseOptions{
		logger: zap.NewNop(),
	}
}

// WithLogger sends parse progress to logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *parseOptions) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	}
}

// WithLexiconApplication runs the package's pronunciation lexicons over every
// chapter's annotated text. Plain text is never changed.
func WithLexiconApplication(enabled bool) Option {
	return func(o *parseOptions) {
		o.applyLexicons = enabled
	}
}
