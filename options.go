package chapterize

import (
	"go.uber.org/zap"

	"github.com/tsawler/chapterize/epubdoc"
)

// ExtractOptions holds configuration for parsing.
type ExtractOptions struct {
	// Logging (nil means silent)
	logger *zap.Logger

	// Processing options
	applyLexicons bool
}

// defaultOptions returns the default parse options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		logger:        nil,
		applyLexicons: false,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		logger:        o.logger,
		applyLexicons: o.applyLexicons,
	}
}

// parseOptions translates the options for epubdoc.Parse.
func (o ExtractOptions) parseOptions() []epubdoc.Option {
	opts := []epubdoc.Option{epubdoc.WithLexiconApplication(o.applyLexicons)}
	if o.logger != nil {
		opts = append(opts, epubdoc.WithLogger(o.logger))
	}
	return opts
}
