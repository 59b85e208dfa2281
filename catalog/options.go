package catalog

import (
	"io"
	"log/slog"
)

// Option configures a catalog at open time.
type Option func(*options)

type options struct {
	complexNames [2]string
	log          *slog.Logger
}

func defaultOptions() *options {
	return &options{
		complexNames: [2]string{"r", "i"},
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithComplexNames overrides the member names a 2-float compound must
// carry to classify as a complex type. The default pair is "r", "i".
func WithComplexNames(re, im string) Option {
	return func(o *options) {
		o.complexNames = [2]string{re, im}
	}
}

// WithLogger sets the logger used for discovery and read diagnostics.
// Logging is off by default.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
