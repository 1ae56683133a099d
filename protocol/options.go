// SPDX-License-Identifier: EPL-2.0

package protocol

import "log/slog"

type options struct {
	logger *slog.Logger
}

// Option configures a Controller or Sink.
type Option func(*options)

// WithLogger sets the logger for protocol events. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
