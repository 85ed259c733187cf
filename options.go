package introspect

import "go.uber.org/zap"

// Option configures describer loading.
type Option func(*config)

type config struct {
	log *zap.Logger
}

func newConfig(opts ...Option) *config {
	c := &config{log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLogger sets the logger used to report probe results.
// A nil logger disables logging.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log == nil {
			log = zap.NewNop()
		}
		c.log = log
	}
}
