package internal

// Option is a functional option for configuring the parser service
// before Run starts it.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig replaces the default configuration wholesale.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}
