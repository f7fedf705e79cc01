package contracts

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger   Logger   // Logger for events and errors.
	LogLevel LogLevel // Level of logging to use.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}
