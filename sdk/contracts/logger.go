package contracts

// LogLevel represents the severity level for logging.
type LogLevel int

const (
	// DebugLevel indicates messages useful for troubleshooting.
	DebugLevel LogLevel = iota - 1
	// InfoLevel indicates messages that highlight the progress of the
	// application.
	InfoLevel
	// WarnLevel indicates potentially harmful situations.
	WarnLevel
	// ErrorLevel indicates serious issues that need attention.
	ErrorLevel
)

// Logger provides leveled, structured logging. The variadic arguments are
// alternating key-value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	SetLevel(level LogLevel)
}
