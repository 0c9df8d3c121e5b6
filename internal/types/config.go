package types

type RunMode string

const (
	// ModeLocal runs the API server together with the event router
	ModeLocal RunMode = "local"
	// ModeAPI runs just the API server; events are published but not delivered
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
