package sonify

// Logger receives diagnostic messages from the sequencer and controller.
type Logger interface {
	Debug(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(args ...interface{}) {}
func (nopLogger) Warn(args ...interface{})  {}
func (nopLogger) Error(args ...interface{}) {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}
