package logger

// Sink receives one formatted log line per event. It is invoked synchronously
// from whichever goroutine produced the event, so implementations that hand
// lines to a UI must do their own thread hop.
type Sink func(msg string, level Level)

// CallbackLogger forwards log lines to a Sink. It exists for embedding hosts
// (a desktop shell, a test harness) that want the engine's event stream
// without tying the engine to any particular widget or writer.
type CallbackLogger struct {
	sink   Sink
	level  Level
	fields []Field
}

// NewCallbackLogger creates a logger that forwards lines at or above level.
func NewCallbackLogger(sink Sink, level Level) *CallbackLogger {
	return &CallbackLogger{sink: sink, level: level}
}

func (c *CallbackLogger) emit(level Level, msg string, fields ...Field) {
	if level < c.level || c.sink == nil {
		return
	}
	c.sink(formatLine(msg, append(c.fields, fields...)), level)
}

func (c *CallbackLogger) Debug(msg string, fields ...Field) { c.emit(LevelDebug, msg, fields...) }
func (c *CallbackLogger) Info(msg string, fields ...Field)  { c.emit(LevelInfo, msg, fields...) }
func (c *CallbackLogger) Warn(msg string, fields ...Field)  { c.emit(LevelWarn, msg, fields...) }
func (c *CallbackLogger) Error(msg string, fields ...Field) { c.emit(LevelError, msg, fields...) }

func (c *CallbackLogger) WithFields(fields ...Field) Logger {
	return &CallbackLogger{
		sink:   c.sink,
		level:  c.level,
		fields: append(c.fields, fields...),
	}
}
