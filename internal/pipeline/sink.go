package pipeline

import "github.com/yanun0323/logs"

// EventSink receives structured progress events from a pipeline run.
// Injecting it keeps logging off process-wide state: parallel runs get
// independent sinks and tests can capture output deterministically.
type EventSink interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// LogsSink forwards pipeline events to the process logger.
type LogsSink struct{}

func (LogsSink) Infof(format string, args ...any) {
	logs.Infof(format, args...)
}

func (LogsSink) Warnf(format string, args ...any) {
	logs.Warnf(format, args...)
}
