package logging

import "context"

// NoopLogger discards everything. It is the default for library consumers
// that do not pass a logger of their own.
type NoopLogger struct{}

func NewNoopLogger() *NoopLogger { return &NoopLogger{} }

func (n *NoopLogger) Debug(context.Context, string, ...any) {}
func (n *NoopLogger) Info(context.Context, string, ...any)  {}
func (n *NoopLogger) Warn(context.Context, string, ...any)  {}
func (n *NoopLogger) Error(context.Context, string, ...any) {}
func (n *NoopLogger) With(...any) Logger                    { return n }
