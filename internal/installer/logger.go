package installer

// Logger receives progress and diagnostic messages from the pipeline.
// The signature matches log/slog, so a *slog.Logger satisfies it
// directly; library consumers that want silence pass nothing and get
// the no-op implementation.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
