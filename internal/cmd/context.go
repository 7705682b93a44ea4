package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type errorFormatKey struct{}
type loggerKey struct{}
type ioKey struct{}

// streams are the command's standard streams. Commands read them from the
// context so tests can run rootCmd against buffers.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func withIO(ctx context.Context, in io.Reader, out, err io.Writer) context.Context {
	return context.WithValue(ctx, ioKey{}, streams{in: in, out: out, err: err})
}

func streamsFromContext(ctx context.Context) streams {
	var s streams
	if ctx != nil {
		s, _ = ctx.Value(ioKey{}).(streams)
	}
	if s.in == nil {
		s.in = os.Stdin
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.err == nil {
		s.err = os.Stderr
	}
	return s
}

func stdinFromContext(ctx context.Context) io.Reader  { return streamsFromContext(ctx).in }
func stdoutFromContext(ctx context.Context) io.Writer { return streamsFromContext(ctx).out }
func stderrFromContext(ctx context.Context) io.Writer { return streamsFromContext(ctx).err }

// WithErrorFormat stores the error format in the context.
func WithErrorFormat(ctx context.Context, format string) context.Context {
	return context.WithValue(ctx, errorFormatKey{}, format)
}

// ErrorFormatFromContext retrieves the error format from context.
func ErrorFormatFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(errorFormatKey{}).(string); ok {
		return v
	}
	return ""
}

// WithLogger stores the progress logger in the context.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// loggerFromContext returns the progress logger, or one that discards
// everything when none is set.
func loggerFromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if v, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && v != nil {
			return v
		}
	}
	return slog.New(slog.DiscardHandler)
}
