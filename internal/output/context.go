package output

import "context"

type optionsKey struct{}

// Options are the output settings chosen on the command line.
type Options struct {
	Format Format
	// Query is a jq expression applied to structured output.
	Query string
	// Limit caps list output; 0 means no limit.
	Limit int
}

// WithOptions attaches opts to ctx.
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// OptionsFromContext returns the options stored in ctx. The zero value has
// FormatText.
func OptionsFromContext(ctx context.Context) Options {
	opts, _ := ctx.Value(optionsKey{}).(Options)
	if opts.Format == "" {
		opts.Format = FormatText
	}
	return opts
}

// WithFormat replaces only the format in ctx.
func WithFormat(ctx context.Context, format Format) context.Context {
	opts := OptionsFromContext(ctx)
	opts.Format = format
	return WithOptions(ctx, opts)
}

func FormatFromContext(ctx context.Context) Format { return OptionsFromContext(ctx).Format }
func QueryFromContext(ctx context.Context) string  { return OptionsFromContext(ctx).Query }
func LimitFromContext(ctx context.Context) int     { return OptionsFromContext(ctx).Limit }
