package cmd

import (
	"context"

	"github.com/salmonumbrella/menav-bookmarks/internal/output"
)

func structuredOutputRequested(ctx context.Context) bool {
	return output.IsStructured(output.FormatFromContext(ctx))
}

// printResult writes data to stdout in the format stored in ctx.
func printResult(ctx context.Context, data any) error {
	printer := output.NewPrinter(stdoutFromContext(ctx), output.FormatFromContext(ctx))
	return printer.Print(ctx, data)
}
