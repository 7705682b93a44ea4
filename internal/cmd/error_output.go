package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/menav-bookmarks/internal/bookmarks"
	"github.com/salmonumbrella/menav-bookmarks/internal/discover"
	"github.com/salmonumbrella/menav-bookmarks/internal/output"
	"github.com/salmonumbrella/menav-bookmarks/internal/siteconfig"
)

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid --error-format %q (expected auto|text|json|yaml)", format)
	}
}

func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON, output.FormatNDJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(stderrFromContext(ctx))
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(stderrFromContext(ctx))
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	_, _ = fmt.Fprintln(stderrFromContext(ctx), err)
}

type errorBody struct {
	Message  string `json:"message" yaml:"message"`
	Type     string `json:"type" yaml:"type"`
	Category string `json:"category" yaml:"category"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error" yaml:"error"`
}

func buildErrorEnvelope(err error) errorEnvelope {
	body := errorBody{
		Message:  err.Error(),
		Type:     "error",
		Category: "system",
	}

	var noFiles discover.NoFilesError
	var emptyTree bookmarks.EmptyTreeError
	var patchErr siteconfig.PatchError
	var pathErr *fs.PathError

	switch {
	case errors.As(err, &noFiles):
		body.Type, body.Category, body.Path = "no_files", "user", noFiles.Dir
	case errors.As(err, &emptyTree):
		body.Type, body.Category, body.Path = "empty_tree", "user", emptyTree.File
	case errors.As(err, &patchErr):
		body.Type, body.Path = "site_config", patchErr.Path
	case errors.Is(err, fs.ErrNotExist):
		body.Type, body.Category = "not_found", "user"
		if errors.As(err, &pathErr) {
			body.Path = pathErr.Path
		}
	}

	return errorEnvelope{Error: body}
}
