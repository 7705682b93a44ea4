package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/salmonumbrella/menav-bookmarks/internal/config"
	"github.com/salmonumbrella/menav-bookmarks/internal/output"
)

var (
	// Version is set at build time
	version = "dev"
	// Commit is set at build time
	commit = "none"
	// Date is set at build time
	date = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = v
	rootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	return fmt.Sprintf("menav-bookmarks version %s (commit: %s, built: %s)\n", version, commit, date)
}

// Global flags
var (
	outputFmt   string
	outputType  output.Format
	debug       bool
	configFile  string
	projectDir  string
	queryExpr   string
	queryFile   string
	errorFmt    string
	quietFlag   bool
	resultLimit int
)

// activeConfig is the loaded config with environment overrides applied.
var activeConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "menav-bookmarks",
	Short: "Import browser bookmark exports into a MeNav site",
	Long: `menav-bookmarks turns a browser bookmark export (Netscape bookmark HTML)
into the bookmarks page of a MeNav navigation site.

Drop exports into the bookmarks directory of the site project and run
'menav-bookmarks import'. The newest file is parsed, written to
config/user/pages/bookmarks.yml, and linked from the site navigation.

Environment Variables:
  MENAV_BOOKMARKS_DIR            Bookmarks directory (overrides config)
  MENAV_BOOKMARKS_DETERMINISTIC  Set to 1 to omit the generation timestamp`,
	Version:       version,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{}
		skipConfigLoad := cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config")
		if !skipConfigLoad {
			loadedCfg, err := loadConfigFromFlag()
			if err != nil {
				return formatConfigLoadError(err)
			}
			cfg = loadedCfg
		}
		applyEnv(cfg)
		activeConfig = *cfg

		// Output format selection: --output > config > non-terminal json > text
		formatStr := outputFmt
		if !flagChanged(cmd, "output") && !flagChanged(cmd, "format") {
			if v := strings.TrimSpace(cfg.OutputFormat); v != "" {
				formatStr = v
			} else if !isTerminal(cmd.OutOrStdout()) {
				formatStr = "json"
			}
		}
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		outputType = format
		outputFmt = string(format)

		if queryExpr != "" && queryFile != "" {
			return fmt.Errorf("use only one of --query or --query-file")
		}
		if queryFile != "" {
			loaded, err := readInputSource(queryFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			queryExpr = loaded
		}

		ctx := cmd.Context()
		ctx = withIO(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		ctx = output.WithOptions(ctx, output.Options{
			Format: outputType,
			Query:  queryExpr,
			Limit:  resultLimit,
		})
		ctx = WithErrorFormat(ctx, errorFmt)
		ctx = WithLogger(ctx, newLogger(cmd.ErrOrStderr(), debug, quietFlag))
		cmd.SetContext(ctx)
		// Execute reports errors through the root's context.
		cmd.Root().SetContext(ctx)

		if err := validateErrorFormat(errorFmt); err != nil {
			return err
		}
		if effectiveErrorFormat(ctx) != "text" {
			cmd.SilenceUsage = true
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printCommandError(rootCmd.Context(), err)
		return err
	}
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(versionTemplate())

	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format (text|json|ndjson|table|yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "format", "text", "Alias for --output")
	rootCmd.PersistentFlags().StringVar(&queryExpr, "query", "", "jq expression to filter structured output")
	rootCmd.PersistentFlags().StringVar(&queryFile, "query-file", "", "Read jq expression from file (use - for stdin)")
	rootCmd.PersistentFlags().StringVar(&errorFmt, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().IntVar(&resultLimit, "limit", 0, "Limit number of list items in output (0 = unlimited)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ~/.config/menav-bookmarks/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Site project directory (default: current directory)")
}

// newLogger builds the progress logger. Logs go to w so stdout stays
// reserved for command output.
func newLogger(w io.Writer, debug, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case debug:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
