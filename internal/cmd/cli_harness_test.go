package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sampleExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3 ADD_DATE="1" PERSONAL_TOOLBAR_FOLDER="true">Bookmarks bar</H3>
    <DL><p>
        <DT><A HREF="https://go.dev" ADD_DATE="1">Go</A>
        <DT><H3 ADD_DATE="1">Dev</H3>
        <DL><p>
            <DT><A HREF="https://github.com/golang/go">golang/go</A>
            <DT><H3>Docs</H3>
            <DL><p>
                <DT><A HREF="https://pkg.go.dev">pkg.go.dev</A>
            </DL><p>
        </DL><p>
        <DT><H3>Empty</H3>
        <DL><p>
        </DL><p>
    </DL><p>
</DL><p>
`

// cliRun describes one invocation of rootCmd.
type cliRun struct {
	args  []string
	stdin string
	env   map[string]string
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes rootCmd against buffers with a throwaway config file
// unless the arguments name one.
func runCLI(t *testing.T, run cliRun) cliResult {
	t.Helper()
	restore := snapshotCLIState()
	defer restore()

	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	in := strings.NewReader(run.stdin)

	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(in)
	rootCmd.SetContext(withIO(context.Background(), in, out, errBuf))

	envGet = func(key string) string { return run.env[key] }

	args := run.args
	if !hasArg(args, "--config") {
		args = append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...)
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return cliResult{stdout: out.String(), stderr: errBuf.String(), err: err}
}

func hasArg(args []string, name string) bool {
	for _, a := range args {
		if a == name || strings.HasPrefix(a, name+"=") {
			return true
		}
	}
	return false
}

func writeTestFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func snapshotCLIState() func() {
	prevOutputFmt := outputFmt
	prevOutputType := outputType
	prevDebug := debug
	prevConfig := configFile
	prevProjectDir := projectDir
	prevQueryExpr := queryExpr
	prevQueryFile := queryFile
	prevErrorFmt := errorFmt
	prevQuiet := quietFlag
	prevLimit := resultLimit
	prevActive := activeConfig

	prevParseStats, prevParseFlat := parseStats, parseFlat
	prevLatestAll := latestAll
	prevRenderDocument := renderDocument
	prevServeAddr := serveAddr
	prevImportFile, prevImportDryRun, prevImportNoNav := importFile, importDryRun, importNoNav

	prevEnvGet := envGet
	prevNow := nowFunc
	prevRunServer := runServer

	prevOut := rootCmd.OutOrStdout()
	prevErr := rootCmd.ErrOrStderr()
	prevIn := rootCmd.InOrStdin()
	prevCtx := rootCmd.Context()

	return func() {
		outputFmt = prevOutputFmt
		outputType = prevOutputType
		debug = prevDebug
		configFile = prevConfig
		projectDir = prevProjectDir
		queryExpr = prevQueryExpr
		queryFile = prevQueryFile
		errorFmt = prevErrorFmt
		quietFlag = prevQuiet
		resultLimit = prevLimit
		activeConfig = prevActive

		parseStats, parseFlat = prevParseStats, prevParseFlat
		latestAll = prevLatestAll
		renderDocument = prevRenderDocument
		serveAddr = prevServeAddr
		importFile, importDryRun, importNoNav = prevImportFile, prevImportDryRun, prevImportNoNav

		envGet = prevEnvGet
		nowFunc = prevNow
		runServer = prevRunServer

		rootCmd.SetOut(prevOut)
		rootCmd.SetErr(prevErr)
		rootCmd.SetIn(prevIn)
		rootCmd.SetContext(prevCtx)
		rootCmd.SetArgs(nil)
		resetFlagChanges(rootCmd)
	}
}

// resetFlagChanges clears Changed on every flag of cmd and its subcommands so
// the next Execute sees a clean command line.
func resetFlagChanges(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) { f.Changed = false }
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlagChanges(sub)
	}
}
