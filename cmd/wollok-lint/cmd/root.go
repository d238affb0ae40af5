package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wollok-lint",
	Short: "Static validator for the Language's AST",
	Long: `wollok-lint runs the rule-based validator over a JSON-encoded
Environment and reports the diagnostics it finds.

It does not parse source: an external parser (or a test fixture) is
expected to have already produced the AST this tool consumes. This
mirrors the validator's own scope — it operates purely on an already
well-formed tree, never on raw source text.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
