package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wollok-lang/wollok-go/internal/validator"
	"github.com/wollok-lang/wollok-go/pkg/ast"
)

var (
	configPath  string
	failOnWarn  bool
	quietOutput bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [environment.json]",
	Short: "Validate a JSON-encoded AST Environment",
	Long: `lint decodes a JSON-encoded Environment, runs the full rule
catalogue over it, and prints every Problem found.

Examples:
  # Validate a tree and print its diagnostics
  wollok-lint lint environment.json

  # Silence or re-grade specific rules
  wollok-lint lint environment.json --config rules.yaml

  # Exit non-zero when any Warning-level diagnostic is present
  wollok-lint lint environment.json --fail-on-warning`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&configPath, "config", "", "rule configuration file (YAML)")
	lintCmd.Flags().BoolVar(&failOnWarn, "fail-on-warning", false, "exit non-zero when any Warning-level diagnostic is present")
	lintCmd.Flags().BoolVarP(&quietOutput, "quiet", "q", false, "suppress the summary line, print only diagnostics")
}

func runLint(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	env, err := ast.DecodeEnvironment(data)
	if err != nil {
		return fmt.Errorf("decoding environment: %w", err)
	}

	var cfg *validator.Config
	if configPath != "" {
		cfg, err = validator.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	problems := cfg.Apply(validator.ValidateEnvironment(env))

	var errorCount, warningCount int
	for _, p := range problems {
		fmt.Println(p.String())
		if p.Level == validator.Error {
			errorCount++
		} else {
			warningCount++
		}
	}

	if !quietOutput {
		fmt.Printf("%d error(s), %d warning(s)\n", errorCount, warningCount)
	}

	if errorCount > 0 || (failOnWarn && warningCount > 0) {
		return fmt.Errorf("validation failed")
	}
	return nil
}
