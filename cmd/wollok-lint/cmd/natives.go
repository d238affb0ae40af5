package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wollok-lang/wollok-go/internal/natives"
)

var nativesCmd = &cobra.Command{
	Use:   "natives",
	Short: "List the native bridge catalogue",
	Long: `natives prints every (module, selector) pair the native bridge
binds to host code — the game and Sound catalogue, sorted by module then
selector.`,
	RunE: runNatives,
}

func init() {
	rootCmd.AddCommand(nativesCmd)
}

func runNatives(_ *cobra.Command, _ []string) error {
	for _, entry := range natives.DefaultRegistry.List() {
		fmt.Println(entry.String())
	}
	return nil
}
