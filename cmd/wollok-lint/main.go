// Command wollok-lint runs the static validator (and lists the native
// bridge catalogue) over a JSON-encoded AST Environment.
package main

import (
	"fmt"
	"os"

	"github.com/wollok-lang/wollok-go/cmd/wollok-lint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
