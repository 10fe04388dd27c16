// Package main provides the CLI entrypoint for csvmap.
//
// csvmap generates record schemas for Go structs and checks CSV headers
// against them:
//   - gen: write <type>_csvmap.go with the column descriptors and schema
//   - headers: show how each header column of a file matches the struct
//   - init: write a mapping profile inferred from a file header
package main

import (
	"fmt"
	"os"

	"csv-mapper/cmd/csvmap/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
