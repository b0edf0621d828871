// Command datasyncq builds datasync query strings and lists remote tables.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(GetExitCode(err))
	}
}
