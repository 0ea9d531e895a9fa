// Package main provides the cssaudit CLI tool for reconciling CSS class
// definitions with class usage in templates and components.
package main

import (
	"errors"
	"fmt"
	"os"
)

// exitError carries a process exit code out of a command without printing
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}
