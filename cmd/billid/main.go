package main

import (
	"fmt"
	"os"

	"github.com/example/billid/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
