package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sushihentaime/contentfilter/internal/cli"
)

var Version = "dev"

func main() {
	rootCmd := cli.NewRootCommand(Version)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalidContent) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
