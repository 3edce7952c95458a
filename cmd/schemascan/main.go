package main

import (
	"os"

	"github.com/specforge/schemascan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
