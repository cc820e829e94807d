package main

import (
	"os"

	"github.com/agentskills/statusline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
