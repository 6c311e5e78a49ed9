package main

import (
	"os"

	"github.com/existflow/taskapi/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
