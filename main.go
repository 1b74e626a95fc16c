package main

import (
	"os"

	"github.com/Vikasjoshi008/github-skill-analyzer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
