package main

import (
	"os"

	"github.com/vecscope/vecscope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
