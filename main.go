package main

import (
	"os"

	"github.com/spindlework/a2a-runtime/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
