package main

import (
	"os"

	"github.com/hookewild/curator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
