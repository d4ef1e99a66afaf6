package main

import (
	"os"

	"github.com/seralvarez/compup/cmd/compup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
