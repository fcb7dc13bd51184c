package main

import (
	"os"

	"github.com/rustyeddy/notional/cmd/notional/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
