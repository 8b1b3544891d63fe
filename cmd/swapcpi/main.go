package main

import (
	"os"

	"github.com/lugondev/swapcpi/cmd/swapcpi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
