package main

import (
	"os"

	"github.com/iw2rmb/evanesce/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
