package main

import (
	"os"

	"github.com/yoanbernabeu/slotsave/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
