package main

import (
	"os"

	"github.com/pfxdev/pfx/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
