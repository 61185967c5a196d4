package main

import (
	"os"

	"github.com/isabella232/sbt-zero-seven/cmd/sbtboot/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(cli.ExitCode())
}
