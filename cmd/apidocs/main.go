// Package main is the entry point for the apidocs binary.
package main

import (
	"os"

	cli "apidocs/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
