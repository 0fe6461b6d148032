package main

import (
	"os"

	"github.com/coala/coala-quickstart/build-tools/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
