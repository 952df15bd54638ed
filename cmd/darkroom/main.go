package main

import (
	"os"

	"github.com/darkroom-dev/darkroom/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
