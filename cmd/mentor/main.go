package main

import (
	"os"

	"github.com/dshills/mentor/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
