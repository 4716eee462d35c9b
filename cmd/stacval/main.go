package main

import (
	"os"

	"github.com/spatiolabs/stacval/internal/adapters/driving/cli"
)

func main() {
	os.Exit(cli.Execute())
}
