package main

import (
	"os"

	"github.com/edslab/mineraliz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
