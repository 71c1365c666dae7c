package main

import (
	"os"

	_ "time/tzdata"
)

func main() {
	if err := newRootCmd(&cliOptions{}).Execute(); err != nil {
		os.Exit(1)
	}
}
