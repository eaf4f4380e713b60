package main

import (
	"fmt"
	"os"

	"StrataScan/cmd/stratascan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
