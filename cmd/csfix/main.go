package main

import (
	"fmt"
	"os"

	"github.com/rudironsoni/csfix"
)

func main() {
	if err := csfix.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
