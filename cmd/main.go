package main

import (
	"os"

	"github.com/stakegraph/stakegraph/cmd/stakegraph"
)

func main() {
	if err := stakegraph.Execute(); err != nil {
		os.Exit(1)
	}
}
