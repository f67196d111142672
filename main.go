package main

import (
	"os"

	"github.com/vanrota/vanrota/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
