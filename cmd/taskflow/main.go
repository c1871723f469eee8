package main

import (
	"os"

	"github.com/fitz/taskflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
