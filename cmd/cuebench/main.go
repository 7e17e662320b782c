package main

import (
	"os"

	"github.com/alexshd/cuebench/cmd/cuebench/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
