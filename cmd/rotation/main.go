package main

import (
	"os"

	"github.com/chenglinzhou/ashare-rotation/cmd/rotation/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
