package main

import (
	"os"

	"github.com/vladimiradmaev/tech-breaks/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
