package main

import (
	"os"

	"tutor-router/internal/logger"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	defer logger.Sync()
	return newRootCommand().Execute()
}
