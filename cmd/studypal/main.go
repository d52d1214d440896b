package main

import (
	"os"

	"studypal/cmd/handlers"
	"studypal/internal/logger"
)

func main() {
	logger.Init()
	if err := handlers.Execute(); err != nil {
		os.Exit(1)
	}
}
