package main

import (
	"go-events-api/core/logger"
	"go-events-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
