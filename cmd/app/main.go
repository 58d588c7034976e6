package main

import (
	"autoecole/config"
	"autoecole/di"
	"autoecole/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	sweeper := di.InitializeSweeper()
	sweeper.Start()

	defer sweeper.Stop()

	http := di.InitializeService()
	http.Serve()
}
