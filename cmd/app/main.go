package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
)

// @title Hotel Booking API
// @version 1.0
// @description Guest booking, pricing and dashboard API for the hotel front desk.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
