package main

import (
	"os"

	"github.com/amrelfalogy/smarted/internal/pkg/logger"
	"github.com/amrelfalogy/smarted/internal/server"
)

// @title SmartED Gateway API
// @version 1.0
// @description Same-origin gateway of the SmartED admin console: backend proxy, upload relay with live progress and player embeds.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Backend-issued token, sent as: Bearer <token>

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Gateway finished gracefully.")
}
