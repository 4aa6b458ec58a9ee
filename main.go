package main

import (
	"os"

	"moonhem/config"
	"moonhem/gateway"
	"moonhem/services"
	"moonhem/utils"
	"moonhem/views"
	"moonhem/web"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Moonhem listing browser starting ===")
	logger.Info("Config: api %s | listen %s | page size %d",
		cfg.APIBaseURL, cfg.ListenAddr, cfg.PageSize)

	api := gateway.NewClient(cfg, logger)
	norm := services.NewNormalizer(logger)

	listings := views.NewListingsView(api, norm, logger, cfg.PageSize)
	agents := views.NewAgentsView(api, norm, logger)
	session := views.NewSession(api, logger)

	srv := web.NewServer(cfg, logger, listings, agents, session)
	if err := srv.Start(); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
