// Package main is the entry point for the fba-quote-service application.
//
// @title           FBA Quote Service API
// @version         1.0.0
// @description     Landed-cost quoting for FBA freight: ocean linehaul, consolidation and US last-mile delivery.
//
//	Last-mile rates come from static rate sheets or the HeyPrimo, Ex-Freight and J.B. Hunt APIs.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/fba-quote-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Quotes
// @tag.description Landed-cost quoting
//
// @tag.name        Transport
// @tag.description Ad hoc lane pricing
//
// @tag.name        Audit
// @tag.description Audit trail queries
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"

	_ "github.com/guttosm/fba-quote-service/docs" // swagger docs

	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	a, err := app.InitializeApp(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize application")
		return 1
	}
	defer a.Close()

	server := app.NewServer(a.Engine, cfg.Server)
	if err := server.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server error")
		return 1
	}
	return 0
}
