package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mr1hm/go-disaster-maps/internal/config"
	"github.com/mr1hm/go-disaster-maps/internal/ingestion"
	"github.com/mr1hm/go-disaster-maps/internal/logging"
	"github.com/mr1hm/go-disaster-maps/internal/menu"
	"github.com/mr1hm/go-disaster-maps/internal/render"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	transport := ingestion.NewHTTPTransport(cfg.Sources.HTTPTimeout)
	defer transport.Close()

	fires := ingestion.NewFireLoader(transport, cfg.Sources.FireURL, cfg.Cache.FirePath)
	quakes := ingestion.NewEarthquakeLoader(transport, cfg.Sources.EarthquakeURL)
	renderer := render.NewHTMLRenderer(cfg.Output.Dir, cfg.Output.PlotlyJSURL, nil)

	m := menu.New(os.Stdin, os.Stdout, fires, quakes, renderer)
	if err := m.Run(context.Background()); err != nil {
		slog.Error("menu stopped", "error", err)
	}
}
