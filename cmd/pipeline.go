package main

import (
	"context"
	"fmt"

	"github.com/jsingh/trendtracker/internal/formatter"
	"github.com/jsingh/trendtracker/internal/scraper"
	"github.com/jsingh/trendtracker/internal/services"
	"github.com/jsingh/trendtracker/internal/shared"
	"github.com/jsingh/trendtracker/internal/tasks"
	"github.com/jsingh/trendtracker/internal/ui"
	"github.com/urfave/cli/v3"
)

// Setup creates a config.toml from the embedded example.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Wrote %s\n", configPath)
	r.writePlain("Add your catalog credentials to %s and you are ready to run\n", r.config.Credentials.Path)
	return nil
}

// Scrape fetches one listing section and emits the raw, unenriched collection.
func (r *Runner) Scrape(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	section := cmd.String("section")
	pages := cmd.Int("pages")
	outputPath := cmd.String("output")
	pretty := cmd.Bool("pretty")

	if pages <= 0 {
		pages = config.Source.Pages
	}

	s := scraper.New(scraper.Opts{
		BaseURL:   config.Source.BaseURL,
		Client:    r.client(config),
		RateLimit: config.HTTP.RateLimit,
		Logger:    r.logger,
	})

	r.logger.Info("scraping listings", "section", section, "pages", pages)
	collection, err := s.ScrapeListings(ctx, section, pages)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := formatter.WriteJSON(collection, outputPath); err != nil {
			return err
		}
		r.writePlain("✓ Wrote %d entries to %s\n", len(collection), outputPath)
		return nil
	}

	return r.writeJSON(collection, pretty)
}

// Run executes the full pipeline over the configured or requested sections.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	sections := cmd.StringSlice("section")
	format := cmd.String("format")

	credentialsPath := cmd.String("credentials")
	if credentialsPath == "" {
		credentialsPath = config.Credentials.Path
	}

	credentials, err := shared.LoadCredentials(credentialsPath)
	if err != nil {
		return err
	}

	catalog, err := services.NewSpotifyService(services.SpotifyOpts{
		ClientID:     credentials.ClientID,
		ClientSecret: credentials.ClientSecret,
		BaseURL:      config.Catalog.BaseURL,
		TokenURL:     config.Catalog.TokenURL,
		RateLimit:    config.HTTP.RateLimit,
		HTTPClient:   r.client(config),
		Logger:       r.logger,
	})
	if err != nil {
		return err
	}

	engine := tasks.NewEngine(tasks.EngineOpts{
		Scraper: scraper.New(scraper.Opts{
			BaseURL:   config.Source.BaseURL,
			Client:    r.client(config),
			RateLimit: config.HTTP.RateLimit,
			Logger:    r.logger,
		}),
		Catalog: catalog,
		Config:  config,
		Logger:  r.logger,
	})

	result, err := engine.Run(ctx, sections, format)
	if err != nil {
		return err
	}

	return r.writePlain("%s", ui.RenderSummary(result))
}
