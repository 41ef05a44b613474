// package tasks implements the scrape, enrich, persist pipeline.
//
// The core abstraction is Engine, which sequences the listing scraper, the
// catalog enrichment passes, and the persistence writer for each configured
// section. Execution is fully sequential: every fetch blocks the pipeline
// until it completes or fails.
package tasks

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/jsingh/trendtracker/internal/formatter"
	"github.com/jsingh/trendtracker/internal/models"
	"github.com/jsingh/trendtracker/internal/scraper"
	"github.com/jsingh/trendtracker/internal/services"
	"github.com/jsingh/trendtracker/internal/shared"
)

// Output formats supported by the persistence step.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// SectionResult summarizes one section's trip through the pipeline.
type SectionResult struct {
	Section    string // Listing section ("albums" or "tracks")
	Scraped    int    // Entries extracted from the listing pages
	Kept       int    // Entries that survived every enrichment pass
	Dropped    int    // Entries removed by the enrichment passes
	OutputPath string // File the section was persisted to
}

// RunResult contains all data from a full pipeline run.
type RunResult struct {
	RunID    string
	Sections []SectionResult
}

// Engine orchestrates the scrape → enrich → persist pipeline.
type Engine struct {
	scraper *scraper.Scraper
	catalog services.Catalog
	config  *shared.Config
	logger  *log.Logger
	runID   string
}

// EngineOpts contains the dependencies for creating an Engine.
type EngineOpts struct {
	Scraper *scraper.Scraper
	Catalog services.Catalog
	Config  *shared.Config
	Logger  *log.Logger
}

// NewEngine creates an Engine; every run shares a generated run id in its
// log context.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	runID := shared.GenerateID()
	return &Engine{
		scraper: opts.Scraper,
		catalog: opts.Catalog,
		config:  opts.Config,
		logger:  shared.WithLogger(opts.Logger, "run_id", runID),
		runID:   runID,
	}
}

// Run executes the pipeline for each section: scrape the listing pages,
// run the enrichment passes in order, and persist the surviving collection.
// Page- and entry-scoped failures are logged and skipped inside the stages;
// an error here means the run cannot proceed at all.
func (g *Engine) Run(ctx context.Context, sections []string, format string) (*RunResult, error) {
	if g.scraper == nil {
		return nil, fmt.Errorf("%w: scraper not initialized", shared.ErrServiceUnavailable)
	}
	if g.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if len(sections) == 0 {
		sections = g.config.Source.Sections
	}
	if format == "" {
		format = g.config.Output.Format
	}
	if format != FormatJSON && format != FormatCSV {
		return nil, fmt.Errorf("%w: unknown output format %q", shared.ErrInvalidArgument, format)
	}

	result := &RunResult{RunID: g.runID}
	for _, section := range sections {
		sectionResult, err := g.runSection(ctx, section, format)
		if err != nil {
			return nil, err
		}
		result.Sections = append(result.Sections, *sectionResult)
	}

	return result, nil
}

func (g *Engine) runSection(ctx context.Context, section, format string) (*SectionResult, error) {
	logger := shared.WithLogger(g.logger, "section", section)

	logger.Info("scraping listing pages", "pages", g.config.Source.Pages)
	collection, err := g.scraper.ScrapeListings(ctx, section, g.config.Source.Pages)
	if err != nil {
		return nil, err
	}
	scraped := len(collection)

	logger.Info("running enrichment passes", "entries", scraped)
	enricher := NewEnricher(g.catalog, logger)
	collection = enricher.Run(ctx, collection)

	outputPath := g.outputPath(section, format)
	logger.Info("persisting collection", "path", outputPath, "entries", len(collection))
	if err := g.persist(collection, outputPath, format); err != nil {
		return nil, err
	}

	return &SectionResult{
		Section:    section,
		Scraped:    scraped,
		Kept:       len(collection),
		Dropped:    scraped - len(collection),
		OutputPath: outputPath,
	}, nil
}

func (g *Engine) persist(collection models.ReleaseCollection, path, format string) error {
	if format == FormatCSV {
		return formatter.WriteCSV(collection, path)
	}
	return formatter.WriteJSON(collection, path)
}

// outputPath resolves the output file for a section: new_<section>.json for
// the structured dump, music_trends.csv for the tabular variant.
func (g *Engine) outputPath(section, format string) string {
	dir := g.config.Output.Directory
	if format == FormatCSV {
		return filepath.Join(dir, "music_trends.csv")
	}
	return filepath.Join(dir, fmt.Sprintf("new_%s.json", section))
}
