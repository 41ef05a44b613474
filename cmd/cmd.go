// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand writes a starter configuration file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a starter config.toml",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.Setup,
	}
}

// scrapeCommand runs the listing scraper without enrichment
func scrapeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scrape",
		Usage: "Scrape a listing section and print the raw collection",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "section",
				Aliases: []string{"s"},
				Usage:   "Listing section to scrape (albums or tracks)",
				Value:   "albums",
			},
			&cli.IntFlag{
				Name:  "pages",
				Usage: "Number of listing pages to fetch (0 uses the configured count)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (prints to stdout when omitted)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Scrape,
	}
}

// runCommand executes the full scrape, enrich, persist pipeline
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Scrape, enrich with catalog metadata, and persist",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringSliceFlag{
				Name:    "section",
				Aliases: []string{"s"},
				Usage:   "Listing sections to process (defaults to the configured sections)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (json or csv, defaults to the configured format)",
			},
			&cli.StringFlag{
				Name:  "credentials",
				Usage: "Path to the JSON credentials file (overrides the configured path)",
			},
		},
		Action: r.Run,
	}
}
