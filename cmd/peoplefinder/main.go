package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/acgh213/peoplefinder/internal/config"
	"github.com/acgh213/peoplefinder/internal/logging"
	"github.com/acgh213/peoplefinder/internal/peopleapi"
)

func main() {
	app := &cli.Command{
		Name:  "peoplefinder",
		Usage: "Search people by name and browse their profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "TOML configuration file",
				Value: "peoplefinder.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override LOG_LEVEL (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			searchCommand(),
			userCommand(),
			browseCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads configuration and builds the logger and API client shared by
// every command.
func setup(c *cli.Command) (*config.Config, *slog.Logger, *peopleapi.Client, error) {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	logger := logging.New(os.Stderr, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	client := peopleapi.New(cfg.APIBaseURL,
		peopleapi.WithTimeout(cfg.HTTPTimeout),
		peopleapi.WithLogger(logger),
	)
	return cfg, logger, client, nil
}
