package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/tagsync/internal/api"
	"github.com/kutbudev/tagsync/internal/config"
	"github.com/kutbudev/tagsync/internal/log"
	"github.com/kutbudev/tagsync/internal/snapshot"
	"github.com/kutbudev/tagsync/internal/tags"
)

// GlobalFlags are shared by every command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to config file (default ~/.tagsync/config.yaml)",
			EnvVars: []string{"TAGSYNC_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Service base URL, e.g. https://eu.leanix.net",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
	}
}

func snapshotFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "dir",
			Usage: "Snapshot directory for the file backend",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Snapshot file format: json or yaml",
		},
	}
}

// loadConfig reads the config and applies command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if v := c.String("base-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := c.String("dir"); v != "" {
		cfg.Snapshot.Dir = v
	}
	if v := c.String("format"); v != "" {
		cfg.Snapshot.Format = v
	}
	return cfg, nil
}

func initLogging(cfg *config.Config) error {
	return log.Init(log.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
}

// newService builds the api client, snapshot store and tag service for a command.
func newService(c *cli.Context) (*tags.Service, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	if err := initLogging(cfg); err != nil {
		return nil, nil, err
	}
	if err := config.ResolveToken(cfg); err != nil {
		return nil, nil, fmt.Errorf("%w: run 'tagsync setup token' or set TAGSYNC_API_TOKEN", err)
	}

	store, err := snapshot.Open(cfg.Snapshot)
	if err != nil {
		return nil, nil, err
	}

	client := api.NewClient(c.Context, cfg.API)
	log.Debugw("client ready", "graphql_url", client.GraphQLURL, "request_id", client.RequestID)
	return tags.NewService(client, store), cfg, nil
}
