package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/tagsync/internal/cli/commands"
	"github.com/kutbudev/tagsync/internal/log"
)

// Version will be set during build with ldflags
var Version = "dev"

func main() {
	app := &cli.App{
		Name:     "tagsync",
		Usage:    "Back up and restore tag groups and tags of a GraphQL workspace",
		Version:  Version,
		Flags:    commands.GlobalFlags(),
		Commands: commands.Commands(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.RunContext(ctx, os.Args)
	stop()
	log.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
