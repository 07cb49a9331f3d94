package commands

import "github.com/urfave/cli/v2"

// Commands returns every top-level command of the CLI.
func Commands() []*cli.Command {
	return []*cli.Command{
		// Sync
		NewBackupCommand(),
		NewPlanCommand(),
		NewRestoreCommand(),

		// Meta
		NewSetupCommand(),
		NewConfigCommand(),
	}
}
