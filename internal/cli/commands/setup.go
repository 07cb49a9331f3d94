package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/kutbudev/tagsync/internal/config"
)

func NewSetupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure credentials and the config file",
		Subcommands: []*cli.Command{
			{
				Name:  "token",
				Usage: "Store the API token in the system keyring",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "delete", Usage: "Remove the stored token"},
				},
				Action: func(c *cli.Context) error {
					if c.Bool("delete") {
						if err := config.DeleteToken(); err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, "✅ API token removed")
						return nil
					}
					return handleTokenSetup(c)
				},
			},
			{
				Name:  "init",
				Usage: "Write a config file with the given base URL",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					if err := config.Save(cfg, c.String("config")); err != nil {
						return fmt.Errorf("could not save config: %w", err)
					}
					fmt.Fprintln(c.App.Writer, "✅ Configuration saved successfully!")
					return nil
				},
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowSubcommandHelp(c)
		},
	}
}

func handleTokenSetup(c *cli.Context) error {
	var token string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		prompt := &survey.Password{Message: "API token:"}
		if err := survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	} else {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("could not read API token: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("API token is required")
	}
	if err := config.StoreToken(token); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "✅ API token saved (%s)\n", config.TokenBackend())
	return nil
}
