package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func NewConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the effective configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the configuration with secrets masked",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					out, err := yaml.Marshal(cfg.Masked())
					if err != nil {
						return err
					}
					fmt.Fprint(c.App.Writer, string(out))
					return nil
				},
			},
		},
	}
}
