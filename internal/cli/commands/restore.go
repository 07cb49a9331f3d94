package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	apierrors "github.com/kutbudev/tagsync/internal/errors"
	"github.com/kutbudev/tagsync/internal/tags"
)

var errAborted = errors.New("restore aborted")

// NewPlanCommand previews what restore would change.
func NewPlanCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Show the operations a restore would issue, without changing anything",
		Flags: append(snapshotFlags(), &cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Also list updates of matched groups and tags",
		}),
		Action: func(c *cli.Context) error {
			svc, _, err := newService(c)
			if err != nil {
				return err
			}

			res, err := svc.Restore(c.Context, tags.RestoreOptions{DryRun: true})
			if err != nil {
				fmt.Fprintln(c.App.ErrWriter, apierrors.ParseAPIError(err))
				return err
			}

			printPlan(c.App.Writer, res.Plan, c.Bool("verbose"))
			fmt.Fprintln(c.App.Writer, renderSummary(res.Plan))
			return nil
		},
	}
}

// NewRestoreCommand makes the remote tag groups match the snapshot.
func NewRestoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "Create, update and delete remote tag groups and tags to match the snapshot",
		Flags: append(snapshotFlags(),
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Apply without asking for confirmation",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Only print the plan",
			},
		),
		Action: func(c *cli.Context) error {
			svc, _, err := newService(c)
			if err != nil {
				return err
			}

			preview, err := svc.Restore(c.Context, tags.RestoreOptions{DryRun: true})
			if err != nil {
				fmt.Fprintln(c.App.ErrWriter, apierrors.ParseAPIError(err))
				return err
			}
			printPlan(c.App.Writer, preview.Plan, false)
			fmt.Fprintln(c.App.Writer, renderSummary(preview.Plan))

			if c.Bool("dry-run") || len(preview.Plan.Operations) == 0 {
				return nil
			}
			if err := confirmRestore(c.Bool("yes")); err != nil {
				return err
			}

			// Re-fetch so the applied plan never runs against stale ids.
			res, err := svc.Restore(c.Context, tags.RestoreOptions{})
			if err != nil {
				fmt.Fprintln(c.App.ErrWriter, apierrors.ParseAPIError(err))
				var applyErr *tags.ApplyError
				if errors.As(err, &applyErr) {
					fmt.Fprintf(c.App.ErrWriter, "⚠️  %d operations were applied before the failure and were not rolled back.\n", applyErr.Applied)
				}
				return err
			}

			fmt.Fprintf(c.App.Writer, "✅ Applied %d operations\n", res.Applied)
			return nil
		},
	}
}

func confirmRestore(yes bool) error {
	if yes {
		return nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("%w: stdin is not a terminal, pass --yes to apply", errAborted)
	}

	ok := false
	prompt := &survey.Confirm{
		Message: "Apply these changes to the remote workspace?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}
