package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	apierrors "github.com/kutbudev/tagsync/internal/errors"
	"github.com/kutbudev/tagsync/internal/models"
	"github.com/kutbudev/tagsync/internal/tags"
)

// NewBackupCommand writes the remote tag groups to the snapshot store.
func NewBackupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Save all tag groups and tags to the snapshot store",
		Flags: snapshotFlags(),
		Action: func(c *cli.Context) error {
			svc, _, err := newService(c)
			if err != nil {
				return err
			}

			groups, err := svc.Backup(c.Context)
			if err != nil {
				fmt.Fprintln(c.App.ErrWriter, apierrors.ParseAPIError(err))
				return err
			}

			fmt.Fprintf(c.App.Writer, "✅ Saved %d tag groups with %d tags as '%s'\n",
				len(groups), len(models.Flatten(groups)), tags.SnapshotName)
			return nil
		},
	}
}
