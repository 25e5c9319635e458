package cli

import (
	"context"
	"fmt"

	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdChangelog() *cli.Command {
	var (
		manifestPath  string
		changelogPath string
		version       string
	)

	return &cli.Command{
		Name:  "changelog",
		Usage: "Print the release notes that would be sent on publish",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "manifest",
				Usage:       "Path to the DPK manifest",
				Value:       "dataloop.json",
				Destination: &manifestPath,
			},
			&cli.StringFlag{
				Name:        "changelog",
				Usage:       "Path to the changelog",
				Value:       "CHANGELOG.md",
				Destination: &changelogPath,
			},
			&cli.StringFlag{
				Name:        "notes-version",
				Usage:       "Version substituted for Unreleased, defaults to the manifest version",
				Destination: &version,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if version == "" {
				manifest, err := model.LoadManifest(manifestPath)
				if err != nil {
					return err
				}
				version = manifest.Version
			}

			notes, err := usecase.LoadReleaseNotes(changelogPath, version)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(c.Root().Writer, notes)
			return err
		},
	}
}
