package config

import (
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Release holds the workflow selection
type Release struct {
	Tag                bool
	Publish            bool
	ProjectID          string
	BumpType           string
	Actor              string
	FailOnPublishError bool
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "tag",
			Usage:       "Build, bump the version and push a git tag",
			Destination: &c.Tag,
		},
		&cli.BoolFlag{
			Name:        "publish",
			Usage:       "Publish the DPK and install the app",
			Destination: &c.Publish,
		},
		&cli.StringFlag{
			Name:        "project",
			Usage:       "Project to publish and install to",
			Value:       types.DefaultProjectID,
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("PANELSHIP_PROJECT"),
		},
		&cli.StringFlag{
			Name:        "bump-type",
			Usage:       `Bump version type: "patch"/"prerelease"/"minor"/"major"`,
			Value:       types.BumpPatch.String(),
			Destination: &c.BumpType,
			Sources:     cli.EnvVars("PANELSHIP_BUMP_TYPE"),
		},
		&cli.StringFlag{
			Name:        "actor",
			Usage:       "Who is releasing, defaults to the registry user email",
			Destination: &c.Actor,
			Sources:     cli.EnvVars("GITHUB_ACTOR"),
		},
		&cli.BoolFlag{
			Name:        "fail-on-publish-error",
			Usage:       "Exit non-zero after notifying when publishing failed",
			Destination: &c.FailOnPublishError,
			Sources:     cli.EnvVars("PANELSHIP_FAIL_ON_PUBLISH_ERROR"),
		},
	}
}

// Options validates the configuration and returns workflow options
func (c *Release) Options() (*model.ReleaseOptions, error) {
	kind := types.BumpKind(c.BumpType)
	if c.Tag {
		if err := kind.Validate(); err != nil {
			return nil, err
		}
	}

	return &model.ReleaseOptions{
		Tag:                c.Tag,
		Publish:            c.Publish,
		ProjectID:          c.ProjectID,
		BumpKind:           kind,
		Actor:              c.Actor,
		FailOnPublishError: c.FailOnPublishError,
	}, nil
}
