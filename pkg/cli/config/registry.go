package config

import (
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/interfaces"
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/infra/registry"
	"github.com/urfave/cli/v3"
)

// Registry holds marketplace configuration
type Registry struct {
	URL   string
	Token string `masq:"secret"`
	Env   string
}

// Flags returns CLI flags for registry configuration
func (c *Registry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "registry-url",
			Usage:       "Base URL of the marketplace API",
			Value:       "https://gate.dataloop.ai/api/v1/",
			Destination: &c.URL,
			Sources:     cli.EnvVars("PANELSHIP_REGISTRY_URL"),
		},
		&cli.StringFlag{
			Name:        "registry-token",
			Usage:       "Bearer token for the marketplace API",
			Destination: &c.Token,
			Sources:     cli.EnvVars("PANELSHIP_REGISTRY_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "registry-env",
			Usage:       "Environment name shown in notifications",
			Value:       "ford",
			Destination: &c.Env,
			Sources:     cli.EnvVars("PANELSHIP_REGISTRY_ENV"),
		},
	}
}

// NewClient creates a registry client that packs the codebase of ws on publish
func (c *Registry) NewClient(ws *model.Workspace) (interfaces.RegistryClient, error) {
	excludes := append([]string{}, registry.DefaultExcludes...)
	if ws.DistDir != "" {
		// The dist dir is relative to the working directory, not the codebase
		dist, err := filepath.Abs(ws.DistDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve dist dir", goerr.V("dist_dir", ws.DistDir))
		}
		excludes = append(excludes, dist)
	}

	return registry.NewClient(c.URL,
		registry.WithToken(c.Token),
		registry.WithCodebase(ws.CodebaseDir, excludes),
	)
}
