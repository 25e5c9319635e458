package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/domain/types"
	"github.com/panelkit/panelship/pkg/infra/cmdexec"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Workspace holds the paths and commands of the panel project
type Workspace struct {
	ConfigPath    string
	PanelName     string
	DistDir       string
	PanelsDir     string
	ManifestPath  string
	ChangelogPath string
	CodebaseDir   string
	InstallCmd    string
	BuildCmd      string
}

// workspaceFile is the TOML representation of Workspace
type workspaceFile struct {
	PanelName   string `toml:"panel_name"`
	DistDir     string `toml:"dist_dir"`
	PanelsDir   string `toml:"panels_dir"`
	Manifest    string `toml:"manifest"`
	Changelog   string `toml:"changelog"`
	CodebaseDir string `toml:"codebase_dir"`
	InstallCmd  string `toml:"install_cmd"`
	BuildCmd    string `toml:"build_cmd"`
}

// Flags returns CLI flags for workspace configuration
func (c *Workspace) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML workspace file, explicit flags take precedence",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("PANELSHIP_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "panel-name",
			Usage:       "Panel name, the bundle is moved to <panels-dir>/<panel-name>",
			Value:       "referenceViewer",
			Destination: &c.PanelName,
			Sources:     cli.EnvVars("PANELSHIP_PANEL_NAME"),
		},
		&cli.StringFlag{
			Name:        "dist-dir",
			Usage:       "Directory the build tool writes the bundle to",
			Value:       "dist",
			Destination: &c.DistDir,
		},
		&cli.StringFlag{
			Name:        "panels-dir",
			Usage:       "Directory holding built panels",
			Value:       "panels",
			Destination: &c.PanelsDir,
		},
		&cli.StringFlag{
			Name:        "manifest",
			Usage:       "Path to the DPK manifest",
			Value:       "dataloop.json",
			Destination: &c.ManifestPath,
		},
		&cli.StringFlag{
			Name:        "changelog",
			Usage:       "Path to the changelog",
			Value:       "CHANGELOG.md",
			Destination: &c.ChangelogPath,
		},
		&cli.StringFlag{
			Name:        "codebase-dir",
			Usage:       "Directory packed and uploaded on publish",
			Value:       ".",
			Destination: &c.CodebaseDir,
		},
		&cli.StringFlag{
			Name:        "install-cmd",
			Usage:       "Command installing build dependencies",
			Value:       "npm i",
			Destination: &c.InstallCmd,
		},
		&cli.StringFlag{
			Name:        "build-cmd",
			Usage:       "Command building the bundle",
			Value:       "npm run build",
			Destination: &c.BuildCmd,
		},
	}
}

// Workspace merges the optional TOML file into c and returns the workspace.
// isSet reports whether a flag was given explicitly; such flags are kept.
func (c *Workspace) Workspace(isSet func(name string) bool) (*model.Workspace, error) {
	if c.ConfigPath != "" {
		if err := c.mergeFile(isSet); err != nil {
			return nil, err
		}
	}

	installCmd, err := cmdexec.ParseCommand(c.InstallCmd)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid install command")
	}
	buildCmd, err := cmdexec.ParseCommand(c.BuildCmd)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid build command")
	}

	if c.PanelName == "" {
		return nil, goerr.New("panel name is empty", goerr.T(types.ErrTagConfig))
	}

	return &model.Workspace{
		PanelName:     c.PanelName,
		DistDir:       c.DistDir,
		PanelsDir:     c.PanelsDir,
		ManifestPath:  c.ManifestPath,
		ChangelogPath: c.ChangelogPath,
		CodebaseDir:   c.CodebaseDir,
		InstallCmd:    installCmd,
		BuildCmd:      buildCmd,
	}, nil
}

func (c *Workspace) mergeFile(isSet func(name string) bool) error {
	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", c.ConfigPath), goerr.T(types.ErrTagConfig))
	}

	var file workspaceFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.ConfigPath), goerr.T(types.ErrTagConfig))
	}

	for _, f := range []struct {
		flag  string
		value string
		dst   *string
	}{
		{"panel-name", file.PanelName, &c.PanelName},
		{"dist-dir", file.DistDir, &c.DistDir},
		{"panels-dir", file.PanelsDir, &c.PanelsDir},
		{"manifest", file.Manifest, &c.ManifestPath},
		{"changelog", file.Changelog, &c.ChangelogPath},
		{"codebase-dir", file.CodebaseDir, &c.CodebaseDir},
		{"install-cmd", file.InstallCmd, &c.InstallCmd},
		{"build-cmd", file.BuildCmd, &c.BuildCmd},
	} {
		if f.value != "" && !isSet(f.flag) {
			*f.dst = f.value
		}
	}
	return nil
}
