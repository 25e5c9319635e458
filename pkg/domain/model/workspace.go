package model

import "path/filepath"

// Workspace locates the files and commands of the panel project being released
type Workspace struct {
	PanelName     string
	DistDir       string // Build tool output, moved into Destination()
	PanelsDir     string
	ManifestPath  string
	ChangelogPath string
	CodebaseDir   string // Root archived and uploaded on publish

	InstallCmd []string
	BuildCmd   []string
}

// Destination is the fixed path the built bundle is presented at
func (w *Workspace) Destination() string {
	return filepath.Join(w.PanelsDir, w.PanelName)
}
