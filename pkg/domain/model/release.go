package model

import (
	"github.com/panelkit/panelship/pkg/domain/types"
	"github.com/samber/lo"
)

// ReleaseOptions selects which parts of the workflow run
type ReleaseOptions struct {
	Tag                bool
	Publish            bool
	ProjectID          string
	BumpKind           types.BumpKind
	Actor              string // Person credited in the notification, resolved from the registry when empty
	FailOnPublishError bool
}

// PublishResult is the outcome of publishing and installing. Err holds the
// cause when Success is false.
type PublishResult struct {
	Success   bool
	Err       error
	Project   *Project
	Package   *Package
	App       *App
	Installed bool // true for the install path, false for the update path
}

// ReleaseReport records what a workflow run did
type ReleaseReport struct {
	Version string // Bumped version, empty unless tagged
	Stages  []types.Stage
	Publish *PublishResult
}

// Reached reports whether the run got to stage s
func (r *ReleaseReport) Reached(s types.Stage) bool {
	return lo.Contains(r.Stages, s)
}

// Notification is everything the notifier needs to report a publish
type Notification struct {
	AppName     string
	AppVersion  string
	Environment string
	Actor       string
	Result      *PublishResult
}
