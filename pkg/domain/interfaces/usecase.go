package interfaces

import (
	"context"

	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/domain/types"
)

// Builder produces the panel bundle at the workspace destination
type Builder interface {
	Build(ctx context.Context) error
}

// Bumper bumps, tags and pushes a new version and returns it
type Bumper interface {
	Bump(ctx context.Context, kind types.BumpKind) (string, error)
}

// Publisher publishes the DPK and installs or updates the app. Failures are
// reported in the result, never returned.
type Publisher interface {
	Publish(ctx context.Context, projectID string, manifest *model.Manifest) *model.PublishResult
}

// Notifier reports a publish result. It returns false when nothing was sent.
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) (bool, error)
}
