package interfaces

import (
	"context"

	"github.com/panelkit/panelship/pkg/domain/model"
)

// RegistryClient talks to the application marketplace
type RegistryClient interface {
	// GetProject resolves a project by its identifier
	GetProject(ctx context.Context, projectID string) (*model.Project, error)

	// PublishPackage uploads the manifest and codebase as a new package revision
	PublishPackage(ctx context.Context, project *model.Project, manifest *model.Manifest) (*model.Package, error)

	// GetApp finds the app named name in the project. An error tagged
	// types.ErrTagNotFound is returned when there is none.
	GetApp(ctx context.Context, project *model.Project, name string) (*model.App, error)

	// UpdateApp persists changes of an existing app
	UpdateApp(ctx context.Context, app *model.App) (*model.App, error)

	// InstallApp creates an app bound to the package revision
	InstallApp(ctx context.Context, project *model.Project, pkg *model.Package, name string) (*model.App, error)

	// CurrentUserEmail returns the email of the authenticated user
	CurrentUserEmail(ctx context.Context) (string, error)
}
