package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/interfaces"
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/domain/types"
)

type publisher struct {
	registry interfaces.RegistryClient
}

// NewPublisher creates a Publisher backed by the registry client
func NewPublisher(registry interfaces.RegistryClient) interfaces.Publisher {
	return &publisher{registry: registry}
}

// Publish publishes manifest to the project and installs or updates its app.
// Every failure, including a panic in the registry client, ends up in the result.
func (uc *publisher) Publish(ctx context.Context, projectID string, manifest *model.Manifest) (result *model.PublishResult) {
	result = &model.PublishResult{}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Err = goerr.New("panic while publishing",
				goerr.V("recover", fmt.Sprint(r)),
				goerr.V("project_id", projectID),
			)
		}
	}()

	if err := uc.publish(ctx, projectID, manifest, result); err != nil {
		result.Err = err
		return result
	}

	result.Success = true
	return result
}

func (uc *publisher) publish(ctx context.Context, projectID string, manifest *model.Manifest, result *model.PublishResult) error {
	logger := ctxlog.From(ctx)

	if err := types.ValidateProjectID(projectID); err != nil {
		return err
	}

	project, err := uc.registry.GetProject(ctx, projectID)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve project", goerr.V("project_id", projectID))
	}
	result.Project = project
	logger.Info("Publishing to project", "project", project.Name, "project_id", project.ID)

	pkg, err := uc.registry.PublishPackage(ctx, project, manifest)
	if err != nil {
		return goerr.Wrap(err, "failed to publish dpk")
	}
	result.Package = pkg
	logger.Info("Published successfully",
		"dpk_name", pkg.Name,
		"dpk_version", pkg.Version,
		"dpk_id", pkg.ID,
	)

	app, err := uc.registry.GetApp(ctx, project, pkg.DisplayName)
	switch {
	case err == nil:
		logger.Info("Already installed, updating", "app_id", app.ID, "from", app.DpkVersion, "to", pkg.Version)
		app.DpkVersion = pkg.Version
		updated, err := uc.registry.UpdateApp(ctx, app)
		if err != nil {
			return goerr.Wrap(err, "failed to update app", goerr.V("app_id", app.ID))
		}
		result.App = updated
		logger.Info("Update done", "app_id", updated.ID)

	case goerr.HasTag(err, types.ErrTagNotFound):
		logger.Info("Installing", "app_name", pkg.DisplayName)
		installed, err := uc.registry.InstallApp(ctx, project, pkg, pkg.DisplayName)
		if err != nil {
			return goerr.Wrap(err, "failed to install app", goerr.V("app_name", pkg.DisplayName))
		}
		result.App = installed
		result.Installed = true
		logger.Info("Installed", "app_id", installed.ID)

	default:
		return goerr.Wrap(err, "failed to look up app", goerr.V("app_name", pkg.DisplayName))
	}

	return nil
}
