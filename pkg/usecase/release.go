package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/interfaces"
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/domain/types"
)

const unknownActor = "unknown"

// Release runs the build, bump, publish and notify steps in order
type Release struct {
	builder      interfaces.Builder
	bumper       interfaces.Bumper
	publisher    interfaces.Publisher
	notifier     interfaces.Notifier
	registry     interfaces.RegistryClient
	manifestPath string
	environment  string
}

// NewRelease creates the release workflow. registry is only used to resolve
// the actor when none is given.
func NewRelease(
	builder interfaces.Builder,
	bumper interfaces.Bumper,
	publisher interfaces.Publisher,
	notifier interfaces.Notifier,
	registry interfaces.RegistryClient,
	manifestPath string,
	environment string,
) *Release {
	return &Release{
		builder:      builder,
		bumper:       bumper,
		publisher:    publisher,
		notifier:     notifier,
		registry:     registry,
		manifestPath: manifestPath,
		environment:  environment,
	}
}

// Run executes the workflow selected by opts. Build and bump failures are
// returned immediately; a publish failure is reported in the notification and
// only returned when opts.FailOnPublishError is set.
func (uc *Release) Run(ctx context.Context, opts *model.ReleaseOptions) (*model.ReleaseReport, error) {
	logger := ctxlog.From(ctx)
	report := &model.ReleaseReport{}

	if opts.Tag {
		// Build before tagging to make sure the tagged revision builds
		if err := uc.builder.Build(ctx); err != nil {
			return report, goerr.Wrap(err, "build failed")
		}
		report.Stages = append(report.Stages, types.StageBuilt)

		version, err := uc.bumper.Bump(ctx, opts.BumpKind)
		if err != nil {
			return report, goerr.Wrap(err, "version bump failed")
		}
		report.Version = version
		report.Stages = append(report.Stages, types.StageTagged)
	}

	if !opts.Publish {
		return report, nil
	}

	manifest, err := model.LoadManifest(uc.manifestPath)
	if err != nil {
		return report, err
	}
	logger.Info("Deploying", "environment", uc.environment, "app", manifest.Name, "version", manifest.Version)

	result := uc.publisher.Publish(ctx, opts.ProjectID, manifest)
	report.Publish = result
	if result.Success {
		report.Stages = append(report.Stages, types.StagePublished)
	} else {
		report.Stages = append(report.Stages, types.StagePublishFailed)
	}

	sent, err := uc.notifier.Notify(ctx, &model.Notification{
		AppName:     manifest.Name,
		AppVersion:  manifest.Version,
		Environment: uc.environment,
		Actor:       uc.resolveActor(ctx, opts.Actor),
		Result:      result,
	})
	if err != nil {
		return report, err
	}
	if sent {
		report.Stages = append(report.Stages, types.StageNotified)
	} else {
		report.Stages = append(report.Stages, types.StageNotifySkipped)
	}

	if !result.Success && opts.FailOnPublishError {
		return report, goerr.Wrap(result.Err, "publish failed")
	}
	return report, nil
}

func (uc *Release) resolveActor(ctx context.Context, actor string) string {
	if actor != "" {
		return actor
	}
	if uc.registry == nil {
		return unknownActor
	}

	email, err := uc.registry.CurrentUserEmail(ctx)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to resolve actor from registry", "error", err)
		return unknownActor
	}
	return email
}
