package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/cli/config"
	"github.com/panelkit/panelship/pkg/infra/cmdexec"
	slackinfra "github.com/panelkit/panelship/pkg/infra/slack"
	"github.com/panelkit/panelship/pkg/usecase"
	"github.com/panelkit/panelship/pkg/utils/errs"
	"github.com/urfave/cli/v3"
)

func cmdRelease() *cli.Command {
	var (
		releaseCfg   config.Release
		workspaceCfg config.Workspace
		registryCfg  config.Registry
		slackCfg     config.Slack
	)

	var flags []cli.Flag
	flags = append(flags, releaseCfg.Flags()...)
	flags = append(flags, workspaceCfg.Flags()...)
	flags = append(flags, registryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "release",
		Aliases: []string{"r"},
		Usage:   "Build and tag (--tag), publish and install (--publish)",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			opts, err := releaseCfg.Options()
			if err != nil {
				return err
			}
			ws, err := workspaceCfg.Workspace(c.IsSet)
			if err != nil {
				return err
			}
			registryClient, err := registryCfg.NewClient(ws)
			if err != nil {
				return goerr.Wrap(err, "failed to create registry client")
			}

			logger.Debug("Starting release",
				"options", opts,
				"registry", registryCfg,
				"slack", slackCfg,
				"panel", ws.PanelName,
			)

			runner := cmdexec.New()
			release := usecase.NewRelease(
				usecase.NewBuilder(runner, ws),
				usecase.NewBumper(runner),
				usecase.NewPublisher(registryClient),
				usecase.NewNotifier(slackinfra.NewWebhook(), slackCfg.WebhookURL, ws.ChangelogPath),
				registryClient,
				ws.ManifestPath,
				registryCfg.Env,
			)

			report, runErr := release.Run(ctx, opts)
			if report != nil {
				if report.Publish != nil && !report.Publish.Success && !opts.FailOnPublishError {
					// Not returned, so report it here
					errs.Handle(ctx, "Publish failed", report.Publish.Err)
				}
				printSummary(c.Root().Writer, report)
			}
			return runErr
		},
	}
}
