package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/interfaces"
	"github.com/panelkit/panelship/pkg/domain/types"
)

// step is one external command of the bump sequence
type step struct {
	name   string
	cmd    string
	args   []string
	pushes bool // Command publishes commits or tags to the remote
}

type bumper struct {
	runner interfaces.CommandRunner
}

// NewBumper creates a Bumper driving npm, git, bumpversion and auto-changelog
func NewBumper(runner interfaces.CommandRunner) interfaces.Bumper {
	return &bumper{runner: runner}
}

// bumpSteps returns the ordered commands that commit, tag and push version
func bumpSteps(version string) []step {
	return []step{
		{name: "stage bump", cmd: "git", args: []string{"add", "."}},
		{name: "commit bump", cmd: "git", args: []string{"commit", "-am", fmt.Sprintf("Bump version: v%s", version)}},
		{name: "push bump", cmd: "git", args: []string{"push"}, pushes: true},
		{name: "tag", cmd: "bumpversion", args: []string{"--new-version", version, "--allow-dirty", "dummy-part"}},
		{name: "push tags", cmd: "git", args: []string{"push", "--follow-tags"}, pushes: true},
		{name: "generate changelog", cmd: "auto-changelog"},
		{name: "stage changelog", cmd: "git", args: []string{"add", "."}},
		{name: "commit changelog", cmd: "git", args: []string{"commit", "-am", fmt.Sprintf("Changelog: v%s", version)}},
		{name: "push changelog", cmd: "git", args: []string{"push"}, pushes: true},
	}
}

// Bump computes the next version of kind, then commits, tags and pushes it
// together with a regenerated changelog. Nothing is rolled back on failure.
func (uc *bumper) Bump(ctx context.Context, kind types.BumpKind) (string, error) {
	logger := ctxlog.From(ctx)

	if err := kind.Validate(); err != nil {
		return "", err
	}

	version, err := uc.runner.Output(ctx, "npm", "version", kind.String(), "--no-git-tag-version", "--tag-version-prefix=")
	if err != nil {
		return "", goerr.Wrap(err, "failed to compute next version", goerr.V("bump_type", kind))
	}
	if version == "" {
		return "", goerr.New("npm version returned no version", goerr.V("bump_type", kind))
	}

	logger.Info("Bumping version", "version", version, "bump_type", kind)

	pushed := false
	for _, s := range bumpSteps(version) {
		logger.Debug("Running bump step", "step", s.name)

		if err := uc.runner.Run(ctx, s.cmd, s.args...); err != nil {
			if pushed {
				// A bump commit is already on the remote; whether it should be
				// reverted is left to the operator.
				logger.Warn("Version bump is partially pushed, manual cleanup may be required",
					"version", version,
					"failed_step", s.name,
				)
			}
			return "", goerr.Wrap(err, "version bump step failed",
				goerr.V("step", s.name),
				goerr.V("version", version),
				goerr.V("pushed", pushed),
			)
		}

		if s.pushes {
			pushed = true
		}
	}

	return version, nil
}
