package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/interfaces"
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/domain/types"
)

type builder struct {
	runner    interfaces.CommandRunner
	workspace *model.Workspace
}

// NewBuilder creates a Builder that builds the panel of workspace
func NewBuilder(runner interfaces.CommandRunner, workspace *model.Workspace) interfaces.Builder {
	return &builder{
		runner:    runner,
		workspace: workspace,
	}
}

// Build runs the build tool and moves its output to the workspace destination
func (uc *builder) Build(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	ws := uc.workspace

	if err := checkOverlap(ws.DistDir, ws.Destination()); err != nil {
		return err
	}

	for _, argv := range [][]string{ws.InstallCmd, ws.BuildCmd} {
		if len(argv) == 0 {
			continue
		}
		if err := uc.runner.Run(ctx, argv[0], argv[1:]...); err != nil {
			return goerr.Wrap(err, "build tool failed")
		}
	}

	src := ws.DistDir
	dst := ws.Destination()
	logger.Info("Moving build output", "src", src, "dst", dst, "panel", ws.PanelName)

	if err := replaceDir(src, dst); err != nil {
		return err
	}

	info, err := os.Stat(dst)
	if err != nil || !info.IsDir() {
		return goerr.New("directory does not exist after build (and it should)",
			goerr.V("dst", dst),
			goerr.T(types.ErrTagPostcondition),
		)
	}

	return nil
}

// replaceDir moves src to dst, removing whatever occupied dst before
func replaceDir(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return goerr.Wrap(err, "build output not found", goerr.V("src", src))
	}

	if err := os.RemoveAll(dst); err != nil {
		return goerr.Wrap(err, "failed to clean destination", goerr.V("dst", dst))
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return goerr.Wrap(err, "failed to create destination parent", goerr.V("dst", dst))
	}

	if err := os.Rename(src, dst); err != nil {
		return goerr.Wrap(err, "failed to move build output",
			goerr.V("src", src),
			goerr.V("dst", dst),
		)
	}
	return nil
}

// checkOverlap rejects a build output that contains or is contained by the
// destination, since the destination is removed before the move
func checkOverlap(src, dst string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve build output", goerr.V("src", src))
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve destination", goerr.V("dst", dst))
	}

	if isWithin(absDst, absSrc) || isWithin(absSrc, absDst) {
		return goerr.New("build output and destination overlap",
			goerr.V("src", src),
			goerr.V("dst", dst),
			goerr.T(types.ErrTagConfig),
		)
	}
	return nil
}

// isWithin reports whether path is base or below it
func isWithin(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
