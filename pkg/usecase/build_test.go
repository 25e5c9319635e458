package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/domain/types"
	"github.com/panelkit/panelship/pkg/usecase"
)

func newWorkspace(t *testing.T) *model.Workspace {
	t.Helper()
	root := t.TempDir()
	return &model.Workspace{
		PanelName:     "referenceViewer",
		DistDir:       filepath.Join(root, "dist"),
		PanelsDir:     filepath.Join(root, "panels"),
		ManifestPath:  filepath.Join(root, "dataloop.json"),
		ChangelogPath: filepath.Join(root, "CHANGELOG.md"),
		CodebaseDir:   root,
		InstallCmd:    []string{"npm", "i"},
		BuildCmd:      []string{"npm", "run", "build"},
	}
}

// distWriter returns a runner hook that emulates `npm run build` writing files to dist
func distWriter(t *testing.T, ws *model.Workspace, files map[string]string) func(name string, args ...string) error {
	return func(name string, args ...string) error {
		if len(args) < 2 || args[0] != "run" || args[1] != "build" {
			return nil
		}
		for n, content := range files {
			path := filepath.Join(ws.DistDir, n)
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
		}
		return nil
	}
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	gt.NoError(t, err)
	return files
}

func TestBuilder_Build(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)
	runner := &MockRunner{runFunc: distWriter(t, ws, map[string]string{"index.html": "<html/>"})}

	err := usecase.NewBuilder(runner, ws).Build(ctx)
	gt.NoError(t, err)

	gt.Value(t, runner.calls).Equal([]string{"npm i", "npm run build"})
	gt.Value(t, listFiles(t, ws.Destination())).Equal([]string{"index.html"})

	// Moved, not copied
	_, err = os.Stat(ws.DistDir)
	gt.True(t, os.IsNotExist(err))
}

func TestBuilder_Build_ReplacesExistingDestination(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)

	gt.NoError(t, os.MkdirAll(filepath.Join(ws.Destination(), "assets"), 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(ws.Destination(), "old.js"), []byte("old"), 0644))
	gt.NoError(t, os.WriteFile(filepath.Join(ws.Destination(), "assets", "old.css"), []byte("old"), 0644))
	gt.NoError(t, os.WriteFile(filepath.Join(ws.Destination(), "index.html"), []byte("old"), 0644))

	runner := &MockRunner{runFunc: distWriter(t, ws, map[string]string{
		"index.html":    "new",
		"assets/app.js": "new",
	})}

	gt.NoError(t, usecase.NewBuilder(runner, ws).Build(ctx))

	gt.Value(t, listFiles(t, ws.Destination())).Equal([]string{"assets/app.js", "index.html"})
	content, err := os.ReadFile(filepath.Join(ws.Destination(), "index.html"))
	gt.NoError(t, err)
	gt.Value(t, string(content)).Equal("new")
}

func TestBuilder_Build_ToolFailure(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)
	runner := &MockRunner{runFunc: func(name string, args ...string) error {
		return errors.New("exit status 1")
	}}

	err := usecase.NewBuilder(runner, ws).Build(ctx)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("build tool failed")

	// Aborts on the first failure
	gt.Value(t, runner.calls).Equal([]string{"npm i"})
}

func TestBuilder_Build_NoOutput(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)

	err := usecase.NewBuilder(&MockRunner{}, ws).Build(ctx)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("build output not found")
}

func TestBuilder_Build_OutputIsNotDirectory(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)
	runner := &MockRunner{runFunc: func(name string, args ...string) error {
		return os.WriteFile(ws.DistDir, []byte("not a directory"), 0644)
	}}

	err := usecase.NewBuilder(runner, ws).Build(ctx)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagPostcondition))
}

func TestBuilder_Build_OutputOverlapsDestination(t *testing.T) {
	ctx := context.Background()

	t.Run("output inside destination", func(t *testing.T) {
		ws := newWorkspace(t)
		ws.DistDir = filepath.Join(ws.Destination(), "dist")
		runner := &MockRunner{runFunc: distWriter(t, ws, map[string]string{"index.html": "new"})}

		err := usecase.NewBuilder(runner, ws).Build(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
		gt.A(t, runner.calls).Length(0)
	})

	t.Run("destination inside output", func(t *testing.T) {
		ws := newWorkspace(t)
		ws.PanelsDir = filepath.Join(ws.DistDir, "panels")

		err := usecase.NewBuilder(&MockRunner{}, ws).Build(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
	})

	t.Run("sibling with common prefix is allowed", func(t *testing.T) {
		ws := newWorkspace(t)
		ws.PanelName = "dist-panel"
		ws.PanelsDir = filepath.Dir(ws.DistDir)
		runner := &MockRunner{runFunc: distWriter(t, ws, map[string]string{"index.html": "new"})}

		gt.NoError(t, usecase.NewBuilder(runner, ws).Build(ctx))
		gt.Value(t, listFiles(t, ws.Destination())).Equal([]string{"index.html"})
	})
}
