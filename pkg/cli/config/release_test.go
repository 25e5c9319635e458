package config_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/panelkit/panelship/pkg/cli/config"
	"github.com/panelkit/panelship/pkg/domain/types"
)

func TestRelease_Options(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &config.Release{Tag: true, Publish: true, ProjectID: types.DefaultProjectID, BumpType: "minor", Actor: "octocat"}
		opts, err := cfg.Options()
		gt.NoError(t, err)
		gt.True(t, opts.Tag)
		gt.True(t, opts.Publish)
		gt.Value(t, opts.BumpKind).Equal(types.BumpMinor)
		gt.Value(t, opts.Actor).Equal("octocat")
	})

	t.Run("invalid bump type with tag", func(t *testing.T) {
		cfg := &config.Release{Tag: true, BumpType: "giant"}
		_, err := cfg.Options()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
	})

	t.Run("bump type ignored without tag", func(t *testing.T) {
		cfg := &config.Release{Publish: true, BumpType: "giant"}
		_, err := cfg.Options()
		gt.NoError(t, err)
	})
}

func TestRelease_Flags(t *testing.T) {
	cfg := &config.Release{}
	names := map[string]bool{}
	for _, flag := range cfg.Flags() {
		if f, ok := flag.(interface{ Names() []string }); ok && len(f.Names()) > 0 {
			names[f.Names()[0]] = true
		}
	}

	for _, want := range []string{"tag", "publish", "project", "bump-type", "actor", "fail-on-publish-error"} {
		gt.True(t, names[want])
	}
}
