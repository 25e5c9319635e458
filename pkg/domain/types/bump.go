package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// BumpKind is a semantic version increment strategy understood by `npm version`
type BumpKind string

const (
	BumpPatch      BumpKind = "patch"
	BumpMinor      BumpKind = "minor"
	BumpMajor      BumpKind = "major"
	BumpPrerelease BumpKind = "prerelease"
	BumpPrepatch   BumpKind = "prepatch"
	BumpPreminor   BumpKind = "preminor"
	BumpPremajor   BumpKind = "premajor"
)

// BumpKinds lists every supported BumpKind in help order
var BumpKinds = []BumpKind{
	BumpPatch,
	BumpMinor,
	BumpMajor,
	BumpPrerelease,
	BumpPrepatch,
	BumpPreminor,
	BumpPremajor,
}

func (k BumpKind) String() string {
	return string(k)
}

// Validate returns a config error if k is not a supported kind
func (k BumpKind) Validate() error {
	for _, v := range BumpKinds {
		if k == v {
			return nil
		}
	}

	names := make([]string, len(BumpKinds))
	for i, v := range BumpKinds {
		names[i] = v.String()
	}
	return goerr.New("unsupported bump type",
		goerr.V("bump_type", string(k)),
		goerr.V("supported", strings.Join(names, ", ")),
		goerr.T(ErrTagConfig),
	)
}
