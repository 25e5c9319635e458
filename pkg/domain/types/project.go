package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultProjectID is the project the panel is installed into when none is given
const DefaultProjectID = "80138ed5-169a-4be1-9603-b5e13832e55d"

// ValidateProjectID checks that id is present. Its format is left to the registry.
func ValidateProjectID(id string) error {
	if strings.TrimSpace(id) == "" {
		return goerr.New("must input project_id to publish and install", goerr.T(ErrTagConfig))
	}
	return nil
}
