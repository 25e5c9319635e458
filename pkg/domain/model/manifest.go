package model

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/tidwall/gjson"
)

// Manifest describes the publishable package (DPK). It is never mutated.
type Manifest struct {
	Name        string
	Version     string
	DisplayName string
	Raw         []byte // Original document, forwarded to the registry as-is
}

// ParseManifest reads the known fields from a JSON manifest document
func ParseManifest(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, goerr.New("manifest is not valid JSON")
	}

	fields := gjson.GetManyBytes(data, "name", "version", "displayName")
	m := &Manifest{
		Name:        fields[0].String(),
		Version:     fields[1].String(),
		DisplayName: fields[2].String(),
		Raw:         data,
	}

	if m.Name == "" {
		return nil, goerr.New("manifest has no name")
	}
	if m.Version == "" {
		return nil, goerr.New("manifest has no version", goerr.V("name", m.Name))
	}
	if m.DisplayName == "" {
		m.DisplayName = m.Name
	}

	return m, nil
}

// LoadManifest reads and parses the manifest file at path
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read manifest", goerr.V("path", path))
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse manifest", goerr.V("path", path))
	}
	return m, nil
}
