package usecase

import (
	"os"
	"regexp"
	"strings"
)

const (
	unreleasedLabel = "Unreleased"

	// FallbackReleaseNotes is sent when the changelog has no unreleased section
	FallbackReleaseNotes = "Content not found between versions."
)

// unreleasedPattern matches from the sentinel to the first following "##".
// RE2 has no lookahead, so the heading is captured outside the group.
var unreleasedPattern = regexp.MustCompile(`(?s)(\[Unreleased\].*?)##`)

// ExtractUnreleased returns the unreleased section of a changelog, starting at
// the sentinel and ending before the next heading, trimmed. ok is false when
// there is no such section.
func ExtractUnreleased(content string) (section string, ok bool) {
	m := unreleasedPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ReleaseNotes renders the unreleased section of content for version, or the
// fallback text when there is none
func ReleaseNotes(content, version string) string {
	section, ok := ExtractUnreleased(content)
	if !ok {
		return FallbackReleaseNotes
	}
	return strings.ReplaceAll(section, unreleasedLabel, version)
}

// LoadReleaseNotes reads the changelog at path and renders its notes for version
func LoadReleaseNotes(path, version string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FallbackReleaseNotes, err
	}
	return ReleaseNotes(string(data), version), nil
}
