// Package release extracts release metadata (version number, tag window)
// from free-text pull-request titles.
package release

import (
	"strings"

	"github.com/changelog-ci/changelog-ci/internal/app/config"
)

// TagWindow is the pair of tag names bounding the pull-request search.
type TagWindow struct {
	Start string
	End   string
}

// TitleParser extracts release metadata from a pull-request title
// using the patterns of a normalized configuration.
type TitleParser struct {
	config *config.Config
}

// NewTitleParser creates a new TitleParser.
func NewTitleParser(cfg *config.Config) *TitleParser {
	return &TitleParser{
		config: cfg,
	}
}

// IsReleaseTitle returns true if the given title asserts a release
// (the configured pull-request title regex matches anywhere in the title).
func (p *TitleParser) IsReleaseTitle(title string) bool {
	return p.config.PullRequestTitleRegex.MatchString(title)
}

// ExtractVersion returns the first match of the configured version regex
// in the given title (empty string if there is no match).
func (p *TitleParser) ExtractVersion(title string) string {
	return p.config.VersionRegex.FindString(title)
}

// ExtractTagWindow returns the tag window of the given title: the first match
// of the fixed two-version pattern, split on whitespace into exactly two tags.
// It returns nil if there is no match.
func (p *TitleParser) ExtractTagWindow(title string) *TagWindow {
	match := p.config.TagVersionsRegex.FindString(title)
	if match == "" {
		return nil
	}
	tags := strings.Fields(match)
	if len(tags) != 2 {
		return nil
	}
	return &TagWindow{
		Start: tags[0],
		End:   tags[1],
	}
}
