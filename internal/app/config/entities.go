package config

import "regexp"

const (
	// DefaultHeaderPrefix is the prefix used in the changelog section header.
	DefaultHeaderPrefix = "Version:"

	// DefaultVersionRegex is a relaxed version of the suggested regex from
	// https://semver.org/#is-there-a-suggested-regular-expression-regex-to-check-a-semver-string
	// (the patch part is optional and a leading "v" is accepted)
	DefaultVersionRegex = `v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.?(0|[1-9]\d*)?(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?`

	// DefaultPullRequestTitleRegex matches titles starting with "release" (case-insensitive)
	DefaultPullRequestTitleRegex = `^(?i:release)`

	// tagVersionsRegex matches two dotted-triple version numbers separated by whitespace
	// (the "tag window" of a release title); not user-configurable
	tagVersionsRegex = `((0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)){1}\s((0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)){1}`
)

// Group maps a changelog heading to a set of pull-request labels.
type Group struct {
	Title  string   // heading of the group in the rendered changelog
	Labels []string // pull-request labels gathered under this heading
}

// Config is the normalized configuration of a changelog run.
// Every regex field is guaranteed to be compiled and non-nil,
// Groups is either empty or every element has a non-empty title and a non-empty labels list.
type Config struct {
	HeaderPrefix          string         // prefix of the changelog section header
	CommitChangelog       bool           // if true, commit the changelog file
	CommentChangelog      bool           // if true, post the changelog as a PR comment
	PullRequestTitleRegex *regexp.Regexp // a PR is a release PR iff its title matches
	VersionRegex          *regexp.Regexp // extracts the version number from the title
	TagVersionsRegex      *regexp.Regexp // extracts the tag window from the title (fixed)
	Groups                []Group        // ordered label-to-heading mapping (empty => flat rendering)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		HeaderPrefix:          DefaultHeaderPrefix,
		CommitChangelog:       true,
		CommentChangelog:      false,
		PullRequestTitleRegex: regexp.MustCompile(DefaultPullRequestTitleRegex),
		VersionRegex:          regexp.MustCompile(DefaultVersionRegex),
		TagVersionsRegex:      regexp.MustCompile(tagVersionsRegex),
		Groups:                nil,
	}
}
