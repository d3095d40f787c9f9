package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func assertDefaultConfig(t *testing.T, cfg *Config) {
	t.Helper()
	assert.Equal(t, DefaultHeaderPrefix, cfg.HeaderPrefix)
	assert.True(t, cfg.CommitChangelog)
	assert.False(t, cfg.CommentChangelog)
	assert.Equal(t, DefaultPullRequestTitleRegex, cfg.PullRequestTitleRegex.String())
	assert.Equal(t, DefaultVersionRegex, cfg.VersionRegex.String())
	assert.Empty(t, cfg.Groups)
}

func TestLoadEmptyPath(t *testing.T) {
	assertDefaultConfig(t, Load(""))
}

func TestLoadMissingFile(t *testing.T) {
	assertDefaultConfig(t, Load(filepath.Join(t.TempDir(), "does-not-exist.json")))
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfigFile(t, "{not json")
	assertDefaultConfig(t, Load(path))
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"header_prefix": "Release:",
		"commit_changelog": false,
		"comment_changelog": true,
		"pull_request_title_regex": "^deploy",
		"version_regex": "v[0-9]+",
		"group_config": [
			{"title": "Fixes", "labels": ["bug", "bugfix"]}
		]
	}`)
	cfg := Load(path)
	assert.Equal(t, "Release:", cfg.HeaderPrefix)
	assert.False(t, cfg.CommitChangelog)
	assert.True(t, cfg.CommentChangelog)
	assert.Equal(t, "^deploy", cfg.PullRequestTitleRegex.String())
	assert.Equal(t, "v[0-9]+", cfg.VersionRegex.String())
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, "Fixes", cfg.Groups[0].Title)
	assert.Equal(t, []string{"bug", "bugfix"}, cfg.Groups[0].Labels)
}

func TestLoadPartialFileFallsBack(t *testing.T) {
	path := writeConfigFile(t, `{"header_prefix": "Release:", "version_regex": "((("}`)
	cfg := Load(path)
	assert.Equal(t, "Release:", cfg.HeaderPrefix)
	assert.Equal(t, DefaultVersionRegex, cfg.VersionRegex.String())
}
