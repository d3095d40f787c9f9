package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/changelog-ci/changelog-ci/internal/app/config"
	"github.com/changelog-ci/changelog-ci/internal/app/git"
	"github.com/changelog-ci/changelog-ci/internal/app/repo"
	"github.com/stretchr/testify/assert"
)

type repoDummyAdapter struct {
	tagTimes     map[string]time.Time
	prs          []*repo.PullRequest
	searchErr    error
	searchCalled bool
	comments     []string
}

func (d *repoDummyAdapter) ResolveTagTime(tagName string) (*time.Time, error) {
	t, ok := d.tagTimes[tagName]
	if !ok {
		return nil, errors.New("status code: 404")
	}
	return &t, nil
}

func (d *repoDummyAdapter) SearchMergedPullRequests(window *repo.MergedWindow) ([]*repo.PullRequest, error) {
	d.searchCalled = true
	return d.prs, d.searchErr
}

func (d *repoDummyAdapter) CreateComment(prNumber int, body string) error {
	d.comments = append(d.comments, body)
	return nil
}

type gitDummyAdapter struct {
	commits   []string
	movedTags []string
}

func (d *gitDummyAdapter) CommitAndPush(rc git.RepositoryContext, path string, message string) error {
	d.commits = append(d.commits, message)
	return nil
}

func (d *gitDummyAdapter) LatestTag(rc git.RepositoryContext) (*git.Tag, error) {
	return git.NewTag("v1.2.0"), nil
}

func (d *gitDummyAdapter) MoveTagToHead(rc git.RepositoryContext, tag *git.Tag) error {
	d.movedTags = append(d.movedTags, tag.Name)
	return nil
}

func newTestService(cfg *config.Config, repoAdapter *repoDummyAdapter, gitAdapter *gitDummyAdapter) *Service {
	service := NewService(cfg, repoAdapter, gitAdapter)
	service.now = func() time.Time {
		return time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	return service
}

func testInput(root string) Input {
	return Input{
		Title:             "Release: prepare 1.2.0 (1.1.0 1.2.0)",
		PullRequestNumber: 42,
		ChangelogFilename: "CHANGELOG.md",
		RepositoryContext: git.RepositoryContext{Root: root, Branch: "main", RemoteName: "origin"},
	}
}

func TestRunEndToEnd(t *testing.T) {
	repoAdapter := &repoDummyAdapter{
		tagTimes: map[string]time.Time{
			"1.1.0": time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			"1.2.0": time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		prs: []*repo.PullRequest{
			{Number: 1, Title: "Fix a crash", Url: "u1", Labels: []string{"bug"}},
			{Number: 2, Title: "Add an option", Url: "u2", Labels: []string{"feat"}},
		},
	}
	gitAdapter := &gitDummyAdapter{}
	root := t.TempDir()
	service := newTestService(config.Default(), repoAdapter, gitAdapter)
	assert.Nil(t, service.Run(testInput(root)))
	body, err := os.ReadFile(filepath.Join(root, "CHANGELOG.md"))
	assert.Nil(t, err)
	expected := "# Version: 1.2.0 (01/15/2023)\n" +
		"\n" +
		"* [#1](u1): Fix a crash\n" +
		"* [#2](u2): Add an option\n"
	assert.Equal(t, expected, string(body))
	assert.Len(t, gitAdapter.commits, 1)
	assert.Equal(t, []string{"v1.2.0"}, gitAdapter.movedTags)
}

func TestRunPublishDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.CommitChangelog = false
	cfg.CommentChangelog = false
	repoAdapter := &repoDummyAdapter{}
	service := newTestService(cfg, repoAdapter, &gitDummyAdapter{})
	err := service.Run(testInput(t.TempDir()))
	assert.ErrorIs(t, err, ErrPublishDisabled)
	// aborted before any API call
	assert.False(t, repoAdapter.searchCalled)
}

func TestRunTitleMismatch(t *testing.T) {
	repoAdapter := &repoDummyAdapter{}
	gitAdapter := &gitDummyAdapter{}
	root := t.TempDir()
	service := newTestService(config.Default(), repoAdapter, gitAdapter)
	input := testInput(root)
	input.Title = "fix: not a release (1.1.0 1.2.0)"
	err := service.Run(input)
	assert.ErrorIs(t, err, ErrTitleMismatch)
	// no side effect at all
	assert.False(t, repoAdapter.searchCalled)
	assert.Empty(t, gitAdapter.commits)
	_, statErr := os.Stat(filepath.Join(root, "CHANGELOG.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunNoVersion(t *testing.T) {
	cfg := config.Default()
	service := newTestService(cfg, &repoDummyAdapter{}, &gitDummyAdapter{})
	input := testInput(t.TempDir())
	input.Title = "Release next"
	assert.ErrorIs(t, service.Run(input), ErrNoVersion)
}

func TestRunNoTagWindow(t *testing.T) {
	service := newTestService(config.Default(), &repoDummyAdapter{}, &gitDummyAdapter{})
	input := testInput(t.TempDir())
	input.Title = "Release: prepare 1.2.0"
	assert.ErrorIs(t, service.Run(input), ErrNoTagWindow)
}

func TestRunNoPullRequests(t *testing.T) {
	repoAdapter := &repoDummyAdapter{}
	gitAdapter := &gitDummyAdapter{}
	service := newTestService(config.Default(), repoAdapter, gitAdapter)
	err := service.Run(testInput(t.TempDir()))
	assert.ErrorIs(t, err, ErrNoPullRequests)
	assert.Empty(t, gitAdapter.commits)
}

func TestRunSearchError(t *testing.T) {
	repoAdapter := &repoDummyAdapter{searchErr: errors.New("status code: 500")}
	service := newTestService(config.Default(), repoAdapter, &gitDummyAdapter{})
	err := service.Run(testInput(t.TempDir()))
	assert.NotNil(t, err)
	assert.NotErrorIs(t, err, ErrNoPullRequests)
}

func TestRunGrouped(t *testing.T) {
	cfg := config.Default()
	cfg.Groups = []config.Group{
		{Title: "Fixes", Labels: []string{"bug"}},
		{Title: "Features", Labels: []string{"feat"}},
	}
	repoAdapter := &repoDummyAdapter{
		prs: []*repo.PullRequest{
			{Number: 1, Title: "Fix a crash", Url: "u1", Labels: []string{"bug"}},
			{Number: 2, Title: "Add an option", Url: "u2", Labels: []string{"feat"}},
		},
	}
	root := t.TempDir()
	service := newTestService(cfg, repoAdapter, &gitDummyAdapter{})
	assert.Nil(t, service.Run(testInput(root)))
	body, err := os.ReadFile(filepath.Join(root, "CHANGELOG.md"))
	assert.Nil(t, err)
	expected := "# Version: 1.2.0 (01/15/2023)\n" +
		"\n" +
		"#### Fixes\n" +
		"\n" +
		"* [#1](u1): Fix a crash\n" +
		"\n" +
		"#### Features\n" +
		"\n" +
		"* [#2](u2): Add an option\n"
	assert.Equal(t, expected, string(body))
}
