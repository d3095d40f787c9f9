// Package app hosts the changelog assembly pipeline: configuration
// normalization, release-title parsing, pull-request collection, rendering
// and publication, sequenced by the Service.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/changelog-ci/changelog-ci/internal/app/changelog"
	"github.com/changelog-ci/changelog-ci/internal/app/config"
	"github.com/changelog-ci/changelog-ci/internal/app/git"
	"github.com/changelog-ci/changelog-ci/internal/app/publish"
	"github.com/changelog-ci/changelog-ci/internal/app/release"
	"github.com/changelog-ci/changelog-ci/internal/app/repo"
)

// Precondition errors: each one aborts the run early, before any side effect.
var (
	ErrPublishDisabled = errors.New("both commit_changelog and comment_changelog are set to false => nothing to do")
	ErrTitleMismatch   = errors.New("the title of the pull request did not match the release pattern")
	ErrNoVersion       = errors.New("could not find a matching version number in the pull request title")
	ErrNoTagWindow     = errors.New("could not find two version tags in the pull request title")
	ErrNoPullRequests  = errors.New("no pull request was merged between the given tags")
)

// Input describes one pipeline run: the release pull request and the
// repository state the publisher operates on.
type Input struct {
	Title             string                // pull request title asserting the release
	PullRequestNumber int                   // pull request number (comment destination)
	ChangelogFilename string                // changelog file path, relative to the working tree root
	TemplateString    string                // changelog template (changelog.DefaultTemplateString if empty)
	RepositoryContext git.RepositoryContext // working tree, branch, committer identity, token
}

// Service is the main application service
type Service struct {
	config      *config.Config
	titleParser *release.TitleParser
	repoService *repo.Service
	publisher   *publish.Service
	logger      *slog.Logger

	now func() time.Time
}

// NewService creates a new Service
func NewService(cfg *config.Config, repoAdapter repo.Port, gitAdapter git.Port) *Service {
	repoService := repo.New(repoAdapter)
	return &Service{
		config:      cfg,
		titleParser: release.NewTitleParser(cfg),
		repoService: repoService,
		publisher:   publish.New(cfg, gitAdapter, repoService),
		logger:      slog.Default(),
		now:         time.Now,
	}
}

// Run executes one changelog assembly pipeline: validate the release title,
// extract the version and the tag window, collect the merged pull requests,
// render the changelog section and publish it.
// A precondition error (ErrPublishDisabled, ErrTitleMismatch...) means the run
// was aborted before any side effect.
func (s *Service) Run(input Input) error {
	if !s.config.CommitChangelog && !s.config.CommentChangelog {
		return ErrPublishDisabled
	}
	if !s.titleParser.IsReleaseTitle(input.Title) {
		return fmt.Errorf("%w (regex tried: %s)", ErrTitleMismatch, s.config.PullRequestTitleRegex.String())
	}
	version := s.titleParser.ExtractVersion(input.Title)
	if version == "" {
		return fmt.Errorf("%w (regex tried: %s)", ErrNoVersion, s.config.VersionRegex.String())
	}
	version += fmt.Sprintf(" (%s)", s.now().Format("01/02/2006"))
	window := s.titleParser.ExtractTagWindow(input.Title)
	if window == nil {
		return fmt.Errorf("%w (regex tried: %s)", ErrNoTagWindow, s.config.TagVersionsRegex.String())
	}
	s.logger.Debug("release title parsed",
		slog.String("version", version),
		slog.String("startTag", window.Start),
		slog.String("endTag", window.End))
	prs, err := s.repoService.GetMergedPullRequestsBetween(window.Start, window.End)
	if err != nil {
		return fmt.Errorf("can't collect the merged pull requests: %w", err)
	}
	if len(prs) == 0 {
		return ErrNoPullRequests
	}
	templateString := input.TemplateString
	if templateString == "" {
		templateString = changelog.DefaultTemplateString
	}
	section, err := changelog.New(s.config.HeaderPrefix, version, prs, s.config.Groups).Render(templateString)
	if err != nil {
		return err
	}
	return s.publisher.Publish(input.RepositoryContext, input.ChangelogFilename, input.PullRequestNumber, section)
}
