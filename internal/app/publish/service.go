// Package publish writes a rendered changelog section to its configured
// destinations: committed to the changelog file and/or posted as a pull-request
// comment. The two outputs are independent and non-exclusive.
package publish

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/changelog-ci/changelog-ci/internal/app/config"
	"github.com/changelog-ci/changelog-ci/internal/app/git"
	"github.com/changelog-ci/changelog-ci/internal/app/repo"
)

const commitMessage = "(Changelog CI) Added Changelog"

type Service struct {
	config      *config.Config
	gitAdapter  git.Port
	repoService *repo.Service
	logger      *slog.Logger
}

func New(cfg *config.Config, gitAdapter git.Port, repoService *repo.Service) *Service {
	return &Service{
		config:      cfg,
		gitAdapter:  gitAdapter,
		repoService: repoService,
		logger:      slog.With("name", "publishService"),
	}
}

// Publish writes the rendered section per the configured flags.
// The comment path degrades (error logged, not returned) so that it never
// aborts the commit path and vice versa.
func (s *Service) Publish(rc git.RepositoryContext, filename string, prNumber int, section string) error {
	if s.config.CommitChangelog {
		err := s.commit(rc, filename, section)
		if err != nil {
			return err
		}
	}
	if s.config.CommentChangelog {
		s.comment(prNumber, section, rc.Token)
	}
	return nil
}

func (s *Service) commit(rc git.RepositoryContext, filename string, section string) error {
	err := prependSection(filepath.Join(rc.Root, filename), section)
	if err != nil {
		return err
	}
	err = s.gitAdapter.CommitAndPush(rc, filename, commitMessage)
	if err != nil {
		return fmt.Errorf("can't commit the changelog file: %w", err)
	}
	return s.recycleLatestTag(rc)
}

// recycleLatestTag re-creates the latest tag (by version precedence) on the
// changelog-bearing commit, so that the release tag points at the commit
// carrying the changelog instead of the pre-changelog one.
func (s *Service) recycleLatestTag(rc git.RepositoryContext) error {
	tag, err := s.gitAdapter.LatestTag(rc)
	if err != nil {
		return fmt.Errorf("can't find the latest tag: %w", err)
	}
	if tag == nil {
		s.logger.Warn("no tag found => skipping the tag recycling step")
		return nil
	}
	s.logger.Debug("recycling the latest tag", slog.String("tag", tag.Name))
	err = s.gitAdapter.MoveTagToHead(rc, tag)
	if err != nil {
		return fmt.Errorf("can't recycle the tag %s: %w", tag.Name, err)
	}
	return nil
}

func (s *Service) comment(prNumber int, section string, token string) {
	if token == "" {
		s.logger.Error("could not add a comment: a token is required for this operation => skipping the comment step")
		return
	}
	err := s.repoService.Comment(prNumber, section)
	if err != nil {
		s.logger.Error("error while trying to create a comment", slog.Int("number", prNumber), slog.String("err", err.Error()))
	}
}
