// Package gitgogit implements the git.Port with go-git (no git CLI required):
// it commits the changelog file, pushes the branch and recycles the release tag.
package gitgogit

import (
	"fmt"
	"log/slog"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/changelog-ci/changelog-ci/internal/app/git"
)

var _ git.Port = &Adapter{}

type Adapter struct {
	logger *slog.Logger
}

func NewAdapter() *Adapter {
	return &Adapter{
		logger: slog.With("name", "gitAdapter"),
	}
}

func auth(rc git.RepositoryContext) transport.AuthMethod {
	if rc.Token == "" {
		return nil
	}
	// GitHub accepts any user name with a token password over https
	return &githttp.BasicAuth{
		Username: "x-access-token",
		Password: rc.Token,
	}
}

func signature(rc git.RepositoryContext) *object.Signature {
	return &object.Signature{
		Name:  rc.CommitterName,
		Email: rc.CommitterEmail,
		When:  time.Now(),
	}
}

func remoteName(rc git.RepositoryContext) string {
	if rc.RemoteName == "" {
		return "origin"
	}
	return rc.RemoteName
}

func (a *Adapter) push(repo *gogit.Repository, rc git.RepositoryContext, refSpec string) error {
	err := repo.Push(&gogit.PushOptions{
		RemoteName: remoteName(rc),
		RefSpecs:   []gogitconfig.RefSpec{gogitconfig.RefSpec(refSpec)},
		Auth:       auth(rc),
	})
	if err == gogit.NoErrAlreadyUpToDate {
		a.logger.Debug("nothing to push", slog.String("refSpec", refSpec))
		return nil
	}
	return err
}

// CommitAndPush stages the given file (path relative to the working tree root),
// commits it with the given message and pushes the branch to the remote.
func (a *Adapter) CommitAndPush(rc git.RepositoryContext, path string, message string) error {
	repo, err := gogit.PlainOpen(rc.Root)
	if err != nil {
		return fmt.Errorf("can't open the git repository at %s: %w", rc.Root, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("can't get the working tree: %w", err)
	}
	_, err = worktree.Add(path)
	if err != nil {
		return fmt.Errorf("can't stage %s: %w", path, err)
	}
	commit, err := worktree.Commit(message, &gogit.CommitOptions{
		Author: signature(rc),
	})
	if err != nil {
		return fmt.Errorf("can't commit %s: %w", path, err)
	}
	a.logger.Debug("changelog committed", slog.String("commit", commit.String()))
	refSpec := fmt.Sprintf("refs/heads/%s:refs/heads/%s", rc.Branch, rc.Branch)
	err = a.push(repo, rc, refSpec)
	if err != nil {
		return fmt.Errorf("can't push the branch %s: %w", rc.Branch, err)
	}
	return nil
}

// LatestTag returns the latest local tag by semantic version precedence,
// ignoring tags whose name does not carry a version (nil if none is found).
func (a *Adapter) LatestTag(rc git.RepositoryContext) (*git.Tag, error) {
	repo, err := gogit.PlainOpen(rc.Root)
	if err != nil {
		return nil, fmt.Errorf("can't open the git repository at %s: %w", rc.Root, err)
	}
	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("can't list the tags: %w", err)
	}
	defer iter.Close()
	var latest *git.Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tag := git.NewTag(ref.Name().Short())
		if tag == nil || tag.Semver == nil {
			return nil
		}
		if latest == nil || latest.LessThan(tag) {
			latest = tag
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't iterate the tags: %w", err)
	}
	return latest, nil
}

// MoveTagToHead deletes the given tag locally and remotely, re-creates it as an
// annotated tag pointing at the current HEAD and pushes it.
func (a *Adapter) MoveTagToHead(rc git.RepositoryContext, tag *git.Tag) error {
	repo, err := gogit.PlainOpen(rc.Root)
	if err != nil {
		return fmt.Errorf("can't open the git repository at %s: %w", rc.Root, err)
	}
	err = repo.DeleteTag(tag.Name)
	if err != nil {
		return fmt.Errorf("can't delete the local tag %s: %w", tag.Name, err)
	}
	err = a.push(repo, rc, ":refs/tags/"+tag.Name)
	if err != nil {
		return fmt.Errorf("can't delete the remote tag %s: %w", tag.Name, err)
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("can't get the HEAD reference: %w", err)
	}
	_, err = repo.CreateTag(tag.Name, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  signature(rc),
		Message: "Release " + tag.Name,
	})
	if err != nil {
		return fmt.Errorf("can't re-create the tag %s: %w", tag.Name, err)
	}
	refSpec := fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag.Name, tag.Name)
	err = a.push(repo, rc, refSpec)
	if err != nil {
		return fmt.Errorf("can't push the tag %s: %w", tag.Name, err)
	}
	return nil
}
