package repo

import "time"

// Port is the interface that must be implemented by repo adapters.
type Port interface {

	// ResolveTagTime returns the committer time of the commit the given tag
	// points to (following one level of object indirection for annotated tags).
	ResolveTagTime(tagName string) (*time.Time, error)

	// SearchMergedPullRequests returns all the merged pull requests of the
	// repository, following pagination to exhaustion.
	// If window is not nil, only the pull requests merged inside the window
	// are returned.
	SearchMergedPullRequests(window *MergedWindow) ([]*PullRequest, error)

	// CreateComment posts the given body as a comment on the given pull request.
	CreateComment(prNumber int, body string) error
}
