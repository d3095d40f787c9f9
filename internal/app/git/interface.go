package git

// Port is the interface that must be implemented by git adapters.
type Port interface {
	// CommitAndPush stages the given file (path relative to the working tree
	// root), commits it with the given message and pushes the branch.
	CommitAndPush(rc RepositoryContext, path string, message string) error

	// LatestTag returns the latest local tag by semantic version precedence,
	// ignoring tags whose name does not carry a version (nil if none is found).
	LatestTag(rc RepositoryContext) (*Tag, error)

	// MoveTagToHead deletes the given tag locally and remotely, re-creates it
	// as an annotated tag pointing at the current HEAD and pushes it.
	MoveTagToHead(rc RepositoryContext, tag *Tag) error
}
