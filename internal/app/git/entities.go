package git

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Tag represents a git tag with its name and semantic version.
type Tag struct {
	Name   string          // tag name (without modification)
	Semver *semver.Version // semver version read from tag name (nil if the tag name is not in the expected format)
	Prefix string          // Prefix read before the semver version
}

// NewTag creates a new Tag instance with the given name.
// It also parses the name to extract the semantic version of the tag:
// if the tag name has a prefix "v", the prefix will be removed before parsing the version,
// if the tag name is in the form foo/v1.2.3, the prefix part ("foo/") will be removed before parsing.
// If the name is not in the expected format, the Semver field of the returned Tag will be nil.
func NewTag(name string) *Tag {
	if name == "" {
		return nil
	}
	prefix := ""
	nameWithoutPrefix := name
	if strings.Contains(nameWithoutPrefix, "/") {
		tmp := strings.Split(nameWithoutPrefix, "/")
		nameWithoutPrefix = tmp[len(tmp)-1]
		prefix = strings.Join(tmp[:len(tmp)-1], "/") + "/"
	}
	if nameWithoutPrefix != "" && nameWithoutPrefix[0] == 'v' {
		prefix += "v"
		nameWithoutPrefix = strings.TrimPrefix(nameWithoutPrefix, "v")
	}
	version, err := semver.NewVersion(nameWithoutPrefix)
	if err != nil {
		version = nil
	}
	return &Tag{
		Name:   name,
		Semver: version,
		Prefix: prefix,
	}
}

// LessThan compares the current Tag instance with another Tag instance by
// semantic version precedence. Tags without a semantic version sort first.
func (t1 *Tag) LessThan(t2 *Tag) bool {
	if t1.Semver == nil {
		return t2.Semver != nil
	}
	if t2.Semver == nil {
		return false
	}
	return t1.Semver.LessThan(t2.Semver)
}

// RepositoryContext carries the state of the working tree the publisher
// operates on (instead of mutating global git configuration).
type RepositoryContext struct {
	Root           string // local path of the working tree
	Branch         string // branch to commit on and push
	RemoteName     string // name of the remote to push to (usually "origin")
	CommitterName  string // committer user name
	CommitterEmail string // committer email address
	Token          string // authentication token (push credentials, comment API)
}
