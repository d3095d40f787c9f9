package repo

import (
	"time"
)

// PullRequest represents a merged pull request collected for the changelog.
type PullRequest struct {
	Number int      // pull request number
	Title  string   // pull request title
	Url    string   // pull request html url
	Labels []string // pull request label names
}

// HasThisLabel returns true if the pull request has the given label
func (pr *PullRequest) HasThisLabel(label string) bool {
	for _, l := range pr.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// HasOneOfTheseLabels returns true if the pull request has at least one of the given labels.
func (pr *PullRequest) HasOneOfTheseLabels(labels []string) bool {
	for _, label := range labels {
		if pr.HasThisLabel(label) {
			return true
		}
	}
	return false
}

// MergedWindow bounds a pull-request search to the pull requests
// merged between Start and End (inclusive).
type MergedWindow struct {
	Start time.Time
	End   time.Time
}
