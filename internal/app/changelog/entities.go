package changelog

import (
	"github.com/changelog-ci/changelog-ci/internal/app/config"
	"github.com/changelog-ci/changelog-ci/internal/app/repo"
)

// otherChangesTitle is the heading of the remainder group
// (records matching none of the configured groups).
const otherChangesTitle = "Other Changes"

// Section is one rendered block of the changelog: a heading and the pull
// requests assigned to it. An empty Title means a flat (heading-less) block.
type Section struct {
	Title string
	Prs   []*repo.PullRequest
}

// Changelog is the structured form of one release section of the changelog document.
type Changelog struct {
	HeaderPrefix string
	Version      string
	Sections     []*Section
}

// New builds the changelog structure for one release: the given pull requests
// are partitioned into the configured groups (first-match priority, a pull
// request is assigned to at most one group), the remainder goes to a final
// "Other Changes" section. With no configured group, all the pull requests
// land in a single heading-less section.
func New(headerPrefix string, version string, prs []*repo.PullRequest, groups []config.Group) *Changelog {
	return &Changelog{
		HeaderPrefix: headerPrefix,
		Version:      version,
		Sections:     partition(prs, groups),
	}
}

func partition(prs []*repo.PullRequest, groups []config.Group) []*Section {
	if len(groups) == 0 {
		return []*Section{{Prs: prs}}
	}
	sections := []*Section{}
	unassigned := make([]*repo.PullRequest, len(prs))
	copy(unassigned, prs)
	for _, group := range groups {
		if len(unassigned) == 0 {
			break
		}
		matched := []*repo.PullRequest{}
		rest := []*repo.PullRequest{}
		for _, pr := range unassigned {
			if pr.HasOneOfTheseLabels(group.Labels) {
				matched = append(matched, pr)
			} else {
				rest = append(rest, pr)
			}
		}
		unassigned = rest
		if len(matched) > 0 {
			sections = append(sections, &Section{Title: group.Title, Prs: matched})
		}
	}
	if len(unassigned) > 0 {
		sections = append(sections, &Section{Title: otherChangesTitle, Prs: unassigned})
	}
	return sections
}
