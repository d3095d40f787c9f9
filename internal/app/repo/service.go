package repo

import (
	"log/slog"
	"time"
)

type Service struct {
	adapter Port
	logger  *slog.Logger
}

func New(adapter Port) *Service {
	return &Service{
		adapter: adapter,
		logger:  slog.With("name", "repoService"),
	}
}

// resolveTagTime returns the commit time of the given tag.
// An unresolvable tag is not a hard failure: it degrades to nil (with a warning)
// and the caller searches without a time bound.
func (s *Service) resolveTagTime(tagName string) *time.Time {
	res, err := s.adapter.ResolveTagTime(tagName)
	if err != nil {
		s.logger.Warn("could not find any tag release", slog.String("tag", tagName), slog.String("err", err.Error()))
		return nil
	}
	return res
}

// GetMergedPullRequestsBetween returns the pull requests merged between the two
// given tags. If either tag date can't be resolved, the date filter is omitted
// entirely and all the merged pull requests of the repository are returned.
func (s *Service) GetMergedPullRequestsBetween(startTag string, endTag string) ([]*PullRequest, error) {
	start := s.resolveTagTime(startTag)
	end := s.resolveTagTime(endTag)
	var window *MergedWindow
	if start != nil && end != nil {
		window = &MergedWindow{Start: *start, End: *end}
	} else {
		s.logger.Warn("no resolved tag dates => searching without a merged date filter")
	}
	prs, err := s.adapter.SearchMergedPullRequests(window)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("pull requests collected", slog.Int("count", len(prs)))
	return prs, nil
}

// Comment posts the given body as a comment on the given pull request.
func (s *Service) Comment(prNumber int, body string) error {
	return s.adapter.CreateComment(prNumber, body)
}
