// Package repogithub implements the repo.Port against the GitHub API.
package repogithub

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v70/github"
	"github.com/relvacode/iso8601"

	"github.com/changelog-ci/changelog-ci/internal/app/repo"
)

var _ repo.Port = &Adapter{}

type AdapterOptions struct {
	Token   string
	BaseURL string // override of the GitHub API base url (tests, GHE); must end with a slash
}

type Adapter struct {
	opts   AdapterOptions
	client *gh.Client
	owner  string
	repo   string
}

func NewAdapter(owner string, repoName string, opts AdapterOptions) *Adapter {
	client := gh.NewClient(nil)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.BaseURL != "" {
		baseURL, err := url.Parse(opts.BaseURL)
		if err != nil {
			slog.Warn("bad API base url => keeping the default one", slog.String("baseURL", opts.BaseURL))
		} else {
			client.BaseURL = baseURL
		}
	}
	return &Adapter{
		client: client,
		opts:   opts,
		owner:  owner,
		repo:   repoName,
	}
}

// gitObject is the shape of a git database object: a commit object carries a
// committer, a tag object carries a nested object reference instead (the
// commit object omits the discriminator the tag object carries, so the two
// kinds are told apart by which field is present).
type gitObject struct {
	Committer *gitSignature `json:"committer"`
	Object    *objectRef    `json:"object"`
}

type gitSignature struct {
	Date string `json:"date"`
}

type objectRef struct {
	URL string `json:"url"`
}

func (r *Adapter) getObject(ctx context.Context, objectURL string) (*gitObject, error) {
	req, err := r.client.NewRequest(http.MethodGet, objectURL, nil)
	if err != nil {
		return nil, err
	}
	var object gitObject
	_, err = r.client.Do(ctx, req, &object)
	if err != nil {
		return nil, err
	}
	return &object, nil
}

// ResolveTagTime returns the committer time of the commit the given tag points
// to: the tag reference is fetched first, then its object. A lightweight tag
// references the commit directly; an annotated tag references a tag object and
// needs one more hop to reach the commit.
func (r *Adapter) ResolveTagTime(tagName string) (*time.Time, error) {
	ctx := context.Background()
	logger := slog.Default().With(slog.String("tag", tagName))
	ref, _, err := r.client.Git.GetRef(ctx, r.owner, r.repo, "tags/"+tagName)
	if err != nil {
		return nil, fmt.Errorf("can't get the reference of the tag %s: %w", tagName, err)
	}
	objectURL := ref.GetObject().GetURL()
	if objectURL == "" {
		return nil, fmt.Errorf("the reference of the tag %s carries no object url", tagName)
	}
	object, err := r.getObject(ctx, objectURL)
	if err != nil {
		return nil, fmt.Errorf("can't get the object of the tag %s: %w", tagName, err)
	}
	if object.Committer == nil {
		// annotated tag: the referenced object is a tag object, follow it to the commit
		if object.Object == nil {
			return nil, fmt.Errorf("unexpected object shape for the tag %s", tagName)
		}
		logger.Debug("annotated tag => following the tag object to the commit")
		object, err = r.getObject(ctx, object.Object.URL)
		if err != nil {
			return nil, fmt.Errorf("can't get the commit of the annotated tag %s: %w", tagName, err)
		}
		if object.Committer == nil {
			return nil, fmt.Errorf("no committer date found for the tag %s", tagName)
		}
	}
	date, err := iso8601.ParseString(object.Committer.Date)
	if err != nil {
		return nil, fmt.Errorf("bad committer date %s for the tag %s: %w", object.Committer.Date, tagName, err)
	}
	logger.Debug("tag resolved", slog.String("date", date.Format(time.RFC3339)))
	return &date, nil
}

func (r *Adapter) createPullRequestFromIssue(issue *gh.Issue) *repo.PullRequest {
	if issue.Number == nil || issue.Title == nil || issue.HTMLURL == nil {
		return nil
	}
	labels := []string{}
	for _, label := range issue.Labels {
		if label.Name == nil {
			continue
		}
		labels = append(labels, *label.Name)
	}
	return &repo.PullRequest{
		Number: *issue.Number,
		Title:  *issue.Title,
		Url:    *issue.HTMLURL,
		Labels: labels,
	}
}

// SearchMergedPullRequests queries the search endpoint for the merged pull
// requests of the repository (bounded by the window if not nil) and follows
// the pagination links to exhaustion.
func (r *Adapter) SearchMergedPullRequests(window *repo.MergedWindow) ([]*repo.PullRequest, error) {
	query := fmt.Sprintf("repo:%s/%s is:pr is:merged", r.owner, r.repo)
	if window != nil {
		query += fmt.Sprintf(" merged:%s..%s", window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
	}
	opts := &gh.SearchOptions{
		Sort: "merged",
		ListOptions: gh.ListOptions{
			Page:    1,
			PerPage: 100,
		},
	}
	logger := slog.Default().With(slog.String("query", query))
	res := []*repo.PullRequest{}
	for {
		logger := logger.With(slog.Int("page", opts.Page))
		logger.Debug("searching pull-requests...")
		result, resp, err := r.client.Search.Issues(context.Background(), query, opts)
		if err != nil {
			return nil, fmt.Errorf("can't get the pull requests of %s/%s: %w", r.owner, r.repo, err)
		}
		for _, issue := range result.Issues {
			pr := r.createPullRequestFromIssue(issue)
			if pr == nil {
				continue
			}
			res = append(res, pr)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	logger.Debug("pull-requests fetched", slog.Int("count", len(res)))
	return res, nil
}

// CreateComment posts the given body as a comment on the given pull request
// (a pull request is an issue for the comments API). The expected status is 201.
func (r *Adapter) CreateComment(prNumber int, body string) error {
	_, resp, err := r.client.Issues.CreateComment(context.Background(), r.owner, r.repo, prNumber, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("can't create a comment on the pull request #%d: %w", prNumber, err)
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code %d while creating a comment on the pull request #%d", resp.StatusCode, prNumber)
	}
	return nil
}
