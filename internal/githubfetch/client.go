// Package githubfetch retrieves raw repository records from the GitHub
// REST API and flattens paginated responses into a schema.RawRecordSet.
package githubfetch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/go-github/v62/github"
	"github.com/mattn/go-isatty"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"golang.org/x/oauth2"
)

const (
	// perPage is the page size used for every list endpoint.
	perPage = 100

	// commitLookbackDays bounds the commit fetch. It is wider than any
	// analysis window so that new-contributor detection has real history
	// to compare against.
	commitLookbackDays = 365

	// maxConcurrentDetailFetches caps the parallel per-commit detail
	// requests so a large page burst does not trip secondary rate limits.
	maxConcurrentDetailFetches = 8
)

// Source fetches repository records over the GitHub REST API. It
// implements contract.RepoSource.
type Source struct {
	client *github.Client
}

var _ contract.RepoSource = (*Source)(nil)

// NewSource builds a Source from the runtime config. An empty token
// yields an unauthenticated client, which works for public repositories
// at a much lower rate limit.
func NewSource(ctx context.Context, cfg *contract.Config) (*Source, error) {
	httpClient := oauth2.NewClient(ctx, nil)
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)
	if cfg.APIURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(cfg.APIURL, cfg.APIURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api-url %q: %w", cfg.APIURL, err)
		}
	}
	return &Source{client: client}, nil
}

// FetchRecordSet retrieves commits, issues, pull requests and
// contributors for the configured repository.
func (s *Source) FetchRecordSet(ctx context.Context, cfg *contract.Config) (*schema.RawRecordSet, error) {
	spin := startSpinner(fmt.Sprintf(" Fetching %s", cfg.Repository()))
	defer stopSpinner(spin)

	since := time.Now().UTC().AddDate(0, 0, -commitLookbackDays)

	commits, err := s.fetchCommits(ctx, cfg, since)
	if err != nil {
		return nil, fmt.Errorf("fetch commits: %w", err)
	}
	issues, err := s.fetchIssues(ctx, cfg, since)
	if err != nil {
		return nil, fmt.Errorf("fetch issues: %w", err)
	}
	pulls, err := s.fetchPullRequests(ctx, cfg, since)
	if err != nil {
		return nil, fmt.Errorf("fetch pull requests: %w", err)
	}
	contributors, err := s.fetchContributors(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("fetch contributors: %w", err)
	}

	return &schema.RawRecordSet{
		Repository:   cfg.Repository(),
		Commits:      commits,
		Issues:       issues,
		PullRequests: pulls,
		Contributors: contributors,
	}, nil
}

// fetchCommits lists commits since the lookback cutoff and then loads
// per-commit detail for line stats and changed files. The list endpoint
// does not include either.
func (s *Source) fetchCommits(ctx context.Context, cfg *contract.Config, since time.Time) ([]schema.Commit, error) {
	opts := &github.CommitsListOptions{
		Since:       since,
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var listed []*github.RepositoryCommit
	for {
		page, resp, err := s.client.Repositories.ListCommits(ctx, cfg.Owner, cfg.Name, opts)
		if err != nil {
			return nil, err
		}
		listed = append(listed, page...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	commits := make([]schema.Commit, len(listed))
	errs := make([]error, len(listed))
	sem := make(chan struct{}, maxConcurrentDetailFetches)

	var wg sync.WaitGroup
	for i, rc := range listed {
		wg.Go(func() {
			sem <- struct{}{}
			defer func() { <-sem }()

			detail, _, err := s.client.Repositories.GetCommit(ctx, cfg.Owner, cfg.Name, rc.GetSHA(), nil)
			if err != nil {
				errs[i] = fmt.Errorf("commit %s: %w", rc.GetSHA(), err)
				return
			}
			commits[i] = convertCommit(detail)
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return commits, nil
}

// fetchIssues lists every open issue plus the closed issues updated
// within the lookback. Stagnation needs the full open backlog; close
// time only looks at recent closures, so older closed issues are not
// worth the pages. GitHub reports pull requests on the issues endpoint
// too, so those are filtered out here.
func (s *Source) fetchIssues(ctx context.Context, cfg *contract.Config, since time.Time) ([]schema.Issue, error) {
	var issues []schema.Issue

	collect := func(opts *github.IssueListByRepoOptions) error {
		for {
			page, resp, err := s.client.Issues.ListByRepo(ctx, cfg.Owner, cfg.Name, opts)
			if err != nil {
				return err
			}
			for _, issue := range page {
				if issue.IsPullRequest() {
					continue
				}
				issues = append(issues, convertIssue(issue))
			}
			if resp.NextPage == 0 {
				return nil
			}
			opts.Page = resp.NextPage
		}
	}

	open := &github.IssueListByRepoOptions{
		State:       schema.IssueOpen,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	if err := collect(open); err != nil {
		return nil, err
	}

	closed := &github.IssueListByRepoOptions{
		State:       schema.IssueClosed,
		Since:       since,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	if err := collect(closed); err != nil {
		return nil, err
	}
	return issues, nil
}

// fetchPullRequests walks pull requests newest-first and stops once a
// full page falls before the lookback cutoff.
func (s *Source) fetchPullRequests(ctx context.Context, cfg *contract.Config, since time.Time) ([]schema.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var pulls []schema.PullRequest
	for {
		page, resp, err := s.client.PullRequests.List(ctx, cfg.Owner, cfg.Name, opts)
		if err != nil {
			return nil, err
		}

		pageInRange := false
		for _, pr := range page {
			if pr.GetCreatedAt().Time.Before(since) {
				continue
			}
			pageInRange = true
			pulls = append(pulls, convertPullRequest(pr))
		}
		if !pageInRange || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return pulls, nil
}

func (s *Source) fetchContributors(ctx context.Context, cfg *contract.Config) ([]schema.Contributor, error) {
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var contributors []schema.Contributor
	for {
		page, resp, err := s.client.Repositories.ListContributors(ctx, cfg.Owner, cfg.Name, opts)
		if err != nil {
			return nil, err
		}
		for _, c := range page {
			contributors = append(contributors, convertContributor(c))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return contributors, nil
}

// startSpinner begins a progress spinner on stderr when attached to a
// terminal. It returns nil otherwise, which stopSpinner tolerates.
func startSpinner(suffix string) *spinner.Spinner {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	spin.Suffix = suffix
	spin.Start()
	return spin
}

func stopSpinner(spin *spinner.Spinner) {
	if spin != nil {
		spin.Stop()
	}
}
