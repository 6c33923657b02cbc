package githubfetch

import (
	"strings"

	"github.com/google/go-github/v62/github"
	"github.com/repopulse/repopulse/schema"
)

// convertCommit maps a detailed commit payload to the engine schema.
// Line stats fall back to per-file sums when the stats block is absent.
func convertCommit(rc *github.RepositoryCommit) schema.Commit {
	commit := schema.Commit{
		SHA:         rc.GetSHA(),
		AuthorLogin: rc.GetAuthor().GetLogin(),
		AuthorEmail: rc.GetCommit().GetAuthor().GetEmail(),
		AuthoredAt:  rc.GetCommit().GetAuthor().GetDate().Time.UTC(),
		Additions:   rc.GetStats().GetAdditions(),
		Deletions:   rc.GetStats().GetDeletions(),
	}

	for _, f := range rc.Files {
		commit.Files = append(commit.Files, schema.CommitFile{
			Path:      f.GetFilename(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
		})
	}
	return commit
}

func convertIssue(issue *github.Issue) schema.Issue {
	out := schema.Issue{
		Number:    issue.GetNumber(),
		State:     strings.ToLower(issue.GetState()),
		CreatedAt: issue.GetCreatedAt().Time.UTC(),
		UpdatedAt: issue.GetUpdatedAt().Time.UTC(),
	}
	if issue.ClosedAt != nil {
		closed := issue.GetClosedAt().Time.UTC()
		out.ClosedAt = &closed
	}
	return out
}

func convertPullRequest(pr *github.PullRequest) schema.PullRequest {
	out := schema.PullRequest{
		Number:    pr.GetNumber(),
		State:     strings.ToLower(pr.GetState()),
		CreatedAt: pr.GetCreatedAt().Time.UTC(),
	}
	if pr.MergedAt != nil {
		merged := pr.GetMergedAt().Time.UTC()
		out.MergedAt = &merged
	}
	return out
}

func convertContributor(c *github.Contributor) schema.Contributor {
	return schema.Contributor{
		Login:         c.GetLogin(),
		Contributions: c.GetContributions(),
	}
}
