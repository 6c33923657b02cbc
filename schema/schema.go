// Package schema has configs, models and shared constants for all parts of repopulse.
package schema

import "time"

// CommitFile represents the per-file line deltas of a single commit.
type CommitFile struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Commit represents one commit record as returned by the data-fetch layer.
// Records are fully materialized; the scoring engine never issues further fetches.
type Commit struct {
	SHA         string       `json:"sha"`
	AuthorLogin string       `json:"author_login"`
	AuthorEmail string       `json:"author_email"`
	AuthoredAt  time.Time    `json:"authored_at"`
	Additions   int          `json:"additions"`
	Deletions   int          `json:"deletions"`
	Files       []CommitFile `json:"files,omitempty"`
}

// AuthorKey returns a stable identity for the commit author.
// Login is preferred; email is the fallback for commits without a linked account.
func (c *Commit) AuthorKey() string {
	if c.AuthorLogin != "" {
		return c.AuthorLogin
	}
	return c.AuthorEmail
}

// Issue represents one issue record. ClosedAt is nil while the issue is open.
type Issue struct {
	Number    int        `json:"number"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// IsOpen reports whether the issue is still open.
func (i *Issue) IsOpen() bool {
	return i.State == IssueOpen
}

// PullRequest represents one pull request record. MergedAt is nil for
// unmerged pull requests, including ones closed without merging.
type PullRequest struct {
	Number    int        `json:"number"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
}

// Contributor represents one contributor record with a lifetime contribution count.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// RawRecordSet holds the already-paginated, already-flattened record
// sequences for one repository. It is the sole input of the scoring engine
// and is safe for unlimited concurrent readers.
type RawRecordSet struct {
	Repository   string        `json:"repository"`
	Commits      []Commit      `json:"commits"`
	Issues       []Issue       `json:"issues"`
	PullRequests []PullRequest `json:"pull_requests"`
	Contributors []Contributor `json:"contributors"`
}
