// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package github provides types and interfaces for interacting with the GitHub API.
package github

import "time"

// PullRequest is one authored pull-request record from the search API,
// kept as the API returned it with no further transformation.
type PullRequest struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	ChangedFiles int       `json:"changed_files"`
	CommentCount int       `json:"comment_count"`
	ReviewCount  int       `json:"review_count"`
}

// AuthoredPage is one page of authored pull requests with the pagination
// state needed to fetch the next page.
type AuthoredPage struct {
	PullRequests []PullRequest
	HasNextPage  bool
	EndCursor    string
}

// PageOptions configures a single authored-PR search page.
type PageOptions struct {
	// PageSize controls how many PRs to fetch per page.
	// Maximum is 100 per GitHub's API limits.
	PageSize int

	// After is the cursor for pagination. Empty fetches from the beginning.
	After string
}

// ReviewPageOptions configures a single reviewed-by search page, including
// the nested review and comment connections inside each PR node.
type ReviewPageOptions struct {
	PageSize int
	After    string

	// ReviewsAfter advances only the nested review connection. Re-querying
	// with the same After plus a ReviewsAfter fetches the next review page
	// of the PRs on the same outer page.
	ReviewsAfter string

	ReviewPageSize  int
	CommentPageSize int
}

// ReviewedPR is one pull request from the reviewed-by search, carrying one
// page of its review connection.
type ReviewedPR struct {
	URL     string
	Title   string
	Author  string // empty when the author account no longer exists
	Reviews ReviewConnection
}

// ReviewConnection is one page of a PR's reviews plus the connection's
// authoritative total.
type ReviewConnection struct {
	TotalCount  int
	HasNextPage bool
	EndCursor   string
	Nodes       []ReviewNode
}

// ReviewNode is a single review as returned by the API. CreatedAt stays a raw
// string at this layer so a malformed timestamp can be skipped per record
// instead of failing the whole page.
type ReviewNode struct {
	Author    string
	State     string
	CreatedAt string
	Body      string

	// CommentCount is the authoritative API total, which may exceed
	// len(Comments) when the comment page truncates.
	CommentCount int
	Comments     []CommentNode
}

// CommentNode is a single review comment.
type CommentNode struct {
	Body      string
	CreatedAt string
}

// ReviewedPage is one page of reviewed pull requests with pagination state.
type ReviewedPage struct {
	PullRequests []ReviewedPR
	HasNextPage  bool
	EndCursor    string
}
