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

// Package activity builds per-member activity data from GitHub API responses:
// it fetches authored pull requests and given reviews, and reduces them into
// summary statistics. All entities are request-scoped; nothing is persisted.
package activity

import (
	"strings"
	"time"

	"github.com/sirseerhq/teamscope/internal/github"
)

// Comment is a single remark attached to a review.
type Comment struct {
	Body      string
	CreatedAt time.Time
}

// Review is a single reviewer's evaluation event on a pull request.
type Review struct {
	State     string
	CreatedAt time.Time
	Body      string

	// CommentCount is the authoritative API total. It may exceed
	// len(Comments) because comment fetching stops after one page.
	CommentCount int

	Author   string
	Comments []Comment
}

// HasCommentary reports whether the review carries any substance: a
// non-empty body after trimming, or at least one fetched comment.
func (r Review) HasCommentary() bool {
	return strings.TrimSpace(r.Body) != "" || len(r.Comments) > 0
}

// PRWithReviews accumulates one reviewer's reviews of a single pull request,
// keyed by URL across pagination pages so repeated visits merge rather than
// duplicate. TotalComments always equals the sum of CommentCount over Reviews.
type PRWithReviews struct {
	Title         string
	URL           string
	Reviews       []Review
	TotalComments int
}

// AddReview appends a review while maintaining the TotalComments invariant.
func (p *PRWithReviews) AddReview(r Review) {
	p.Reviews = append(p.Reviews, r)
	p.TotalComments += r.CommentCount
}

// HasCommentary reports whether any review of this PR carries commentary.
func (p *PRWithReviews) HasCommentary() bool {
	for _, r := range p.Reviews {
		if r.HasCommentary() {
			return true
		}
	}
	return false
}

// TeamMemberSummary aggregates one member's activity. Immutable once built.
type TeamMemberSummary struct {
	Name           string
	GitHubUsername string

	AuthoredPRs       int
	TotalAdditions    int
	TotalDeletions    int
	TotalFilesChanged int

	// ReviewsGiven counts individual review records, not reviewed PRs.
	ReviewsGiven        int
	TotalReviewComments int

	// TopPRs is the top 10 authored PRs by comments+reviews, descending,
	// ties broken by input order.
	TopPRs []github.PullRequest

	// MostEngagedReviews is the top 10 reviewed PRs by total comment count,
	// same tie rule.
	MostEngagedReviews []*PRWithReviews

	AllPRs         []github.PullRequest
	AllReviewedPRs []*PRWithReviews
}
