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

package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/sirseerhq/teamscope/internal/config"
	"github.com/sirseerhq/teamscope/internal/github"
	"github.com/sirseerhq/teamscope/internal/log"
	"github.com/sirseerhq/teamscope/internal/paginate"
)

// Fetcher retrieves a user's pull-request and review activity from GitHub.
// It is bound to a single repository and pagination profile; the accumulation
// state of each fetch is local to the call.
type Fetcher struct {
	client     github.Client
	repo       string // owner/name
	pagination config.PaginationConfig
}

// NewFetcher creates a Fetcher for the given repository.
func NewFetcher(client github.Client, repo string, pagination config.PaginationConfig) *Fetcher {
	return &Fetcher{
		client:     client,
		repo:       repo,
		pagination: pagination,
	}
}

// FetchUserPRs returns the pull requests authored by user in the configured
// repository since startDate (optionally bounded by endDate), as flat raw
// records. Pagination is capped; very prolific authors are truncated.
func (f *Fetcher) FetchUserPRs(ctx context.Context, user, startDate, endDate string) ([]github.PullRequest, error) {
	query := github.BuildAuthoredQuery(f.repo, user, startDate, endDate)
	log.Debug("fetching authored pull requests", "user", user, "query", query)

	return paginate.Collect(ctx, f.pagination.AuthoredMaxPages,
		func(ctx context.Context, cursor string) ([]github.PullRequest, paginate.PageInfo, error) {
			page, err := f.client.SearchAuthoredPRs(ctx, query, github.PageOptions{
				PageSize: f.pagination.AuthoredPageSize,
				After:    cursor,
			})
			if err != nil {
				return nil, paginate.PageInfo{}, err
			}
			return page.PullRequests, paginate.PageInfo{
				HasNextPage: page.HasNextPage,
				EndCursor:   page.EndCursor,
			}, nil
		})
}

// FetchUserReviews returns the pull requests user reviewed in the configured
// repository within the updated window, with the user's reviews and their
// comments attached. PRs authored by user are skipped entirely: reviewing
// one's own PR does not count as reviewing. Entries are keyed by PR URL so
// repeated encounters across pages merge.
func (f *Fetcher) FetchUserReviews(ctx context.Context, user, startDate, endDate string) ([]*PRWithReviews, error) {
	query := github.BuildReviewedQuery(f.repo, user, startDate, endDate)
	log.Debug("fetching given reviews", "user", user, "query", query)

	acc := newAccumulator()

	err := paginate.Walk(ctx, f.pagination.ReviewMaxPages,
		func(ctx context.Context, cursor string) (paginate.PageInfo, error) {
			page, err := f.client.SearchReviewedPRs(ctx, query, f.reviewOpts(cursor, ""))
			if err != nil {
				return paginate.PageInfo{}, err
			}

			for _, pr := range page.PullRequests {
				if pr.Author == user {
					continue
				}
				if err := f.collectPRReviews(ctx, query, cursor, pr, user, acc); err != nil {
					return paginate.PageInfo{}, err
				}
			}

			return paginate.PageInfo{
				HasNextPage: page.HasNextPage,
				EndCursor:   page.EndCursor,
			}, nil
		})
	if err != nil {
		return nil, err
	}

	return acc.ordered(), nil
}

// collectPRReviews walks one PR's review connection to exhaustion. Follow-up
// pages are fetched by re-issuing the search with the same outer cursor and
// an advancing review cursor: the outer PR identity does not change, only the
// nested connection position does.
func (f *Fetcher) collectPRReviews(ctx context.Context, query, outerCursor string, first github.ReviewedPR, user string, acc *accumulator) error {
	node := first

	return paginate.Walk(ctx, 0, func(ctx context.Context, reviewsCursor string) (paginate.PageInfo, error) {
		if reviewsCursor != "" {
			page, err := f.client.SearchReviewedPRs(ctx, query, f.reviewOpts(outerCursor, reviewsCursor))
			if err != nil {
				return paginate.PageInfo{}, err
			}
			found := findByURL(page.PullRequests, node.URL)
			if found == nil {
				// The outer page shifted under us; stop rather than
				// attribute another PR's reviews.
				log.Warn("pull request missing from re-queried page, stopping its review walk",
					"url", node.URL)
				return paginate.PageInfo{}, nil
			}
			node = *found
		}

		f.appendUserReviews(node, user, acc)

		return paginate.PageInfo{
			HasNextPage: node.Reviews.HasNextPage,
			EndCursor:   node.Reviews.EndCursor,
		}, nil
	})
}

// appendUserReviews merges the reviews authored by user from one review page
// into the accumulator. Malformed reviews are logged and skipped; they never
// abort the surrounding page.
func (f *Fetcher) appendUserReviews(pr github.ReviewedPR, user string, acc *accumulator) {
	for _, rn := range pr.Reviews.Nodes {
		if rn.Author != user {
			continue
		}

		review, err := convertReview(rn, user)
		if err != nil {
			log.Warn("skipping malformed review", "pr", pr.URL, "error", err)
			continue
		}

		acc.entry(pr.URL, pr.Title).AddReview(review)
	}
}

func (f *Fetcher) reviewOpts(after, reviewsAfter string) github.ReviewPageOptions {
	return github.ReviewPageOptions{
		PageSize:        f.pagination.ReviewPageSize,
		After:           after,
		ReviewsAfter:    reviewsAfter,
		ReviewPageSize:  f.pagination.ReviewSubPageSize,
		CommentPageSize: f.pagination.CommentPageSize,
	}
}

// convertReview builds a Review from a raw API node, parsing timestamps.
// A bad review timestamp rejects the review; a bad comment timestamp drops
// only that comment.
func convertReview(rn github.ReviewNode, user string) (Review, error) {
	createdAt, err := time.Parse(time.RFC3339, rn.CreatedAt)
	if err != nil {
		return Review{}, fmt.Errorf("bad review timestamp %q: %w", rn.CreatedAt, err)
	}

	comments := make([]Comment, 0, len(rn.Comments))
	for _, cn := range rn.Comments {
		at, err := time.Parse(time.RFC3339, cn.CreatedAt)
		if err != nil {
			log.Warn("skipping malformed review comment", "timestamp", cn.CreatedAt)
			continue
		}
		comments = append(comments, Comment{Body: cn.Body, CreatedAt: at})
	}

	return Review{
		State:        rn.State,
		CreatedAt:    createdAt,
		Body:         rn.Body,
		CommentCount: rn.CommentCount,
		Author:       user,
		Comments:     comments,
	}, nil
}

func findByURL(prs []github.ReviewedPR, url string) *github.ReviewedPR {
	for i := range prs {
		if prs[i].URL == url {
			return &prs[i]
		}
	}
	return nil
}

// accumulator is the URL-keyed ordered map of PRWithReviews built during one
// FetchUserReviews call. It never escapes the call, so no locking is needed.
type accumulator struct {
	byURL map[string]*PRWithReviews
	order []string
}

func newAccumulator() *accumulator {
	return &accumulator{byURL: make(map[string]*PRWithReviews)}
}

// entry returns the accumulated PR for url, creating it on first encounter.
func (a *accumulator) entry(url, title string) *PRWithReviews {
	if pr, ok := a.byURL[url]; ok {
		return pr
	}
	pr := &PRWithReviews{Title: title, URL: url}
	a.byURL[url] = pr
	a.order = append(a.order, url)
	return pr
}

// ordered returns the accumulated PRs in first-encounter order.
func (a *accumulator) ordered() []*PRWithReviews {
	out := make([]*PRWithReviews, 0, len(a.order))
	for _, url := range a.order {
		out = append(out, a.byURL[url])
	}
	return out
}
