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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/teamscope/internal/config"
	"github.com/sirseerhq/teamscope/internal/github"
)

func testPagination() config.PaginationConfig {
	return config.PaginationConfig{
		AuthoredPageSize:  100,
		AuthoredMaxPages:  5,
		ReviewPageSize:    25,
		ReviewMaxPages:    10,
		ReviewSubPageSize: 100,
		CommentPageSize:   100,
	}
}

func reviewNode(author, createdAt, body string, commentCount int, comments ...github.CommentNode) github.ReviewNode {
	return github.ReviewNode{
		Author:       author,
		State:        "COMMENTED",
		CreatedAt:    createdAt,
		Body:         body,
		CommentCount: commentCount,
		Comments:     comments,
	}
}

func TestFetchUserPRs_CollectsAcrossPages(t *testing.T) {
	mock := github.NewMockClient()
	mock.AddAuthoredPage("", &github.AuthoredPage{
		PullRequests: []github.PullRequest{{URL: "u1"}, {URL: "u2"}},
		HasNextPage:  true,
		EndCursor:    "c1",
	})
	mock.AddAuthoredPage("c1", &github.AuthoredPage{
		PullRequests: []github.PullRequest{{URL: "u3"}},
	})

	f := NewFetcher(mock, "acme/widgets", testPagination())
	prs, err := f.FetchUserPRs(context.Background(), "alice", "2024-07-01", "")

	require.NoError(t, err)
	require.Len(t, prs, 3)
	assert.Equal(t, "u1", prs[0].URL)
	assert.Equal(t, "u3", prs[2].URL)
	assert.Contains(t, mock.LastQuery, "author:alice")
	assert.Contains(t, mock.LastQuery, "repo:acme/widgets")
}

func TestFetchUserPRs_RespectsPageCap(t *testing.T) {
	mock := github.NewMockClient()
	cursors := []string{"", "c1", "c2", "c3", "c4", "c5", "c6"}
	for i, after := range cursors {
		mock.AddAuthoredPage(after, &github.AuthoredPage{
			PullRequests: []github.PullRequest{{URL: after + "/pr"}},
			HasNextPage:  true,
			EndCursor:    cursors[min(i+1, len(cursors)-1)],
		})
	}

	pg := testPagination()
	pg.AuthoredMaxPages = 3
	f := NewFetcher(mock, "acme/widgets", pg)

	prs, err := f.FetchUserPRs(context.Background(), "alice", "2024-07-01", "")
	require.NoError(t, err)
	assert.Len(t, prs, 3)
	assert.Equal(t, 3, mock.SearchCalls)
}

func TestFetchUserPRs_PropagatesError(t *testing.T) {
	mock := github.NewMockClient()
	mock.Error = errors.New("boom")

	f := NewFetcher(mock, "acme/widgets", testPagination())
	_, err := f.FetchUserPRs(context.Background(), "alice", "2024-07-01", "")
	require.Error(t, err)
}

func TestFetchUserReviews_SkipsSelfAuthoredPRs(t *testing.T) {
	mock := github.NewMockClient()
	mock.AddReviewedPage("", "", &github.ReviewedPage{
		PullRequests: []github.ReviewedPR{
			{
				URL: "own", Title: "own PR", Author: "alice",
				Reviews: github.ReviewConnection{Nodes: []github.ReviewNode{
					reviewNode("alice", "2024-08-01T00:00:00Z", "self review", 0),
				}},
			},
			{
				URL: "other", Title: "other PR", Author: "bob",
				Reviews: github.ReviewConnection{Nodes: []github.ReviewNode{
					reviewNode("alice", "2024-08-01T00:00:00Z", "looks good", 1,
						github.CommentNode{Body: "nit", CreatedAt: "2024-08-01T00:01:00Z"}),
				}},
			},
		},
	})

	f := NewFetcher(mock, "acme/widgets", testPagination())
	got, err := f.FetchUserReviews(context.Background(), "alice", "2024-07-01", "2024-08-31")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "other", got[0].URL)
}

func TestFetchUserReviews_FiltersOtherReviewers(t *testing.T) {
	mock := github.NewMockClient()
	mock.AddReviewedPage("", "", &github.ReviewedPage{
		PullRequests: []github.ReviewedPR{{
			URL: "pr1", Title: "feature", Author: "bob",
			Reviews: github.ReviewConnection{Nodes: []github.ReviewNode{
				reviewNode("carol", "2024-08-01T00:00:00Z", "not hers", 0),
				reviewNode("alice", "2024-08-02T00:00:00Z", "hers", 2),
			}},
		}},
	})

	f := NewFetcher(mock, "acme/widgets", testPagination())
	got, err := f.FetchUserReviews(context.Background(), "alice", "2024-07-01", "2024-08-31")

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Reviews, 1)
	assert.Equal(t, "hers", got[0].Reviews[0].Body)
	assert.Equal(t, 2, got[0].TotalComments)
}

func TestFetchUserReviews_MergesAcrossOuterPages(t *testing.T) {
	mock := github.NewMockClient()
	mock.AddReviewedPage("", "", &github.ReviewedPage{
		PullRequests: []github.ReviewedPR{{
			URL: "pr1", Title: "feature", Author: "bob",
			Reviews: github.ReviewConnection{Nodes: []github.ReviewNode{
				reviewNode("alice", "2024-08-01T00:00:00Z", "first pass", 3),
			}},
		}},
		HasNextPage: true,
		EndCursor:   "outer1",
	})
	mock.AddReviewedPage("outer1", "", &github.ReviewedPage{
		PullRequests: []github.ReviewedPR{{
			URL: "pr1", Title: "feature", Author: "bob",
			Reviews: github.ReviewConnection{Nodes: []github.ReviewNode{
				reviewNode("alice", "2024-08-05T00:00:00Z", "second pass", 2),
			}},
		}},
	})

	f := NewFetcher(mock, "acme/widgets", testPagination())
	got, err := f.FetchUserReviews(context.Background(), "alice", "2024-07-01", "2024-08-31")

	require.NoError(t, err)
	require.Len(t, got, 1, "same URL across pages must merge into one entry")
	assert.Len(t, got[0].Reviews, 2)
	assert.Equal(t, 5, got[0].TotalComments)
}

func TestFetchUserReviews_WalksNestedReviewPages(t *testing.T) {
	mock := github.NewMockClient()
	// First encounter: review connection truncated at one node.
	mock.AddReviewedPage("", "", &github.ReviewedPage{
		PullRequests: []github.ReviewedPR{{
			URL: "pr1", Title: "feature", Author: "bob",
			Reviews: github.ReviewConnection{
				Nodes: []github.ReviewNode{
					reviewNode("alice", "2024-08-01T00:00:00Z", "part one", 1),
				},
				HasNextPage: true,
				EndCursor:   "rev1",
			},
		}},
	})
	// Follow-up re-queries the same outer cursor with the review cursor set.
	mock.AddReviewedPage("", "rev1", &github.ReviewedPage{
		PullRequests: []github.ReviewedPR{{
			URL: "pr1", Title: "feature", Author: "bob",
			Reviews: github.ReviewConnection{Nodes: []github.ReviewNode{
				reviewNode("alice", "2024-08-02T00:00:00Z", "part two", 4),
			}},
		}},
	})

	f := NewFetcher(mock, "acme/widgets", testPagination())
	got, err := f.FetchUserReviews(context.Background(), "alice", "2024-07-01", "2024-08-31")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Reviews, 2)
	assert.Equal(t, 5, got[0].TotalComments)
	assert.Equal(t, "rev1", mock.LastReviewOpts.ReviewsAfter)
	assert.Equal(t, "", mock.LastReviewOpts.After, "follow-up must reuse the outer cursor")
}

func TestFetchUserReviews_StopsWhenPRVanishesFromRequeriedPage(t *testing.T) {
	mock := github.NewMockClient()
	mock.AddReviewedPage("", "", &github.ReviewedPage{
		PullRequests: []github.ReviewedPR{{
			URL: "pr1", Title: "feature", Author: "bob",
			Reviews: github.ReviewConnection{
				Nodes: []github.ReviewNode{
					reviewNode("alice", "2024-08-01T00:00:00Z", "part one", 1),
				},
				HasNextPage: true,
				EndCursor:   "rev1",
			},
		}},
	})
	// Re-queried page no longer contains pr1.
	mock.AddReviewedPage("", "rev1", &github.ReviewedPage{
		PullRequests: []github.ReviewedPR{{URL: "totally-different", Author: "eve"}},
	})

	f := NewFetcher(mock, "acme/widgets", testPagination())
	got, err := f.FetchUserReviews(context.Background(), "alice", "2024-07-01", "2024-08-31")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Reviews, 1, "keeps what was already collected")
}

func TestFetchUserReviews_SkipsMalformedTimestamps(t *testing.T) {
	mock := github.NewMockClient()
	mock.AddReviewedPage("", "", &github.ReviewedPage{
		PullRequests: []github.ReviewedPR{{
			URL: "pr1", Title: "feature", Author: "bob",
			Reviews: github.ReviewConnection{Nodes: []github.ReviewNode{
				reviewNode("alice", "not-a-timestamp", "bad review", 1),
				reviewNode("alice", "2024-08-02T00:00:00Z", "good review", 2,
					github.CommentNode{Body: "ok", CreatedAt: "2024-08-02T01:00:00Z"},
					github.CommentNode{Body: "bad", CreatedAt: "garbage"},
				),
			}},
		}},
	})

	f := NewFetcher(mock, "acme/widgets", testPagination())
	got, err := f.FetchUserReviews(context.Background(), "alice", "2024-07-01", "2024-08-31")

	require.NoError(t, err, "a malformed record must not abort the fetch")
	require.Len(t, got, 1)
	require.Len(t, got[0].Reviews, 1, "malformed review is dropped")
	assert.Equal(t, "good review", got[0].Reviews[0].Body)
	assert.Len(t, got[0].Reviews[0].Comments, 1, "malformed comment is dropped, review kept")
	assert.Equal(t, 2, got[0].TotalComments, "invariant uses the API count, not fetched comments")
}

func TestFetchUserReviews_PropagatesError(t *testing.T) {
	mock := github.NewMockClient()
	mock.Error = errors.New("boom")

	f := NewFetcher(mock, "acme/widgets", testPagination())
	_, err := f.FetchUserReviews(context.Background(), "alice", "2024-07-01", "2024-08-31")
	require.Error(t, err)
}

func TestAccumulator_PreservesFirstEncounterOrder(t *testing.T) {
	acc := newAccumulator()
	acc.entry("b", "B")
	acc.entry("a", "A")
	acc.entry("b", "B again")
	acc.entry("c", "C")

	got := acc.ordered()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].URL, got[1].URL, got[2].URL})
	assert.Equal(t, "B", got[0].Title, "first-seen title wins")
}
