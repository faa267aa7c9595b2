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

package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shurcooL/graphql"
	"golang.org/x/oauth2"

	terrors "github.com/sirseerhq/teamscope/internal/errors"
	"github.com/sirseerhq/teamscope/internal/giterror"
)

const userAgent = "teamscope"

// GraphQLClient implements the GitHub Client interface using the GraphQL API.
// It holds its own token and endpoint; there is no process-wide credential
// state.
type GraphQLClient struct {
	client    *graphql.Client
	inspector giterror.Inspector
}

// NewGraphQLClient creates a new GitHub GraphQL client authenticated with the
// provided token against the given endpoint (customizable for GitHub
// Enterprise). The underlying HTTP client carries a fixed generous timeout;
// there is no cancellation layer above it.
func NewGraphQLClient(token, endpoint string) *GraphQLClient {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Transport = &userAgentTransport{base: httpClient.Transport}
	httpClient.Timeout = 30 * time.Second

	return &GraphQLClient{
		client:    graphql.NewClient(endpoint, httpClient),
		inspector: giterror.NewInspector(),
	}
}

// Viewer validates the token by querying the authenticated identity. Any
// transport failure or malformed payload maps to ErrTokenValidation, which
// callers treat as fatal: a bad credential will not become good on retry.
func (c *GraphQLClient) Viewer(ctx context.Context) (string, error) {
	var query struct {
		Viewer struct {
			Login graphql.String
		}
	}

	if err := c.client.Query(ctx, &query, nil); err != nil {
		return "", fmt.Errorf("identity query failed: %v: %w", err, terrors.ErrTokenValidation)
	}

	login := string(query.Viewer.Login)
	if login == "" {
		return "", fmt.Errorf("identity query returned an empty login: %w", terrors.ErrTokenValidation)
	}

	return login, nil
}

// RepositoryName verifies that the repository exists and is accessible with
// the current token. Absent or inaccessible repositories map to
// ErrRepoNotFound and are not retried.
func (c *GraphQLClient) RepositoryName(ctx context.Context, owner, name string) (string, error) {
	var query struct {
		Repository struct {
			Name graphql.String
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"name":  graphql.String(name),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		if c.inspector.IsNotFoundError(err) {
			return "", fmt.Errorf("repository %s/%s is absent or inaccessible: %w", owner, name, terrors.ErrRepoNotFound)
		}
		return "", fmt.Errorf("failed to verify repository %s/%s: %w", owner, name, err)
	}

	repoName := string(query.Repository.Name)
	if repoName == "" {
		return "", fmt.Errorf("repository %s/%s is absent or inaccessible: %w", owner, name, terrors.ErrRepoNotFound)
	}

	return repoName, nil
}

// SearchAuthoredPRs fetches one page of pull requests matching the search
// expression, with per-PR change stats and discussion counts.
func (c *GraphQLClient) SearchAuthoredPRs(ctx context.Context, searchQuery string, opts PageOptions) (*AuthoredPage, error) {
	var query struct {
		Search struct {
			PageInfo struct {
				HasNextPage graphql.Boolean
				EndCursor   graphql.String
			}
			Nodes []struct {
				PullRequest struct {
					ID           graphql.ID
					URL          graphql.String
					Title        graphql.String
					State        graphql.String
					CreatedAt    time.Time
					UpdatedAt    time.Time
					Additions    graphql.Int
					Deletions    graphql.Int
					ChangedFiles graphql.Int
					Comments     struct {
						TotalCount graphql.Int
					}
					Reviews struct {
						TotalCount graphql.Int
					}
				} `graphql:"... on PullRequest"`
			}
		} `graphql:"search(query: $query, type: ISSUE, first: $first, after: $after)"`
	}

	variables := map[string]interface{}{
		"query": graphql.String(searchQuery),
		"first": graphql.Int(int32(opts.PageSize)), // #nosec G115 - page sizes are validated to <= 100
		"after": cursorOrNull(opts.After),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err)
	}

	page := &AuthoredPage{
		HasNextPage:  bool(query.Search.PageInfo.HasNextPage),
		EndCursor:    string(query.Search.PageInfo.EndCursor),
		PullRequests: make([]PullRequest, 0, len(query.Search.Nodes)),
	}

	for _, node := range query.Search.Nodes {
		pr := node.PullRequest
		page.PullRequests = append(page.PullRequests, PullRequest{
			ID:           fmt.Sprint(pr.ID),
			URL:          string(pr.URL),
			Title:        string(pr.Title),
			State:        string(pr.State),
			CreatedAt:    pr.CreatedAt,
			UpdatedAt:    pr.UpdatedAt,
			Additions:    int(pr.Additions),
			Deletions:    int(pr.Deletions),
			ChangedFiles: int(pr.ChangedFiles),
			CommentCount: int(pr.Comments.TotalCount),
			ReviewCount:  int(pr.Reviews.TotalCount),
		})
	}

	return page, nil
}

// SearchReviewedPRs fetches one page of pull requests from the reviewed-by
// search, each carrying one page of its nested review connection. Passing
// opts.ReviewsAfter with the same opts.After re-fetches the same outer page
// while advancing only the review connections.
func (c *GraphQLClient) SearchReviewedPRs(ctx context.Context, searchQuery string, opts ReviewPageOptions) (*ReviewedPage, error) {
	var query struct {
		Search struct {
			PageInfo struct {
				HasNextPage graphql.Boolean
				EndCursor   graphql.String
			}
			Nodes []struct {
				PullRequest struct {
					URL    graphql.String
					Title  graphql.String
					Author *struct {
						Login graphql.String
					} `graphql:"author"`
					Reviews struct {
						TotalCount graphql.Int
						PageInfo   struct {
							HasNextPage graphql.Boolean
							EndCursor   graphql.String
						}
						Nodes []struct {
							Author *struct {
								Login graphql.String
							} `graphql:"author"`
							State     graphql.String
							CreatedAt graphql.String
							Body      graphql.String
							Comments  struct {
								TotalCount graphql.Int
								Nodes      []struct {
									Body      graphql.String
									CreatedAt graphql.String
								}
							} `graphql:"comments(first: $commentsFirst)"`
						}
					} `graphql:"reviews(first: $reviewsFirst, after: $reviewsAfter)"`
				} `graphql:"... on PullRequest"`
			}
		} `graphql:"search(query: $query, type: ISSUE, first: $first, after: $after)"`
	}

	variables := map[string]interface{}{
		"query":         graphql.String(searchQuery),
		"first":         graphql.Int(int32(opts.PageSize)),        // #nosec G115 - validated to <= 100
		"reviewsFirst":  graphql.Int(int32(opts.ReviewPageSize)),  // #nosec G115
		"commentsFirst": graphql.Int(int32(opts.CommentPageSize)), // #nosec G115
		"after":         cursorOrNull(opts.After),
		"reviewsAfter":  cursorOrNull(opts.ReviewsAfter),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err)
	}

	page := &ReviewedPage{
		HasNextPage:  bool(query.Search.PageInfo.HasNextPage),
		EndCursor:    string(query.Search.PageInfo.EndCursor),
		PullRequests: make([]ReviewedPR, 0, len(query.Search.Nodes)),
	}

	for _, node := range query.Search.Nodes {
		pr := node.PullRequest
		reviewed := ReviewedPR{
			URL:   string(pr.URL),
			Title: string(pr.Title),
			Reviews: ReviewConnection{
				TotalCount:  int(pr.Reviews.TotalCount),
				HasNextPage: bool(pr.Reviews.PageInfo.HasNextPage),
				EndCursor:   string(pr.Reviews.PageInfo.EndCursor),
				Nodes:       make([]ReviewNode, 0, len(pr.Reviews.Nodes)),
			},
		}
		if pr.Author != nil {
			reviewed.Author = string(pr.Author.Login)
		}

		for _, rn := range pr.Reviews.Nodes {
			review := ReviewNode{
				State:        string(rn.State),
				CreatedAt:    string(rn.CreatedAt),
				Body:         string(rn.Body),
				CommentCount: int(rn.Comments.TotalCount),
				Comments:     make([]CommentNode, 0, len(rn.Comments.Nodes)),
			}
			if rn.Author != nil {
				review.Author = string(rn.Author.Login)
			}
			for _, cn := range rn.Comments.Nodes {
				review.Comments = append(review.Comments, CommentNode{
					Body:      string(cn.Body),
					CreatedAt: string(cn.CreatedAt),
				})
			}
			reviewed.Reviews.Nodes = append(reviewed.Reviews.Nodes, review)
		}

		page.PullRequests = append(page.PullRequests, reviewed)
	}

	return page, nil
}

// mapError maps raw GraphQL transport errors to domain errors. Rate limits
// are checked first because a 403 can be both authorization and rate limiting.
func (c *GraphQLClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded: %v: %w", err, terrors.ErrRateLimit)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("search target not found: %v: %w", err, terrors.ErrRepoNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error talking to the GitHub API: %w", err)
	}

	return fmt.Errorf("graphql query failed: %w", err)
}

// cursorOrNull returns a nullable cursor variable: GraphQL null fetches the
// first page.
func cursorOrNull(cursor string) *graphql.String {
	if cursor == "" {
		return (*graphql.String)(nil)
	}
	v := graphql.String(cursor)
	return &v
}

// userAgentTransport adds the User-Agent header required for API compliance.
type userAgentTransport struct {
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(req)
}
