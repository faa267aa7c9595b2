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

import "context"

// Client defines the interface for interacting with GitHub's GraphQL API.
// This interface allows for easy mocking in tests.
type Client interface {
	// Viewer issues the authenticated identity query and returns the login
	// of the token's owner. Failure means the token is invalid; callers
	// must not retry it.
	Viewer(ctx context.Context) (string, error)

	// RepositoryName verifies that the named repository exists and is
	// accessible, returning its name. Failure is not retried.
	RepositoryName(ctx context.Context, owner, name string) (string, error)

	// SearchAuthoredPRs retrieves a page of pull requests matching a search
	// expression, with the flat per-PR stats needed for activity summaries.
	SearchAuthoredPRs(ctx context.Context, query string, opts PageOptions) (*AuthoredPage, error)

	// SearchReviewedPRs retrieves a page of pull requests with their nested
	// review connections. opts.ReviewsAfter re-fetches the same outer page
	// while advancing only the review connection.
	SearchReviewedPRs(ctx context.Context, query string, opts ReviewPageOptions) (*ReviewedPage, error)
}
