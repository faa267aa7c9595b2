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

	terrors "github.com/sirseerhq/teamscope/internal/errors"
)

// reviewedPageKey addresses a scripted reviewed page by the outer search
// cursor and the nested review cursor of the request.
type reviewedPageKey struct {
	After        string
	ReviewsAfter string
}

// MockClient is a mock implementation of the GitHub Client interface for
// testing. Pages are scripted by cursor so tests can exercise both the outer
// search pagination and the nested review walks.
type MockClient struct {
	// Login returned by Viewer.
	Login string

	// AuthoredPages keyed by the After cursor of the request.
	AuthoredPages map[string]*AuthoredPage

	// ReviewedPages keyed by (After, ReviewsAfter).
	ReviewedPages map[reviewedPageKey]*ReviewedPage

	// Error, when set, is returned by every method.
	Error error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNotFound bool

	// Track calls for verification
	ViewerCalls    int
	RepoCalls      int
	SearchCalls    int
	LastQuery      string
	LastPageOpts   PageOptions
	LastReviewOpts ReviewPageOptions
}

// NewMockClient creates a mock client with an authenticated identity and no
// scripted pages.
func NewMockClient() *MockClient {
	return &MockClient{
		Login:         "octocat",
		AuthoredPages: make(map[string]*AuthoredPage),
		ReviewedPages: make(map[reviewedPageKey]*ReviewedPage),
	}
}

// Viewer implements the Client interface.
func (m *MockClient) Viewer(ctx context.Context) (string, error) {
	m.ViewerCalls++
	if m.ShouldFailAuth {
		return "", fmt.Errorf("identity query failed: %w", terrors.ErrTokenValidation)
	}
	if m.Error != nil {
		return "", m.Error
	}
	return m.Login, nil
}

// RepositoryName implements the Client interface.
func (m *MockClient) RepositoryName(ctx context.Context, owner, name string) (string, error) {
	m.RepoCalls++
	if m.ShouldFailNotFound {
		return "", fmt.Errorf("repository %s/%s: %w", owner, name, terrors.ErrRepoNotFound)
	}
	if m.Error != nil {
		return "", m.Error
	}
	return name, nil
}

// SearchAuthoredPRs implements the Client interface.
func (m *MockClient) SearchAuthoredPRs(ctx context.Context, query string, opts PageOptions) (*AuthoredPage, error) {
	m.SearchCalls++
	m.LastQuery = query
	m.LastPageOpts = opts

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Error != nil {
		return nil, m.Error
	}

	page, ok := m.AuthoredPages[opts.After]
	if !ok {
		return &AuthoredPage{}, nil
	}
	return page, nil
}

// SearchReviewedPRs implements the Client interface.
func (m *MockClient) SearchReviewedPRs(ctx context.Context, query string, opts ReviewPageOptions) (*ReviewedPage, error) {
	m.SearchCalls++
	m.LastQuery = query
	m.LastReviewOpts = opts

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Error != nil {
		return nil, m.Error
	}

	page, ok := m.ReviewedPages[reviewedPageKey{After: opts.After, ReviewsAfter: opts.ReviewsAfter}]
	if !ok {
		return &ReviewedPage{}, nil
	}
	return page, nil
}

// AddAuthoredPage scripts the authored page served for the given cursor.
func (m *MockClient) AddAuthoredPage(after string, page *AuthoredPage) {
	m.AuthoredPages[after] = page
}

// AddReviewedPage scripts the reviewed page served for the given outer and
// review cursors.
func (m *MockClient) AddReviewedPage(after, reviewsAfter string, page *ReviewedPage) {
	m.ReviewedPages[reviewedPageKey{After: after, ReviewsAfter: reviewsAfter}] = page
}
