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

// Package paginate implements a generic cursor-based page walker for GraphQL
// connections. Call sites choose a page cap; hitting the cap truncates the
// result silently rather than failing, which is the accepted trade-off on
// very active repositories.
package paginate

import (
	"context"
	"fmt"
)

// PageInfo carries the pagination state returned by a page fetch.
type PageInfo struct {
	HasNextPage bool
	EndCursor   string
}

// WalkFunc fetches and processes one page. It receives the cursor for the
// page to fetch ("" for the first page) and returns the pagination state
// used to decide whether to continue.
type WalkFunc func(ctx context.Context, cursor string) (PageInfo, error)

// Walk repeatedly invokes fn with an advancing cursor until the connection
// reports no further pages or maxPages is reached, whichever comes first.
// A maxPages <= 0 walks the connection to exhaustion. A cursor that fails
// to advance is an error: retrying it would emit the same items forever.
func Walk(ctx context.Context, maxPages int, fn WalkFunc) error {
	cursor := ""
	for page := 0; maxPages <= 0 || page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := fn(ctx, cursor)
		if err != nil {
			return err
		}
		if !info.HasNextPage {
			return nil
		}
		if info.EndCursor == "" {
			return fmt.Errorf("pagination returned an empty cursor with more pages remaining")
		}
		if info.EndCursor == cursor {
			return fmt.Errorf("pagination cursor stalled at %q", info.EndCursor)
		}
		cursor = info.EndCursor
	}

	// Page cap reached: stop without error, accepting the truncation.
	return nil
}

// FetchFunc fetches one page of items along with its pagination state.
type FetchFunc[T any] func(ctx context.Context, cursor string) ([]T, PageInfo, error)

// Collect walks a connection with Walk and concatenates the items of every
// page in page order.
func Collect[T any](ctx context.Context, maxPages int, fetch FetchFunc[T]) ([]T, error) {
	var items []T
	err := Walk(ctx, maxPages, func(ctx context.Context, cursor string) (PageInfo, error) {
		pageItems, info, err := fetch(ctx, cursor)
		if err != nil {
			return PageInfo{}, err
		}
		items = append(items, pageItems...)
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
