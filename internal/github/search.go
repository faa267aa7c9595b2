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
	"fmt"
	"strings"
)

// BuildAuthoredQuery constructs a GitHub search expression matching pull
// requests authored by user in the given repository and created window.
// endDate is optional.
func BuildAuthoredQuery(repo, user, startDate, endDate string) string {
	parts := []string{
		"is:pr",
		fmt.Sprintf("repo:%s", repo),
		fmt.Sprintf("author:%s", user),
		fmt.Sprintf("created:>=%s", startDate),
	}
	if endDate != "" {
		parts = append(parts, fmt.Sprintf("created:<=%s", endDate))
	}
	return strings.Join(parts, " ")
}

// BuildReviewedQuery constructs a GitHub search expression matching pull
// requests the user reviewed, bounded by an updated window. The window keeps
// the nested review payloads manageable, so both bounds are required here.
func BuildReviewedQuery(repo, user, startDate, endDate string) string {
	parts := []string{
		fmt.Sprintf("repo:%s", repo),
		"is:pr",
		fmt.Sprintf("reviewed-by:%s", user),
		fmt.Sprintf("updated:>=%s", startDate),
		fmt.Sprintf("updated:<=%s", endDate),
	}
	return strings.Join(parts, " ")
}
