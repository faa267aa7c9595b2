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

package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sirseerhq/teamscope/internal/activity"
	"github.com/sirseerhq/teamscope/internal/github"
)

func sampleSummary() activity.TeamMemberSummary {
	at := time.Date(2024, 8, 1, 9, 30, 0, 0, time.UTC)
	commented := &activity.PRWithReviews{
		Title: "  add retry hooks  ",
		URL:   "https://example.test/pr/2",
		Reviews: []activity.Review{{
			State:     "CHANGES_REQUESTED",
			CreatedAt: at,
			Body:      "  please split this up  ",
			Comments:  []activity.Comment{{Body: " inline nit ", CreatedAt: at}},
		}},
		TotalComments: 1,
	}
	silent := &activity.PRWithReviews{
		Title:   "bump deps",
		URL:     "https://example.test/pr/3",
		Reviews: []activity.Review{{State: "APPROVED", CreatedAt: at, Body: "  "}},
	}

	prs := []github.PullRequest{{
		Title: "  fix pagination  ", URL: "https://example.test/pr/1",
		Additions: 12, Deletions: 4, ChangedFiles: 2,
		CommentCount: 3, ReviewCount: 1,
	}}

	return activity.TeamMemberSummary{
		Name:                "Alice Adams",
		GitHubUsername:      "alice",
		AuthoredPRs:         1,
		TotalAdditions:      12,
		TotalDeletions:      4,
		TotalFilesChanged:   2,
		ReviewsGiven:        2,
		TotalReviewComments: 1,
		TopPRs:              prs,
		MostEngagedReviews:  []*activity.PRWithReviews{commented},
		AllPRs:              prs,
		AllReviewedPRs:      []*activity.PRWithReviews{commented, silent},
	}
}

func TestFormatter_MemberReport(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf).Member(sampleSummary())
	out := buf.String()

	assert.Contains(t, out, "=== Summary for Alice Adams (alice) ===")
	assert.Contains(t, out, "- Authored 1 PRs")
	assert.Contains(t, out, "- Changed 2 files (+12/-4)")
	assert.Contains(t, out, "- Gave 2 reviews with 1 comments")
	assert.Contains(t, out, "• fix pagination", "titles are trimmed")
	assert.Contains(t, out, "3 comments, 1 reviews")
	assert.Contains(t, out, "Review on 2024-08-01 09:30:00")
	assert.Contains(t, out, "Review comment: please split this up")
	assert.Contains(t, out, "inline nit")
}

func TestFormatter_OmitsSilentReviewsFromFinalSection(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf).Member(sampleSummary())
	out := buf.String()

	idx := bytes.Index(buf.Bytes(), []byte("All Reviewed PRs with Comments:"))
	assert.GreaterOrEqual(t, idx, 0)
	tail := out[idx:]

	assert.Contains(t, tail, "add retry hooks")
	assert.NotContains(t, tail, "bump deps", "reviews with no commentary are omitted")
}

func TestFormatter_TeamTotals(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf).TeamTotals([]activity.TeamMemberSummary{
		{AuthoredPRs: 2, ReviewsGiven: 3, TotalFilesChanged: 5},
		{AuthoredPRs: 1, ReviewsGiven: 0, TotalFilesChanged: 4},
	})
	out := buf.String()

	assert.Contains(t, out, "=== Team-wide Statistics ===")
	assert.Contains(t, out, "Total PRs: 3")
	assert.Contains(t, out, "Total Reviews: 3")
	assert.Contains(t, out, "Total Files Changed: 9")
}
