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
	"fmt"
	"sort"

	"github.com/sirseerhq/teamscope/internal/github"
	"github.com/sirseerhq/teamscope/internal/log"
	"github.com/sirseerhq/teamscope/internal/roster"
)

// topN is the length cap on the ranked lists in a summary.
const topN = 10

// Summarize aggregates one member's fetched activity into a summary.
// Aggregation never fails the run: if it panics on unexpected data, the
// result degrades to a minimal summary that still carries the raw activity.
func Summarize(member roster.Member, prs []github.PullRequest, reviews []*PRWithReviews) TeamMemberSummary {
	summary, err := summarize(member, prs, reviews)
	if err != nil {
		log.Error("summarizing activity failed, falling back to raw data",
			"user", member.GitHub, "error", err)
		return TeamMemberSummary{
			Name:           member.Name,
			GitHubUsername: member.GitHub,
			AllPRs:         prs,
			AllReviewedPRs: reviews,
		}
	}
	return summary
}

func summarize(member roster.Member, prs []github.PullRequest, reviews []*PRWithReviews) (summary TeamMemberSummary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during aggregation: %v", r)
		}
	}()

	summary = TeamMemberSummary{
		Name:           member.Name,
		GitHubUsername: member.GitHub,
		AuthoredPRs:    len(prs),
		AllPRs:         prs,
		AllReviewedPRs: reviews,
	}

	for _, pr := range prs {
		summary.TotalAdditions += pr.Additions
		summary.TotalDeletions += pr.Deletions
		summary.TotalFilesChanged += pr.ChangedFiles
	}

	for _, pr := range reviews {
		summary.ReviewsGiven += len(pr.Reviews)
		summary.TotalReviewComments += pr.TotalComments
	}

	summary.TopPRs = topAuthoredPRs(prs)
	summary.MostEngagedReviews = topReviewedPRs(reviews)

	return summary, nil
}

// topAuthoredPRs ranks authored PRs by discussion volume. The sort is
// stable: PRs with equal scores keep their fetch order.
func topAuthoredPRs(prs []github.PullRequest) []github.PullRequest {
	ranked := make([]github.PullRequest, len(prs))
	copy(ranked, prs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return discussionScore(ranked[i]) > discussionScore(ranked[j])
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func discussionScore(pr github.PullRequest) int {
	return pr.CommentCount + pr.ReviewCount
}

// topReviewedPRs ranks reviewed PRs by total comments left, stably.
func topReviewedPRs(reviews []*PRWithReviews) []*PRWithReviews {
	ranked := make([]*PRWithReviews, len(reviews))
	copy(ranked, reviews)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalComments > ranked[j].TotalComments
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
