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

// Package report renders member summaries to the console and exports review
// activity to CSV.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/sirseerhq/teamscope/internal/activity"
)

const timeLayout = "2006-01-02 15:04:05"

// Formatter writes human-readable activity reports. Color is applied only
// when the destination supports it.
type Formatter struct {
	w io.Writer
}

// NewFormatter creates a Formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Member renders the full report for one member summary.
func (f *Formatter) Member(s activity.TeamMemberSummary) {
	fmt.Fprintf(f.w, "\n%s\n", color.New(color.Bold).Sprintf(
		"=== Summary for %s (%s) ===", s.Name, s.GitHubUsername))

	fmt.Fprintf(f.w, "\nPR Activity:\n")
	fmt.Fprintf(f.w, "- Authored %d PRs\n", s.AuthoredPRs)
	fmt.Fprintf(f.w, "- Changed %d files (+%d/-%d)\n",
		s.TotalFilesChanged, s.TotalAdditions, s.TotalDeletions)
	fmt.Fprintf(f.w, "- Gave %d reviews with %d comments\n",
		s.ReviewsGiven, s.TotalReviewComments)

	fmt.Fprintf(f.w, "\nTop 10 Most Discussed PRs Authored:\n")
	for _, pr := range s.TopPRs {
		fmt.Fprintf(f.w, "• %s\n", strings.TrimSpace(pr.Title))
		fmt.Fprintf(f.w, "  %s\n", pr.URL)
		fmt.Fprintf(f.w, "  %d comments, %d reviews\n", pr.CommentCount, pr.ReviewCount)
	}

	fmt.Fprintf(f.w, "\nTop 10 Most Engaged Reviews:\n")
	for _, pr := range s.MostEngagedReviews {
		fmt.Fprintf(f.w, "• %s\n", strings.TrimSpace(pr.Title))
		fmt.Fprintf(f.w, "  %s\n", pr.URL)
		fmt.Fprintf(f.w, "  %d comments across %d reviews\n", pr.TotalComments, len(pr.Reviews))
		for _, review := range pr.Reviews {
			fmt.Fprintf(f.w, "    Review on %s - %s\n",
				review.CreatedAt.Format(timeLayout), stateColored(review.State))
			if body := strings.TrimSpace(review.Body); body != "" {
				fmt.Fprintf(f.w, "    Review comment: %s\n", body)
			}
			if len(review.Comments) > 0 {
				fmt.Fprintf(f.w, "    Detailed comments:\n")
				for _, c := range review.Comments {
					fmt.Fprintf(f.w, "      [%s]\n", c.CreatedAt.Format(timeLayout))
					fmt.Fprintf(f.w, "      %s\n", strings.TrimSpace(c.Body))
				}
				fmt.Fprintln(f.w)
			}
		}
	}

	fmt.Fprintf(f.w, "\nAll Authored PRs:\n")
	for _, pr := range s.AllPRs {
		fmt.Fprintf(f.w, "• %s\n", strings.TrimSpace(pr.Title))
		fmt.Fprintf(f.w, "  %s\n", pr.URL)
	}

	// PRs whose reviews carry no commentary stay in the counts above but
	// are omitted here.
	fmt.Fprintf(f.w, "\nAll Reviewed PRs with Comments:\n")
	for _, pr := range s.AllReviewedPRs {
		if !pr.HasCommentary() {
			continue
		}
		fmt.Fprintf(f.w, "\n• %s\n", strings.TrimSpace(pr.Title))
		fmt.Fprintf(f.w, "  %s\n", pr.URL)
		for _, review := range pr.Reviews {
			if !review.HasCommentary() {
				continue
			}
			fmt.Fprintf(f.w, "  Review on %s - %s\n",
				review.CreatedAt.Format(timeLayout), stateColored(review.State))
			if body := strings.TrimSpace(review.Body); body != "" {
				fmt.Fprintf(f.w, "    %s\n", body)
			}
			for _, c := range review.Comments {
				fmt.Fprintf(f.w, "    [%s]\n", c.CreatedAt.Format(timeLayout))
				fmt.Fprintf(f.w, "    %s\n", strings.TrimSpace(c.Body))
			}
		}
	}
}

// TeamTotals renders the aggregate statistics across a batch of summaries.
func (f *Formatter) TeamTotals(summaries []activity.TeamMemberSummary) {
	var prs, reviews, files int
	for _, s := range summaries {
		prs += s.AuthoredPRs
		reviews += s.ReviewsGiven
		files += s.TotalFilesChanged
	}

	fmt.Fprintf(f.w, "\n%s\n", color.New(color.Bold).Sprint("=== Team-wide Statistics ==="))
	fmt.Fprintf(f.w, "Total PRs: %d\n", prs)
	fmt.Fprintf(f.w, "Total Reviews: %d\n", reviews)
	fmt.Fprintf(f.w, "Total Files Changed: %d\n", files)
}

func stateColored(state string) string {
	switch state {
	case "APPROVED":
		return color.GreenString(state)
	case "CHANGES_REQUESTED":
		return color.YellowString(state)
	case "DISMISSED":
		return color.RedString(state)
	default:
		return state
	}
}
