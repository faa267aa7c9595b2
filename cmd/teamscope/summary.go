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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/teamscope/internal/activity"
	"github.com/sirseerhq/teamscope/internal/report"
)

func newSummaryCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print activity summaries for roster members",
		Long: `Summary analyzes pull-request and review activity for every roster member
(or a single member with --user) and prints a console report per member,
followed by aggregate team totals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), opts)
		},
	}

	addCommonFlags(cmd, opts)
	return cmd
}

func runSummary(ctx context.Context, opts *runOptions) error {
	sess, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	formatter := report.NewFormatter(os.Stdout)
	summaries := make([]activity.TeamMemberSummary, 0, len(sess.members))

	for _, member := range sess.members {
		fmt.Fprintf(os.Stderr, "\nProcessing data for %s (%s)\n", member.Name, member.GitHub)

		prs, err := sess.fetcher.FetchUserPRs(ctx, member.GitHub, sess.startDate, sess.endDate)
		if err != nil {
			return fmt.Errorf("fetching pull requests for %s: %w", member.GitHub, err)
		}
		reviews, err := sess.fetcher.FetchUserReviews(ctx, member.GitHub, sess.startDate, sess.reviewEndDate())
		if err != nil {
			return fmt.Errorf("fetching reviews for %s: %w", member.GitHub, err)
		}

		summary := activity.Summarize(member, prs, reviews)
		formatter.Member(summary)
		summaries = append(summaries, summary)
	}

	formatter.TeamTotals(summaries)
	return nil
}
