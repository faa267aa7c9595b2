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

	"github.com/sirseerhq/teamscope/internal/report"
)

func newReviewsCommand() *cobra.Command {
	opts := &runOptions{}
	var outputFile string

	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Export one member's review activity to CSV",
		Long: `Reviews fetches every review the given roster member left in the analysis
window and writes it to a CSV file, one row per review body and one row per
review comment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReviews(cmd.Context(), opts, outputFile)
		},
	}

	addCommonFlags(cmd, opts)
	cmd.Flags().StringVar(&outputFile, "output", "", "Path of the CSV file to write")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runReviews(ctx context.Context, opts *runOptions, outputFile string) error {
	sess, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	member := sess.members[0]
	fmt.Fprintf(os.Stderr, "Fetching reviews for %s...\n", member.GitHub)

	reviews, err := sess.fetcher.FetchUserReviews(ctx, member.GitHub, sess.startDate, sess.reviewEndDate())
	if err != nil {
		return fmt.Errorf("fetching reviews for %s: %w", member.GitHub, err)
	}

	total := 0
	for _, pr := range reviews {
		total += len(pr.Reviews)
	}
	fmt.Fprintf(os.Stderr, "Exporting %d reviews to %s\n", total, outputFile)

	if err := report.ExportReviewsCSV(outputFile, reviews); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Export complete")
	return nil
}
