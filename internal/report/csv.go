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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirseerhq/teamscope/internal/activity"
)

var csvHeader = []string{
	"pr_url",
	"pr_title",
	"review_date",
	"review_state",
	"review_body",
	"comment_date",
	"comment_body",
}

// ExportReviewsCSV writes review activity to path as CSV. Each review with a
// non-empty body produces one review-level row, and each of its comments
// produces one comment-level row; a review with an empty body and no comments
// produces nothing. The parent directory is created if absent; any write
// failure is returned to the caller as fatal.
func ExportReviewsCSV(path string, reviews []*activity.PRWithReviews) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, pr := range reviews {
		for _, review := range pr.Reviews {
			reviewDate := review.CreatedAt.Format(time.RFC3339)

			if body := strings.TrimSpace(review.Body); body != "" {
				row := []string{pr.URL, pr.Title, reviewDate, review.State, body, "", ""}
				if err := w.Write(row); err != nil {
					return fmt.Errorf("writing csv row: %w", err)
				}
			}

			for _, c := range review.Comments {
				row := []string{
					pr.URL, pr.Title, reviewDate, review.State, "",
					c.CreatedAt.Format(time.RFC3339), strings.TrimSpace(c.Body),
				}
				if err := w.Write(row); err != nil {
					return fmt.Errorf("writing csv row: %w", err)
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
