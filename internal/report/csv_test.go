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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/teamscope/internal/activity"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportReviewsCSV_RowShape(t *testing.T) {
	at := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	reviews := []*activity.PRWithReviews{{
		Title: "feature", URL: "https://example.test/pr/1",
		Reviews: []activity.Review{
			{
				State:     "COMMENTED",
				CreatedAt: at,
				Body:      "  overall looks fine  ",
				Comments: []activity.Comment{
					{Body: "nit one", CreatedAt: at.Add(time.Minute)},
					{Body: "nit two", CreatedAt: at.Add(2 * time.Minute)},
				},
			},
			{State: "APPROVED", CreatedAt: at, Body: "   "},
		},
	}}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportReviewsCSV(path, reviews))

	records := readCSV(t, path)
	require.Len(t, records, 4, "header + 1 review row + 2 comment rows; empty review emits nothing")

	assert.Equal(t, []string{
		"pr_url", "pr_title", "review_date", "review_state",
		"review_body", "comment_date", "comment_body",
	}, records[0])

	reviewRow := records[1]
	assert.Equal(t, "https://example.test/pr/1", reviewRow[0])
	assert.Equal(t, "overall looks fine", reviewRow[4], "body is trimmed")
	assert.Empty(t, reviewRow[5], "review rows leave comment columns empty")
	assert.Empty(t, reviewRow[6])

	commentRow := records[2]
	assert.Empty(t, commentRow[4], "comment rows leave the review body empty")
	assert.Equal(t, "nit one", commentRow[6])
	assert.Equal(t, at.Format(time.RFC3339), commentRow[2])
	assert.Equal(t, at.Add(time.Minute).Format(time.RFC3339), commentRow[5])
}

func TestExportReviewsCSV_CreatesOutputDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")
	require.NoError(t, ExportReviewsCSV(path, nil))

	records := readCSV(t, path)
	require.Len(t, records, 1, "header only for empty input")
}

func TestExportReviewsCSV_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	// The output path collides with an existing directory.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "out.csv"), 0o755))

	err := ExportReviewsCSV(filepath.Join(dir, "out.csv"), nil)
	require.Error(t, err)
}
