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

// Package main implements the teamscope command-line interface.
// This tool gathers pull-request and code-review activity from GitHub for a
// roster of team members and renders per-person console reports or a CSV
// export of review activity.
//
// The CLI supports:
//   - Summarizing one member or the whole roster (summary subcommand)
//   - Exporting a member's reviews to CSV (reviews subcommand)
//   - Repository, date window, and roster selection via flags or config file
//   - GitHub token authentication via a configurable environment variable
//
// Usage:
//
//	teamscope summary [--user USERNAME] --repo <owner>/<repo> [flags]
//	teamscope reviews --user USERNAME --output reviews.csv [flags]
//
// Example:
//
//	export GITHUB_API_TOKEN=your_token
//	teamscope summary --repo acme/widgets --start-date 2024-07-01
//
// Exit codes:
//   - 0: Success
//   - 1: Any credential, repository, validation, or API error
package main
