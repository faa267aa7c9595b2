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

// Package github implements the GitHub GraphQL API client used to gather
// pull-request and code-review activity.
//
// The package exposes a Client interface with two pre-flight operations
// (token validation and repository verification, never retried) and two
// paginated search operations (authored PRs and reviewed PRs). GraphQLClient
// is the real implementation built on shurcooL/graphql; RetryClient decorates
// it with exponential backoff on rate limits, the single transient failure
// shape this tool tolerates.
//
// Errors are classified by internal/giterror and surfaced as the sentinel
// errors of internal/errors so callers can branch with errors.Is.
package github
