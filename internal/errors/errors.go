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

// Package errors defines sentinel errors for consistent error handling across
// the application. Callers classify failures with errors.Is against these
// sentinels instead of matching on message text.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit behavior
var (
	// ErrTokenValidation indicates the GitHub token failed the pre-flight
	// identity check. Never retried: a bad credential will not become good.
	ErrTokenValidation = errors.New("github token validation failed")

	// ErrRepoNotFound indicates the specified repository does not exist or is
	// not accessible with the current token. Never retried.
	ErrRepoNotFound = errors.New("repository not found")

	// ErrRateLimit indicates the GitHub API rate limit has been exceeded.
	// The only transient failure: retried with exponential backoff.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrBadRoster indicates the team roster file is malformed or contains
	// entries missing required fields.
	ErrBadRoster = errors.New("invalid team roster")

	// ErrUnknownUser indicates a requested username is not in the team roster.
	ErrUnknownUser = errors.New("user not found in team roster")
)
