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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{
			name:     "direct token validation error",
			err:      ErrTokenValidation,
			sentinel: ErrTokenValidation,
			want:     true,
		},
		{
			name:     "wrapped token validation error",
			err:      fmt.Errorf("pre-flight check failed: %w", ErrTokenValidation),
			sentinel: ErrTokenValidation,
			want:     true,
		},
		{
			name:     "wrapped rate limit error",
			err:      fmt.Errorf("search failed: %w", ErrRateLimit),
			sentinel: ErrRateLimit,
			want:     true,
		},
		{
			name:     "different error type",
			err:      ErrRepoNotFound,
			sentinel: ErrTokenValidation,
			want:     false,
		},
		{
			name:     "wrapped roster error",
			err:      fmt.Errorf("entry 2: %w", ErrBadRoster),
			sentinel: ErrBadRoster,
			want:     true,
		},
		{
			name:     "nil error",
			err:      nil,
			sentinel: ErrUnknownUser,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.sentinel); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.sentinel, got, tt.want)
			}
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrTokenValidation,
		ErrRepoNotFound,
		ErrRateLimit,
		ErrBadRoster,
		ErrUnknownUser,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}
