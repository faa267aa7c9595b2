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

// Package roster loads the team roster: the configured list of members whose
// GitHub activity is analyzed. The GitHub username is the join key between
// the roster and API data and must be unique within the roster.
package roster

import (
	"fmt"
	"os"
	"strings"

	terrors "github.com/sirseerhq/teamscope/internal/errors"
	"gopkg.in/yaml.v3"
)

// Member is one roster entry. Both fields are required.
type Member struct {
	Name   string `yaml:"name"`
	GitHub string `yaml:"github"`
}

type teamFile struct {
	Team []Member `yaml:"team"`
}

// Load reads and validates a roster file. Malformed or incomplete entries are
// a fatal configuration error at load time, before any API interaction.
func Load(path string) ([]Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read team file %s: %w", path, err)
	}

	var tf teamFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse team file %s: %w", path, err)
	}

	if len(tf.Team) == 0 {
		return nil, fmt.Errorf("team file %s has no team entries: %w", path, terrors.ErrBadRoster)
	}

	seen := make(map[string]bool, len(tf.Team))
	members := make([]Member, 0, len(tf.Team))
	for i, m := range tf.Team {
		m.Name = strings.TrimSpace(m.Name)
		m.GitHub = strings.TrimSpace(m.GitHub)
		if m.Name == "" {
			return nil, fmt.Errorf("team entry %d is missing the name field: %w", i+1, terrors.ErrBadRoster)
		}
		if m.GitHub == "" {
			return nil, fmt.Errorf("team entry %d (%s) is missing the github field: %w", i+1, m.Name, terrors.ErrBadRoster)
		}
		if seen[m.GitHub] {
			return nil, fmt.Errorf("duplicate github username %q in team file: %w", m.GitHub, terrors.ErrBadRoster)
		}
		seen[m.GitHub] = true
		members = append(members, m)
	}

	return members, nil
}

// Find returns the member with the given GitHub username.
func Find(members []Member, githubUsername string) (Member, error) {
	for _, m := range members {
		if m.GitHub == githubUsername {
			return m, nil
		}
	}
	return Member{}, fmt.Errorf("user %s: %w", githubUsername, terrors.ErrUnknownUser)
}
