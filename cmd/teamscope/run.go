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
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/teamscope/internal/activity"
	"github.com/sirseerhq/teamscope/internal/config"
	"github.com/sirseerhq/teamscope/internal/github"
	"github.com/sirseerhq/teamscope/internal/log"
	"github.com/sirseerhq/teamscope/internal/roster"
)

const dateLayout = "2006-01-02"

// runOptions holds the flag values shared by both subcommands.
type runOptions struct {
	user       string
	repo       string
	startDate  string
	endDate    string
	teamFile   string
	configPath string
	verbose    bool
}

func addCommonFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.user, "user", "", "GitHub username of a single roster member")
	cmd.Flags().StringVar(&opts.repo, "repo", "", "Repository to analyze in <owner>/<repo> form")
	cmd.Flags().StringVar(&opts.startDate, "start-date", "", "Start of the analysis window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.endDate, "end-date", "", "End of the analysis window (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.teamFile, "team-file", "", "Path to the team roster YAML file")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a teamscope config file")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
}

// session is the fully validated, connected state both subcommands run from.
// Roster loading and user resolution happen before any network access, so a
// bad roster or unknown user never spends an API call.
type session struct {
	cfg       *config.Config
	fetcher   *activity.Fetcher
	members   []roster.Member
	startDate string
	endDate   string
}

// reviewEndDate returns the end bound used by the reviewed-by search, which
// requires a closed window. An unset end date means "up to today".
func (s *session) reviewEndDate() string {
	if s.endDate != "" {
		return s.endDate
	}
	return time.Now().Format(dateLayout)
}

func newSession(ctx context.Context, opts *runOptions) (*session, error) {
	log.Init(opts.verbose, os.Stderr)

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	repoArg := opts.repo
	if repoArg == "" {
		repoArg = cfg.Defaults.Repo
	}
	owner, name, err := parseRepository(repoArg)
	if err != nil {
		return nil, err
	}

	teamFile := opts.teamFile
	if teamFile == "" {
		teamFile = cfg.Defaults.TeamFile
	}
	members, err := roster.Load(teamFile)
	if err != nil {
		return nil, err
	}

	if opts.user != "" {
		member, err := roster.Find(members, opts.user)
		if err != nil {
			return nil, err
		}
		members = []roster.Member{member}
	}

	startDate := opts.startDate
	if startDate == "" {
		startDate = cfg.Defaults.StartDate
	}
	if err := validateDates(startDate, opts.endDate); err != nil {
		return nil, err
	}

	token := os.Getenv(cfg.GitHub.TokenEnv)
	if token == "" {
		return nil, fmt.Errorf("GitHub token not found: set the %s environment variable", cfg.GitHub.TokenEnv)
	}

	client := github.NewRetryClient(
		github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint),
		&github.RetryConfig{
			MaxRetries: cfg.Retry.MaxRetries,
			BaseDelay:  time.Duration(cfg.Retry.BaseDelaySeconds) * time.Second,
		})

	login, err := client.Viewer(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "GitHub token validated. Logged in as: %s\n", login)

	verified, err := client.RepositoryName(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Connected to repository: %s/%s\n", owner, verified)

	return &session{
		cfg:       cfg,
		fetcher:   activity.NewFetcher(client, owner+"/"+name, cfg.Pagination),
		members:   members,
		startDate: startDate,
		endDate:   opts.endDate,
	}, nil
}

// parseRepository parses an owner/repo string into its components.
func parseRepository(repoArg string) (owner, repo string, err error) {
	if repoArg == "" {
		return "", "", fmt.Errorf("no repository given: use --repo <owner>/<repo> or set one in the config file")
	}

	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

func validateDates(startDate, endDate string) error {
	if _, err := time.Parse(dateLayout, startDate); err != nil {
		return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startDate)
	}
	if endDate != "" {
		if _, err := time.Parse(dateLayout, endDate); err != nil {
			return fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", endDate)
		}
		if endDate < startDate {
			return fmt.Errorf("end date %s is before start date %s", endDate, startDate)
		}
	}
	return nil
}
