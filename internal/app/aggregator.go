package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m-zajac/gitinsight/internal/fanout"
	"github.com/sirupsen/logrus"
)

// RateLimitBanner is shown when github api quota is exhausted.
const RateLimitBanner = "GitHub rate limit reached. Set GITHUB_API_TOKEN to get higher limits."

// GithubClient returns details about github users and their repositories.
//
//go:generate mockgen -destination mock/app.go -package mock github.com/m-zajac/gitinsight/internal/app GithubClient,LinkExtractor,SessionStore
type GithubClient interface {
	User(ctx context.Context, login string) (*Profile, error)
	Repositories(ctx context.Context, login string) ([]Repository, error)
	Events(ctx context.Context, login string) ([]Event, error)
	Languages(ctx context.Context, owner string, repo string) (LanguageBytes, error)
	TotalContributions(ctx context.Context, login string) (int, error)
	RateLimitRemaining(ctx context.Context) (int, error)
}

// AggregatorConfig configures Aggregator.
type AggregatorConfig struct {
	// Credential is the github api token. Contribution totals are fetched only when it's set.
	Credential string
	// LanguageRepos - number of most starred repositories used for language breakdown.
	LanguageRepos int
	// DisplayEvents - number of most recent events kept per user.
	DisplayEvents int
	// LanguageShareCount - number of languages in share summary.
	LanguageShareCount int
	// Concurrency - max concurrent requests per fetch group. Zero means unlimited.
	Concurrency int
}

// DefaultAggregatorConfig returns config with default limits and no credential.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		LanguageRepos:      25,
		DisplayEvents:      5,
		LanguageShareCount: DefaultLanguageShareCount,
	}
}

// Aggregator fetches github data for many users at once.
// Every user and every field is fetched independently, so a single failure only empties that one field.
type Aggregator struct {
	client GithubClient
	conf   AggregatorConfig
	l      logrus.FieldLogger
	now    func() time.Time
}

// NewAggregator creates new Aggregator instance.
func NewAggregator(client GithubClient, conf AggregatorConfig, l logrus.FieldLogger) *Aggregator {
	def := DefaultAggregatorConfig()
	if conf.LanguageRepos <= 0 {
		conf.LanguageRepos = def.LanguageRepos
	}
	if conf.DisplayEvents <= 0 {
		conf.DisplayEvents = def.DisplayEvents
	}
	if conf.LanguageShareCount <= 0 {
		conf.LanguageShareCount = def.LanguageShareCount
	}

	return &Aggregator{
		client: client,
		conf:   conf,
		l:      l,
		now:    time.Now,
	}
}

// Aggregate fetches profiles, repositories, events, contributions and languages for given usernames.
// All fetch groups for all users run concurrently. Never returns nil.
func (a *Aggregator) Aggregate(ctx context.Context, usernames []string) *Report {
	n := len(usernames)

	var (
		profiles      []fanout.Result[*Profile]
		repos         []fanout.Result[[]Repository]
		events        []fanout.Result[[]Event]
		contributions []fanout.Result[int]
		languages     []fanout.Result[LanguageBytes]
		remaining     []fanout.Result[int]
	)

	// Language breakdown needs repositories, so language tasks wait for their user's repos.
	reposByUser := make([][]Repository, n)
	reposReady := make([]chan struct{}, n)
	for i := range reposReady {
		reposReady[i] = make(chan struct{})
	}

	var wg sync.WaitGroup
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() {
		profiles = fanout.Run(ctx, a.conf.Concurrency, perUser(usernames, a.client.User))
	})
	run(func() {
		tasks := make([]fanout.Task[[]Repository], n)
		for i, u := range usernames {
			i, u := i, u
			tasks[i] = func(ctx context.Context) ([]Repository, error) {
				defer close(reposReady[i])
				rs, err := a.client.Repositories(ctx, u)
				if err == nil {
					reposByUser[i] = rs
				}
				return rs, err
			}
		}
		repos = fanout.Run(ctx, a.conf.Concurrency, tasks)
	})
	run(func() {
		events = fanout.Run(ctx, a.conf.Concurrency, perUser(usernames, a.client.Events))
	})
	if a.conf.Credential != "" {
		run(func() {
			contributions = fanout.Run(ctx, a.conf.Concurrency, perUser(usernames, a.client.TotalContributions))
		})
	}
	run(func() {
		tasks := make([]fanout.Task[LanguageBytes], n)
		for i, u := range usernames {
			i, u := i, u
			tasks[i] = func(ctx context.Context) (LanguageBytes, error) {
				select {
				case <-reposReady[i]:
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				return a.userLanguages(ctx, u, reposByUser[i]), nil
			}
		}
		languages = fanout.Run(ctx, a.conf.Concurrency, tasks)
	})
	run(func() {
		remaining = fanout.Run(ctx, 1, []fanout.Task[int]{a.client.RateLimitRemaining})
	})

	wg.Wait()

	report := Report{
		Users:     make([]UserInsights, 0, n),
		CreatedAt: a.now(),
	}
	for i, u := range usernames {
		l := a.l.WithField("username", u)
		ui := UserInsights{
			Username:     u,
			Repositories: []Repository{},
			Events:       []Event{},
			Languages:    LanguageBytes{},
		}

		if err := profiles[i].Err; err != nil {
			l.WithError(err).Warn("fetching profile")
			report.addError(u, FieldProfile, err)
			if report.Banner == "" {
				report.Banner = fmt.Sprintf("GitHub error: %v (check rate limit or username).", err)
			}
		} else {
			ui.Profile = profiles[i].Value
		}

		if err := repos[i].Err; err != nil {
			l.WithError(err).Warn("fetching repositories")
			report.addError(u, FieldRepositories, err)
		} else if repos[i].Value != nil {
			ui.Repositories = repos[i].Value
		}

		if err := events[i].Err; err != nil {
			l.WithError(err).Warn("fetching events")
			report.addError(u, FieldEvents, err)
		} else if events[i].Value != nil {
			ui.Events = events[i].Value
			if len(ui.Events) > a.conf.DisplayEvents {
				ui.Events = ui.Events[:a.conf.DisplayEvents]
			}
		}

		// Contributions are optional: failures are reported as unknown value only.
		if contributions != nil {
			if err := contributions[i].Err; err != nil {
				l.WithError(err).Debug("fetching contributions")
			} else {
				total := contributions[i].Value
				ui.Contributions = &total
			}
		}

		if err := languages[i].Err; err != nil {
			l.WithError(err).Warn("fetching languages")
		} else if languages[i].Value != nil {
			ui.Languages = languages[i].Value
		}
		ui.LanguageShare = LanguageShares(ui.Languages, a.conf.LanguageShareCount)

		report.Users = append(report.Users, ui)
	}

	if err := remaining[0].Err; err != nil {
		a.l.WithError(err).Debug("checking rate limit")
	} else if remaining[0].Value == 0 {
		report.RateLimited = true
		report.Banner = RateLimitBanner
	}

	return &report
}

func (a *Aggregator) userLanguages(ctx context.Context, username string, repos []Repository) LanguageBytes {
	top := TopStarred(repos, a.conf.LanguageRepos)
	tasks := make([]fanout.Task[LanguageBytes], 0, len(top))
	for _, r := range top {
		owner := r.OwnerLogin
		if owner == "" {
			owner = username
		}
		name := r.Name
		tasks = append(tasks, func(ctx context.Context) (LanguageBytes, error) {
			return a.client.Languages(ctx, owner, name)
		})
	}

	merged := LanguageBytes{}
	for i, res := range fanout.Run(ctx, a.conf.Concurrency, tasks) {
		if res.Err != nil {
			a.l.WithError(res.Err).WithField("repo", top[i].Name).Debug("skipping repository languages")
			continue
		}
		MergeLanguages(merged, res.Value)
	}

	return merged
}

func (r *Report) addError(username string, field Field, err error) {
	r.Errors = append(r.Errors, FieldError{
		Username: username,
		Field:    field,
		Message:  err.Error(),
	})
}

func perUser[T any](usernames []string, fetch func(context.Context, string) (T, error)) []fanout.Task[T] {
	tasks := make([]fanout.Task[T], 0, len(usernames))
	for _, u := range usernames {
		u := u
		tasks = append(tasks, func(ctx context.Context) (T, error) {
			return fetch(ctx, u)
		})
	}
	return tasks
}
