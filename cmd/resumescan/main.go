// Package main implements command line tool printing github insights for profiles linked in a pdf résumé.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-zajac/gitinsight/internal/adapter/github"
	"github.com/m-zajac/gitinsight/internal/adapter/pdf"
	"github.com/m-zajac/gitinsight/internal/adapter/session"
	"github.com/m-zajac/gitinsight/internal/app"
	"github.com/m-zajac/gitinsight/internal/database"
	"github.com/sirupsen/logrus"
)

var (
	file     = flag.String("f", "", "Path to pdf résumé")
	token    = flag.String("token", os.Getenv("GITHUB_API_TOKEN"), "Github api token")
	repoSort = flag.String("sort", "stars", "Repositories sort: stars, updated or name")
	repoType = flag.String("type", "all", "Repositories type: all, sources, forks or archived")
	language = flag.String("lang", "", "Show only repositories with this language")
	query    = flag.String("q", "", "Show only repositories matching query")
	limit    = flag.Int("limit", app.DefaultRepoDisplayCount, "Max repositories per user")
	timeout  = flag.Duration("timeout", time.Minute, "Timeout of loading github data")
	verbose  = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()

	l := logrus.New()
	l.Out = os.Stderr
	l.Level = logrus.WarnLevel
	if *verbose {
		l.Level = logrus.DebugLevel
	}

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		l.Fatalf("reading file: %v", err)
	}

	f, err := newFilter()
	if err != nil {
		l.Fatal(err)
	}

	kv, err := database.NewMemoryKVStore(16)
	if err != nil {
		l.Fatal(err)
	}
	conf := app.DefaultAggregatorConfig()
	conf.Credential = *token
	service := app.NewService(
		pdf.NewExtractor(pdf.DefaultMaxSize, l),
		app.NewAggregator(
			github.NewClient(&http.Client{Timeout: 15 * time.Second}, github.DefaultAddress, *token),
			conf,
			l,
		),
		session.NewStore(kv, 0, l),
		app.ServiceConfig{AggregationTimeout: *timeout},
		l,
	)
	service.RunScheduler()
	defer service.Close()

	ctx := context.Background()
	sess, err := service.Upload(ctx, app.Document{
		Name:        filepath.Base(*file),
		ContentType: pdf.MIMEType,
		Data:        data,
	})
	if err != nil {
		l.Fatalf("processing résumé: %v", err)
	}
	fmt.Printf("Found %d links, %d users\n", len(sess.Links), len(sess.Usernames))

	ins, err := waitForInsights(ctx, service, sess.ID, f)
	if err != nil {
		l.Fatalf("loading insights: %v", err)
	}
	printInsights(ins)
}

func newFilter() (app.RepoFilter, error) {
	t, err := app.ParseRepoType(*repoType)
	if err != nil {
		return app.RepoFilter{}, err
	}
	s, err := app.ParseRepoSort(*repoSort)
	if err != nil {
		return app.RepoFilter{}, err
	}

	return app.RepoFilter{
		Query:    *query,
		Type:     t,
		Language: *language,
		Sort:     s,
		Limit:    *limit,
	}, nil
}

func waitForInsights(ctx context.Context, service *app.Service, id string, f app.RepoFilter) (*app.Insights, error) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		ins, err := service.Insights(ctx, id, f)
		if !app.IsScheduledForLaterError(err) {
			return ins, err
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func printInsights(ins *app.Insights) {
	if ins.Message != "" {
		fmt.Println(ins.Message)
	}
	for _, e := range ins.Errors {
		fmt.Printf("! %s %s: %s\n", e.Username, e.Field, e.Message)
	}

	for _, u := range ins.Users {
		fmt.Printf("\n== %s (@%s)\n", u.DisplayName, u.Username)
		if p := u.Profile; p != nil {
			fmt.Printf("   followers %s | following %s | public repos %s",
				app.HumanizeCount(p.Followers), app.HumanizeCount(p.Following), app.HumanizeCount(p.PublicRepos))
			if u.Contributions != nil {
				fmt.Printf(" | contributions %s", app.HumanizeCount(*u.Contributions))
			}
			fmt.Println()
			fmt.Printf("   %s | %s\n", orDash(p.Location), orDash(p.Company))
		}

		if len(u.LanguageShare) > 0 {
			shares := make([]string, 0, len(u.LanguageShare))
			for _, s := range u.LanguageShare {
				shares = append(shares, fmt.Sprintf("%s %d%%", s.Name, s.Percent))
			}
			fmt.Printf("   languages: %s\n", strings.Join(shares, ", "))
		}

		for _, e := range u.Events {
			fmt.Printf("   %-14s %-40s %s\n", e.Label, e.RepoName, e.Ago)
		}

		fmt.Printf("   repositories %d of %d\n", len(u.Repositories), u.TotalRepositories)
		fmt.Print("     Stars | Language   | Name\n")
		fmt.Print("   ----------------------------------\n")
		for _, r := range u.Repositories {
			fmt.Printf("   %7s | %-10s | %s\n", app.HumanizeCount(r.Stars), orDash(r.Language), r.Name)
		}
	}
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
