package app

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// DefaultLanguageShareCount is the number of languages shown in summary.
const DefaultLanguageShareCount = 6

// LanguageShares returns up to limit languages ordered by bytes, with rounded percentages of total.
func LanguageShares(langs LanguageBytes, limit int) []LanguageShare {
	var total int64
	names := make([]string, 0, len(langs))
	for name, b := range langs {
		total += b
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if langs[names[i]] != langs[names[j]] {
			return langs[names[i]] > langs[names[j]]
		}
		return names[i] < names[j]
	})
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	shares := make([]LanguageShare, 0, len(names))
	for _, name := range names {
		var pct int
		if total > 0 {
			pct = int(math.Round(float64(langs[name]) / float64(total) * 100))
		}
		shares = append(shares, LanguageShare{Name: name, Percent: pct})
	}

	return shares
}

// MergeLanguages adds byte counts from src into dst.
func MergeLanguages(dst LanguageBytes, src LanguageBytes) {
	for k, v := range src {
		dst[k] += v
	}
}

// TopStarred returns copy of n most starred repositories.
func TopStarred(repos []Repository, n int) []Repository {
	top := make([]Repository, len(repos))
	copy(top, repos)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Stars > top[j].Stars
	})
	if len(top) > n {
		top = top[:n]
	}

	return top
}

// EventLabel returns short human readable label for github event type.
func EventLabel(eventType string) string {
	label := strings.TrimSuffix(eventType, "Event")
	switch label {
	case "Push":
		return "Pushed"
	case "Create":
		return "Created"
	case "PullRequest":
		return "Pull Request"
	case "Issues":
		return "Issue"
	}

	return label
}

var timeAgoSteps = []struct {
	size float64
	unit string
}{
	{60, "s"},
	{60, "m"},
	{24, "h"},
	{7, "d"},
	{4.35, "w"},
	{12, "mo"},
	{math.Inf(1), "y"},
}

// TimeAgo formats distance between t and now, e.g. "3h ago".
func TimeAgo(t time.Time, now time.Time) string {
	v := math.Floor(now.Sub(t).Seconds())
	if v < 1 {
		v = 1
	}
	unit := "s"
	for _, step := range timeAgoSteps {
		unit = step.unit
		if v < step.size {
			break
		}
		v = math.Floor(v / step.size)
	}

	return fmt.Sprintf("%d%s ago", int64(v), unit)
}

// HumanizeCount formats counts above 999 as thousands, e.g. 1.2k.
func HumanizeCount(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

// DisplayName returns best available name for user.
func DisplayName(username string, p *Profile) string {
	if p != nil {
		if p.Name != nil && *p.Name != "" {
			return *p.Name
		}
		if p.Login != "" {
			return p.Login
		}
	}
	return username
}
