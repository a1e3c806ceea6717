package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RepoType classifies repositories for filtering.
type RepoType string

// Repository types.
const (
	RepoTypeAll      RepoType = "all"
	RepoTypeSources  RepoType = "sources"
	RepoTypeForks    RepoType = "forks"
	RepoTypeArchived RepoType = "archived"
)

// RepoSort is a repository sort key.
type RepoSort string

// Sort keys.
const (
	SortByStars   RepoSort = "stars"
	SortByUpdated RepoSort = "updated"
	SortByName    RepoSort = "name"
)

// AllLanguages disables language filtering.
const AllLanguages = "All"

// DefaultRepoDisplayCount is the number of repositories left after filtering.
const DefaultRepoDisplayCount = 12

// MaxRepoDisplayCount is the highest accepted repository limit.
const MaxRepoDisplayCount = 100

// RepoFilter holds repository view parameters.
type RepoFilter struct {
	Query    string
	Type     RepoType
	Language string
	Sort     RepoSort
	// Limit caps the result. Zero means DefaultRepoDisplayCount.
	Limit int
}

// ParseRepoType parses repository type name. Empty string means all.
func ParseRepoType(s string) (RepoType, error) {
	switch t := RepoType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return RepoTypeAll, nil
	case RepoTypeAll, RepoTypeSources, RepoTypeForks, RepoTypeArchived:
		return t, nil
	default:
		return "", InvalidRequestError(fmt.Sprintf("invalid repository type %q", s))
	}
}

// ParseRepoSort parses sort key name. Empty string means stars.
func ParseRepoSort(s string) (RepoSort, error) {
	switch k := RepoSort(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByStars, nil
	case SortByStars, SortByUpdated, SortByName:
		return k, nil
	default:
		return "", InvalidRequestError(fmt.Sprintf("invalid sort key %q", s))
	}
}

// ParseRepoLimit parses repository limit. Empty string means DefaultRepoDisplayCount.
func ParseRepoLimit(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultRepoDisplayCount, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxRepoDisplayCount {
		return 0, InvalidRequestError(fmt.Sprintf("invalid limit %q, must be between 1 and %d", s, MaxRepoDisplayCount))
	}
	return n, nil
}

// FilterRepositories returns filtered and sorted copy of repos, capped to filter limit.
// Sorting is stable, so ties keep input order.
func FilterRepositories(repos []Repository, f RepoFilter) []Repository {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	result := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		if f.Language != "" && f.Language != AllLanguages {
			if r.Language == nil || *r.Language != f.Language {
				continue
			}
		}
		if !matchesType(r, f.Type) {
			continue
		}
		result = append(result, r)
	}

	switch f.Sort {
	case SortByStars, "":
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Stars > result[j].Stars
		})
	case SortByUpdated:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		})
	case SortByName:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Name < result[j].Name
		})
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultRepoDisplayCount
	}
	if len(result) > limit {
		result = result[:limit]
	}

	return result
}

// AvailableLanguages returns sorted distinct primary languages of repos.
func AvailableLanguages(repos []Repository) []string {
	set := make(map[string]bool)
	for _, r := range repos {
		if r.Language != nil && *r.Language != "" {
			set[*r.Language] = true
		}
	}

	langs := make([]string, 0, len(set))
	for l := range set {
		langs = append(langs, l)
	}
	sort.Strings(langs)

	return langs
}

func matchesQuery(r Repository, query string) bool {
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	return r.Description != nil && strings.Contains(strings.ToLower(*r.Description), query)
}

func matchesType(r Repository, t RepoType) bool {
	switch t {
	case RepoTypeSources:
		return !r.Fork && !r.Archived
	case RepoTypeForks:
		return r.Fork
	case RepoTypeArchived:
		return r.Archived
	default:
		return true
	}
}
