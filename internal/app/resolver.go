package app

import "regexp"

var usernameRegexp = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?github\.com/([^/\s?#]+)(?:[/?#]|$)`)

// ResolveUsernames maps github urls to usernames.
// First path segment is taken as is. Duplicates are dropped, order of first appearance is kept.
// Urls that don't point at github.com are skipped.
func ResolveUsernames(links []string) []string {
	seen := make(map[string]bool, len(links))
	usernames := make([]string, 0, len(links))
	for _, l := range links {
		m := usernameRegexp.FindStringSubmatch(l)
		if len(m) < 2 || m[1] == "" {
			continue
		}
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		usernames = append(usernames, m[1])
	}

	return usernames
}
