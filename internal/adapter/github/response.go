package github

import (
	"errors"
	"strings"
	"time"

	"github.com/m-zajac/gitinsight/internal/app"
)

type userResponse struct {
	Login       string  `json:"login"`
	Name        *string `json:"name"`
	AvatarURL   string  `json:"avatar_url"`
	HTMLURL     string  `json:"html_url"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	Company     *string `json:"company"`
	Blog        *string `json:"blog"`
	Email       *string `json:"email"`
	Twitter     *string `json:"twitter_username"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	PublicRepos int     `json:"public_repos"`
}

func (u userResponse) ToProfile() *app.Profile {
	return &app.Profile{
		Login:       u.Login,
		Name:        nonEmpty(u.Name),
		AvatarURL:   u.AvatarURL,
		HTMLURL:     u.HTMLURL,
		Bio:         nonEmpty(u.Bio),
		Location:    nonEmpty(u.Location),
		Company:     nonEmpty(u.Company),
		Blog:        nonEmpty(u.Blog),
		Email:       nonEmpty(u.Email),
		Twitter:     nonEmpty(u.Twitter),
		Followers:   u.Followers,
		Following:   u.Following,
		PublicRepos: u.PublicRepos,
	}
}

type reposResponse []struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description *string   `json:"description"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    *string   `json:"language"`
	UpdatedAt   time.Time `json:"updated_at"`
	Archived    bool      `json:"archived"`
	Fork        bool      `json:"fork"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

func (r reposResponse) ToRepositories() []app.Repository {
	rs := make([]app.Repository, 0, len(r))
	for _, el := range r {
		rs = append(rs, app.Repository{
			ID:          el.ID,
			Name:        el.Name,
			HTMLURL:     el.HTMLURL,
			Description: nonEmpty(el.Description),
			Stars:       el.Stars,
			Forks:       el.Forks,
			Language:    nonEmpty(el.Language),
			UpdatedAt:   el.UpdatedAt,
			Archived:    el.Archived,
			Fork:        el.Fork,
			OwnerLogin:  el.Owner.Login,
		})
	}

	return rs
}

type eventsResponse []struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
}

func (e eventsResponse) ToEvents() []app.Event {
	es := make([]app.Event, 0, len(e))
	for _, el := range e {
		es = append(es, app.Event{
			ID:        el.ID,
			Type:      el.Type,
			CreatedAt: el.CreatedAt,
			RepoName:  el.Repo.Name,
		})
	}

	return es
}

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type contributionsResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Total returns contributions count. Graphql errors are returned with status 200, so they're checked here.
func (c contributionsResponse) Total() (int, error) {
	if len(c.Errors) > 0 {
		msgs := make([]string, 0, len(c.Errors))
		for _, e := range c.Errors {
			msgs = append(msgs, e.Message)
		}
		return 0, errors.New("graphql: " + strings.Join(msgs, "; "))
	}
	if c.Data.User == nil {
		return 0, errors.New("graphql: user not found")
	}

	return c.Data.User.ContributionsCollection.ContributionCalendar.TotalContributions, nil
}

type rateLimitResponse struct {
	Rate *rateLimitResource `json:"rate"`
	// Older api versions report core limit only.
	Core *rateLimitResource `json:"core"`
}

type rateLimitResource struct {
	Remaining int `json:"remaining"`
}

func (r rateLimitResponse) Remaining() (int, error) {
	switch {
	case r.Rate != nil:
		return r.Rate.Remaining, nil
	case r.Core != nil:
		return r.Core.Remaining, nil
	}
	return 0, errors.New("rate limit missing in response")
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
