package app

import "time"

// Insights is a filtered view of a session report.
type Insights struct {
	SessionID   string
	State       State
	Message     string
	Banner      string
	RateLimited bool
	Errors      []FieldError
	// Languages lists primary languages of all users repositories, for filtering.
	Languages []string
	Users     []UserView
}

// UserView is a display ready user summary.
type UserView struct {
	Username          string
	DisplayName       string
	Profile           *Profile
	Contributions     *int
	LanguageShare     []LanguageShare
	Events            []EventView
	Repositories      []Repository
	TotalRepositories int
}

// EventView is an event with display label.
type EventView struct {
	Event
	Label string
	Ago   string
}

// NewInsights builds view of session. Repositories of each user are filtered with f.
func NewInsights(sess *Session, f RepoFilter, now time.Time) *Insights {
	ins := Insights{
		SessionID: sess.ID,
		State:     sess.State,
		Message:   sess.Message,
		Languages: []string{},
		Users:     []UserView{},
	}
	if sess.Report == nil {
		return &ins
	}

	r := sess.Report
	ins.Banner = r.Banner
	ins.RateLimited = r.RateLimited
	ins.Errors = r.Errors

	var all []Repository
	for _, u := range r.Users {
		all = append(all, u.Repositories...)

		events := make([]EventView, 0, len(u.Events))
		for _, e := range u.Events {
			events = append(events, EventView{
				Event: e,
				Label: EventLabel(e.Type),
				Ago:   TimeAgo(e.CreatedAt, now),
			})
		}

		ins.Users = append(ins.Users, UserView{
			Username:          u.Username,
			DisplayName:       DisplayName(u.Username, u.Profile),
			Profile:           u.Profile,
			Contributions:     u.Contributions,
			LanguageShare:     u.LanguageShare,
			Events:            events,
			Repositories:      FilterRepositories(u.Repositories, f),
			TotalRepositories: len(u.Repositories),
		})
	}
	ins.Languages = AvailableLanguages(all)

	return &ins
}
