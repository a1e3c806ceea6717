package app

import "time"

// Document is an uploaded résumé file.
type Document struct {
	Name string
	// ContentType declared by the uploader. Empty when unknown.
	ContentType string
	Data        []byte
}

// ProgressFunc receives document parsing progress.
type ProgressFunc func(done int, total int)

// Profile entity. Optional fields are nil when github doesn't return them.
type Profile struct {
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

// Repository entity.
type Repository struct {
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
	OwnerLogin  string    `json:"owner_login"`
}

// Event is a public activity entry.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	RepoName  string    `json:"repo_name"`
}

// LanguageBytes maps language name to number of bytes of code.
type LanguageBytes map[string]int64

// LanguageShare is a language with its rounded percentage share.
type LanguageShare struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

// Field names one independently fetched part of user insights.
type Field string

// Fetched fields.
const (
	FieldProfile       Field = "profile"
	FieldRepositories  Field = "repositories"
	FieldEvents        Field = "events"
	FieldContributions Field = "contributions"
	FieldLanguages     Field = "languages"
	FieldRateLimit     Field = "rate_limit"
)

// FieldError records a failed fetch. It never fails the whole report.
type FieldError struct {
	Username string `json:"username,omitempty"`
	Field    Field  `json:"field"`
	Message  string `json:"message"`
}

// UserInsights groups everything known about one github user.
// Every field except Username is optional.
type UserInsights struct {
	Username      string          `json:"username"`
	Profile       *Profile        `json:"profile"`
	Repositories  []Repository    `json:"repositories"`
	Events        []Event         `json:"events"`
	Contributions *int            `json:"contributions"`
	Languages     LanguageBytes   `json:"languages"`
	LanguageShare []LanguageShare `json:"language_share"`
}

// Report is the result of aggregating all users found in a document.
type Report struct {
	Users       []UserInsights `json:"users"`
	Banner      string         `json:"banner,omitempty"`
	RateLimited bool           `json:"rate_limited"`
	Errors      []FieldError   `json:"errors,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
