package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/gitinsight/internal/app"
	"github.com/sirupsen/logrus"
)

// UploadField is the multipart form field holding uploaded résumé.
const UploadField = "resume"

type sessionResponse struct {
	ID           string       `json:"id"`
	State        app.State    `json:"state"`
	DocumentName string       `json:"document_name,omitempty"`
	Progress     app.Progress `json:"progress"`
	Links        []string     `json:"links"`
	Usernames    []string     `json:"usernames"`
	Message      string       `json:"message,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func newSessionResponse(s *app.Session) sessionResponse {
	resp := sessionResponse{
		ID:           s.ID,
		State:        s.State,
		DocumentName: s.DocumentName,
		Progress:     s.Progress,
		Links:        s.Links,
		Usernames:    s.Usernames,
		Message:      s.Message,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if resp.Links == nil {
		resp.Links = []string{}
	}
	if resp.Usernames == nil {
		resp.Usernames = []string{}
	}

	return resp
}

type eventResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Label     string    `json:"label"`
	RepoName  string    `json:"repo_name"`
	CreatedAt time.Time `json:"created_at"`
	Ago       string    `json:"ago"`
}

type userResponse struct {
	Username          string              `json:"username"`
	DisplayName       string              `json:"display_name"`
	Profile           *app.Profile        `json:"profile"`
	Contributions     *int                `json:"contributions"`
	LanguageShare     []app.LanguageShare `json:"language_share"`
	Events            []eventResponse     `json:"events"`
	Repositories      []app.Repository    `json:"repositories"`
	TotalRepositories int                 `json:"total_repositories"`
}

type insightsResponse struct {
	SessionID   string           `json:"session_id"`
	State       app.State        `json:"state"`
	Message     string           `json:"message,omitempty"`
	Banner      string           `json:"banner,omitempty"`
	RateLimited bool             `json:"rate_limited"`
	Errors      []app.FieldError `json:"errors"`
	Languages   []string         `json:"languages"`
	Users       []userResponse   `json:"users"`
}

func newInsightsResponse(ins *app.Insights) insightsResponse {
	resp := insightsResponse{
		SessionID:   ins.SessionID,
		State:       ins.State,
		Message:     ins.Message,
		Banner:      ins.Banner,
		RateLimited: ins.RateLimited,
		Errors:      ins.Errors,
		Languages:   ins.Languages,
		Users:       make([]userResponse, 0, len(ins.Users)),
	}
	if resp.Errors == nil {
		resp.Errors = []app.FieldError{}
	}
	if resp.Languages == nil {
		resp.Languages = []string{}
	}

	for _, u := range ins.Users {
		events := make([]eventResponse, 0, len(u.Events))
		for _, e := range u.Events {
			events = append(events, eventResponse{
				ID:        e.ID,
				Type:      e.Type,
				Label:     e.Label,
				RepoName:  e.RepoName,
				CreatedAt: e.CreatedAt,
				Ago:       e.Ago,
			})
		}
		shares := u.LanguageShare
		if shares == nil {
			shares = []app.LanguageShare{}
		}
		repos := u.Repositories
		if repos == nil {
			repos = []app.Repository{}
		}

		resp.Users = append(resp.Users, userResponse{
			Username:          u.Username,
			DisplayName:       u.DisplayName,
			Profile:           u.Profile,
			Contributions:     u.Contributions,
			LanguageShare:     shares,
			Events:            events,
			Repositories:      repos,
			TotalRepositories: u.TotalRepositories,
		})
	}

	return resp
}

// NewUploadHandler creates handlerfunc accepting résumé upload as multipart form.
// Responds with 201 when aggregation is scheduled, or 200 when no github profiles were found.
func NewUploadHandler(service Service, maxSize int64, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Multipart envelope needs some space above file size.
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+1024*1024)

		file, header, err := r.FormFile(UploadField)
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				http.Error(w, "document is too big", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, fmt.Sprintf("missing %s file", UploadField), http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
		if err != nil {
			l.WithError(err).Warn("reading uploaded file")
			http.Error(w, "can't read uploaded file", http.StatusBadRequest)
			return
		}

		sess, err := service.Upload(r.Context(), app.Document{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
		if err != nil {
			writeError(w, err, l)
			return
		}

		status := http.StatusCreated
		if sess.State.Final() {
			status = http.StatusOK
		}
		writeJSON(w, status, newSessionResponse(sess))
	}
}

// NewSessionHandler creates handlerfunc returning session state.
func NewSessionHandler(
	getID func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := service.Session(r.Context(), getID(r))
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, http.StatusOK, newSessionResponse(sess))
	}
}

// NewRefreshHandler creates handlerfunc scheduling new aggregation for session.
func NewRefreshHandler(
	getID func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := service.Refresh(r.Context(), getID(r))
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, http.StatusAccepted, newSessionResponse(sess))
	}
}

// NewInsightsHandler creates handlerfunc returning aggregated insights with filtered repositories.
// While aggregation is running responds with 202 and current session state.
func NewInsightsHandler(
	getID func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := getID(r)
		q := r.URL.Query()

		repoType, err := app.ParseRepoType(q.Get("type"))
		if err != nil {
			writeError(w, err, l)
			return
		}
		repoSort, err := app.ParseRepoSort(q.Get("sort"))
		if err != nil {
			writeError(w, err, l)
			return
		}
		limit, err := app.ParseRepoLimit(q.Get("limit"))
		if err != nil {
			writeError(w, err, l)
			return
		}
		f := app.RepoFilter{
			Query:    q.Get("q"),
			Type:     repoType,
			Language: q.Get("language"),
			Sort:     repoSort,
			Limit:    limit,
		}

		ins, err := service.Insights(r.Context(), id, f)
		if app.IsScheduledForLaterError(err) {
			sess, err := service.Session(r.Context(), id)
			if err != nil {
				writeError(w, err, l)
				return
			}
			writeJSON(w, http.StatusAccepted, newSessionResponse(sess))
			return
		}
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, http.StatusOK, newInsightsResponse(ins))
	}
}

// NewHealthHandler creates handlerfunc for liveness checks.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = jsoniter.ConfigFastest.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error, l logrus.FieldLogger) {
	switch {
	case app.IsInvalidRequestError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case app.IsNotFoundError(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case app.IsTooManyRequestsError(err):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		l.WithError(err).Error("handling request")
		http.Error(w, "", http.StatusInternalServerError)
	}
}
