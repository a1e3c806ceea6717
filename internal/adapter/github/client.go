package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/gitinsight/internal/app"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultAddress is the public github api address.
const DefaultAddress = "https://api.github.com"

const (
	apiVersion = "2022-11-28"

	reposPerPage  = 100
	eventsPerPage = 10

	contributionsQuery = `query($login:String!){ user(login:$login){ contributionsCollection{ contributionCalendar{ totalContributions }}}}`
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client returns details about github users and their repositories.
// This struct is an adapter for app.GithubClient.
type Client struct {
	doer      HTTPDoer
	address   string
	authToken string

	responseMaxSize int
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
// authToken is optional, without it contributions can't be fetched.
func NewClient(doer HTTPDoer, address string, authToken string) *Client {
	c := Client{
		doer:      doer,
		address:   address,
		authToken: authToken,

		responseMaxSize: 1024 * 1024 * 10,
	}

	return &c
}

// User returns profile of github user.
func (c *Client) User(ctx context.Context, login string) (*app.Profile, error) {
	if login == "" {
		return nil, app.InvalidRequestError("login cannot be empty")
	}

	var resp userResponse
	if err := c.get(ctx, "/users/"+url.PathEscape(login), nil, &resp); err != nil {
		return nil, err
	}

	return resp.ToProfile(), nil
}

// Repositories returns public repositories of github user, most recently updated first.
func (c *Client) Repositories(ctx context.Context, login string) ([]app.Repository, error) {
	if login == "" {
		return nil, app.InvalidRequestError("login cannot be empty")
	}

	v := make(url.Values)
	v.Set("per_page", strconv.Itoa(reposPerPage))
	v.Set("sort", "updated")

	var resp reposResponse
	if err := c.get(ctx, "/users/"+url.PathEscape(login)+"/repos", v, &resp); err != nil {
		return nil, err
	}

	return resp.ToRepositories(), nil
}

// Events returns recent public events of github user.
func (c *Client) Events(ctx context.Context, login string) ([]app.Event, error) {
	if login == "" {
		return nil, app.InvalidRequestError("login cannot be empty")
	}

	v := make(url.Values)
	v.Set("per_page", strconv.Itoa(eventsPerPage))

	var resp eventsResponse
	if err := c.get(ctx, "/users/"+url.PathEscape(login)+"/events/public", v, &resp); err != nil {
		return nil, err
	}

	return resp.ToEvents(), nil
}

// Languages returns language breakdown of a repository in bytes.
func (c *Client) Languages(ctx context.Context, owner string, repo string) (app.LanguageBytes, error) {
	if owner == "" {
		return nil, app.InvalidRequestError("repository owner cannot be empty")
	}
	if repo == "" {
		return nil, app.InvalidRequestError("repository name cannot be empty")
	}

	resp := make(app.LanguageBytes)
	path := fmt.Sprintf("/repos/%s/%s/languages", url.PathEscape(owner), url.PathEscape(repo))
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// TotalContributions returns number of contributions of github user in the last year.
// Github graphql api requires authentication, so it fails without token.
func (c *Client) TotalContributions(ctx context.Context, login string) (int, error) {
	if login == "" {
		return 0, app.InvalidRequestError("login cannot be empty")
	}
	if c.authToken == "" {
		return 0, errors.New("contributions require auth token")
	}

	reqBody, err := json.Marshal(graphqlRequest{
		Query:     contributionsQuery,
		Variables: map[string]string{"login": login},
	})
	if err != nil {
		return 0, fmt.Errorf("marshalling graphql request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.address+"/graphql", bytes.NewReader(reqBody))
	if err != nil {
		return 0, fmt.Errorf("creating http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	body, _, err := c.makeRequest(ctx, httpReq, c.responseMaxSize)
	if err != nil {
		return 0, requestError(err)
	}

	var resp contributionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("unmarshalling response: %w", err)
	}

	return resp.Total()
}

// RateLimitRemaining returns number of requests left in current rate limit window.
func (c *Client) RateLimitRemaining(ctx context.Context) (int, error) {
	var resp rateLimitResponse
	if err := c.get(ctx, "/rate_limit", nil, &resp); err != nil {
		return 0, err
	}

	return resp.Remaining()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst interface{}) error {
	u, err := url.Parse(c.address + path)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	httpReq, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("creating http request: %w", err)
	}

	body, _, err := c.makeRequest(ctx, httpReq, c.responseMaxSize)
	if err != nil {
		return requestError(err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("unmarshalling response: %w", err)
	}

	return nil
}

func (c *Client) makeRequest(ctx context.Context, req *http.Request, maxBytes int) ([]byte, int, error) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.doer.Do(req.WithContext(ctx))
	if err != nil {
		return nil, 0, fmt.Errorf("doing http request: %w", err)
	}
	// Always drain body before close to allow connection reuse.
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	if resp.StatusCode/100 > 3 {
		if checkRateLimitExceeded(resp.Header) {
			return nil, resp.StatusCode, StatusError{Code: resp.StatusCode, RateLimited: true}
		}
		return nil, resp.StatusCode, StatusError{Code: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading http response body: %w", err)
	}

	return b, resp.StatusCode, nil
}

// StatusError is returned for non successful http responses.
type StatusError struct {
	Code        int
	RateLimited bool
}

// Error implements error interface. Message has form "404 Not Found".
func (e StatusError) Error() string {
	msg := fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	if e.RateLimited {
		msg += ": rate limit exceeded"
	}
	return msg
}

// requestError keeps status errors unwrapped, their message is shown to users.
func requestError(err error) error {
	var se StatusError
	if errors.As(err, &se) {
		return se
	}
	return fmt.Errorf("making http request: %w", err)
}

func checkRateLimitExceeded(h http.Header) bool {
	if s := h.Get("X-RateLimit-Remaining"); s != "" {
		if limit, err := strconv.Atoi(s); err == nil && limit == 0 {
			return true
		}
	}
	return false
}
