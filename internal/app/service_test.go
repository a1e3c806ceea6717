package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/gitinsight/internal/app"
	"github.com/m-zajac/gitinsight/internal/app/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceUpload(t *testing.T) {
	t.Parallel()

	doc := app.Document{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}

	tests := []struct {
		name         string
		setupMock    func(*mock.MockLinkExtractor, *mock.MockSessionStore)
		wantState    app.State
		wantMsg      string
		wantProgress app.Progress
		wantErr      func(error) bool
	}{
		{
			name: "invalid document",
			setupMock: func(e *mock.MockLinkExtractor, s *mock.MockSessionStore) {
				e.EXPECT().
					Extract(gomock.Any(), doc, gomock.Any()).
					Return(nil, app.InvalidRequestError("not a pdf"))
			},
			wantErr: app.IsInvalidRequestError,
		},
		{
			name: "extraction failure",
			setupMock: func(e *mock.MockLinkExtractor, s *mock.MockSessionStore) {
				e.EXPECT().
					Extract(gomock.Any(), doc, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ app.Document, progress app.ProgressFunc) ([]string, error) {
						progress(1, 3)
						return nil, errors.New("broken page 2")
					})
				s.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, sess *app.Session) error {
						assert.Equal(t, app.StateFailed, sess.State)
						assert.Equal(t, "Failed to process PDF", sess.Message)
						assert.Equal(t, app.Progress{Pages: 1, TotalPages: 3}, sess.Progress)
						return nil
					})
			},
			wantErr: func(err error) bool { return err != nil && !app.IsInvalidRequestError(err) },
		},
		{
			name: "no links",
			setupMock: func(e *mock.MockLinkExtractor, s *mock.MockSessionStore) {
				e.EXPECT().
					Extract(gomock.Any(), doc, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ app.Document, progress app.ProgressFunc) ([]string, error) {
						progress(1, 2)
						progress(2, 2)
						return []string{}, nil
					})
				s.EXPECT().SaveLinks(gomock.Any(), gomock.Any(), []string{}).Return(nil)
				s.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantState:    app.StateEmpty,
			wantMsg:      app.NoLinksMessage,
			wantProgress: app.Progress{Pages: 2, TotalPages: 2},
		},
		{
			name: "links without usernames",
			setupMock: func(e *mock.MockLinkExtractor, s *mock.MockSessionStore) {
				links := []string{"https://github.com/"}
				e.EXPECT().Extract(gomock.Any(), doc, gomock.Any()).Return(links, nil)
				s.EXPECT().SaveLinks(gomock.Any(), gomock.Any(), links).Return(nil)
				s.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantState: app.StateEmpty,
			wantMsg:   app.NoLinksMessage,
		},
		{
			name: "saving links fails",
			setupMock: func(e *mock.MockLinkExtractor, s *mock.MockSessionStore) {
				e.EXPECT().Extract(gomock.Any(), doc, gomock.Any()).Return([]string{"https://github.com/alice"}, nil)
				s.EXPECT().SaveLinks(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: func(err error) bool { return err != nil },
		},
		{
			name: "aggregation scheduled",
			setupMock: func(e *mock.MockLinkExtractor, s *mock.MockSessionStore) {
				links := []string{"https://github.com/alice", "https://github.com/Alice/repo", "https://github.com/bob"}
				e.EXPECT().Extract(gomock.Any(), doc, gomock.Any()).Return(links, nil)
				s.EXPECT().SaveLinks(gomock.Any(), gomock.Any(), links).Return(nil)
				s.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantState: app.StateAggregating,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			extractor := mock.NewMockLinkExtractor(ctrl)
			store := mock.NewMockSessionStore(ctrl)
			tt.setupMock(extractor, store)

			aggregator := app.NewAggregator(mock.NewMockGithubClient(ctrl), app.DefaultAggregatorConfig(), newTestLogger())
			s := app.NewService(extractor, aggregator, store, app.ServiceConfig{}, newTestLogger())

			sess, err := s.Upload(context.Background(), doc)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Nil(t, sess)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, sess)
			assert.Equal(t, tt.wantState, sess.State)
			assert.Equal(t, tt.wantMsg, sess.Message)
			assert.Equal(t, tt.wantProgress, sess.Progress)
			assert.Equal(t, "cv.pdf", sess.DocumentName)
		})
	}
}

func TestServiceUploadQueueFull(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := mock.NewMockLinkExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]string{"https://github.com/alice"}, nil).
		Times(2)

	store := newMemStore()
	aggregator := app.NewAggregator(mock.NewMockGithubClient(ctrl), app.DefaultAggregatorConfig(), newTestLogger())
	// Scheduler isn't running, so the first job occupies the only queue slot.
	s := app.NewService(extractor, aggregator, store, app.ServiceConfig{QueueSize: 1}, newTestLogger())

	first, err := s.Upload(context.Background(), app.Document{Name: "a.pdf"})
	require.NoError(t, err)
	assert.Equal(t, app.StateAggregating, first.State)

	_, err = s.Upload(context.Background(), app.Document{Name: "b.pdf"})
	require.Error(t, err)
	assert.True(t, app.IsTooManyRequestsError(err))
}

func TestServiceUploadQueueFullWhileWorkersBusy(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := mock.NewMockLinkExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]string{"https://github.com/alice"}, nil).
		AnyTimes()

	started := make(chan struct{}, 10)
	release := make(chan struct{})
	client := mock.NewMockGithubClient(ctrl)
	client.EXPECT().
		User(gomock.Any(), "alice").
		DoAndReturn(func(ctx context.Context, _ string) (*app.Profile, error) {
			started <- struct{}{}
			select {
			case <-release:
			case <-ctx.Done():
			}
			return &app.Profile{Login: "alice"}, nil
		}).
		AnyTimes()
	client.EXPECT().Repositories(gomock.Any(), gomock.Any()).Return([]app.Repository{}, nil).AnyTimes()
	client.EXPECT().Events(gomock.Any(), gomock.Any()).Return([]app.Event{}, nil).AnyTimes()
	client.EXPECT().RateLimitRemaining(gomock.Any()).Return(50, nil).AnyTimes()

	store := newMemStore()
	aggregator := app.NewAggregator(client, app.DefaultAggregatorConfig(), newTestLogger())
	s := app.NewService(extractor, aggregator, store, app.ServiceConfig{Workers: 1, QueueSize: 1}, newTestLogger())
	s.RunScheduler()
	defer s.Close()

	ctx := context.Background()

	running, err := s.Upload(ctx, app.Document{Name: "a.pdf"})
	require.NoError(t, err)
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("aggregation didn't start")
	}

	waiting, err := s.Upload(ctx, app.Document{Name: "b.pdf"})
	require.NoError(t, err)
	assert.Equal(t, app.StateAggregating, waiting.State)

	for i := 0; i < 5; i++ {
		_, err = s.Upload(ctx, app.Document{Name: "c.pdf"})
		require.Error(t, err)
		assert.True(t, app.IsTooManyRequestsError(err))
	}

	close(release)
	for _, id := range []string{running.ID, waiting.ID} {
		id := id
		require.Eventually(t, func() bool {
			stored, err := s.Session(ctx, id)
			return err == nil && stored.State == app.StateReady
		}, 5*time.Second, 10*time.Millisecond)
	}
}

func TestServiceAggregation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := mock.NewMockLinkExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]string{"https://github.com/alice", "https://github.com/bob/tool"}, nil)

	client := mock.NewMockGithubClient(ctrl)
	client.EXPECT().User(gomock.Any(), "alice").Return(&app.Profile{Login: "alice", Name: strPtr("Alice A.")}, nil).AnyTimes()
	client.EXPECT().User(gomock.Any(), "bob").Return(nil, errors.New("404 Not Found")).AnyTimes()
	client.EXPECT().Repositories(gomock.Any(), "alice").Return([]app.Repository{
		{Name: "zeta", Stars: 3, Language: strPtr("Go")},
		{Name: "alpha", Stars: 10, Language: strPtr("Rust")},
		{Name: "fork", Stars: 100, Fork: true, Language: strPtr("Go")},
	}, nil).AnyTimes()
	client.EXPECT().Repositories(gomock.Any(), "bob").Return([]app.Repository{}, nil).AnyTimes()
	client.EXPECT().Events(gomock.Any(), gomock.Any()).Return([]app.Event{}, nil).AnyTimes()
	client.EXPECT().Languages(gomock.Any(), "alice", gomock.Any()).Return(app.LanguageBytes{"Go": 10}, nil).AnyTimes()
	client.EXPECT().RateLimitRemaining(gomock.Any()).Return(50, nil).AnyTimes()

	store := newMemStore()
	aggregator := app.NewAggregator(client, app.DefaultAggregatorConfig(), newTestLogger())
	s := app.NewService(extractor, aggregator, store, app.ServiceConfig{Workers: 2}, newTestLogger())
	s.RunScheduler()
	defer s.Close()

	ctx := context.Background()
	sess, err := s.Upload(ctx, app.Document{Name: "cv.pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, sess.Usernames)

	f := app.RepoFilter{Type: app.RepoTypeSources, Sort: app.SortByStars}

	var ins *app.Insights
	require.Eventually(t, func() bool {
		ins, err = s.Insights(ctx, sess.ID, f)
		return !app.IsScheduledForLaterError(err)
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, app.StateReady, ins.State)
	assert.Equal(t, "GitHub error: 404 Not Found (check rate limit or username).", ins.Banner)
	assert.Equal(t, []string{"Go", "Rust"}, ins.Languages)
	require.Len(t, ins.Users, 2)
	assert.Equal(t, "Alice A.", ins.Users[0].DisplayName)
	assert.Equal(t, 3, ins.Users[0].TotalRepositories)
	assert.Equal(t, []string{"alpha", "zeta"}, repoNames(ins.Users[0].Repositories))
	assert.Equal(t, "bob", ins.Users[1].DisplayName)
	assert.Nil(t, ins.Users[1].Profile)

	// Refresh issued right after a job finishes must run again.
	for i := 0; i < 5; i++ {
		refreshed, err := s.Refresh(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, app.StateAggregating, refreshed.State)

		require.Eventually(t, func() bool {
			stored, err := s.Session(ctx, sess.ID)
			return err == nil && stored.State == app.StateReady
		}, 5*time.Second, time.Millisecond)
	}
}

func TestServiceRefreshAfterLinksExpired(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := mock.NewMockLinkExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]string{"https://github.com/alice", "https://github.com/bob"}, nil)

	client := mock.NewMockGithubClient(ctrl)
	client.EXPECT().User(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, login string) (*app.Profile, error) {
			return &app.Profile{Login: login}, nil
		}).
		AnyTimes()
	client.EXPECT().Repositories(gomock.Any(), gomock.Any()).Return([]app.Repository{}, nil).AnyTimes()
	client.EXPECT().Events(gomock.Any(), gomock.Any()).Return([]app.Event{}, nil).AnyTimes()
	client.EXPECT().RateLimitRemaining(gomock.Any()).Return(50, nil).AnyTimes()

	store := newMemStore()
	aggregator := app.NewAggregator(client, app.DefaultAggregatorConfig(), newTestLogger())
	s := app.NewService(extractor, aggregator, store, app.ServiceConfig{}, newTestLogger())
	s.RunScheduler()
	defer s.Close()

	ctx := context.Background()
	sess, err := s.Upload(ctx, app.Document{Name: "cv.pdf"})
	require.NoError(t, err)

	waitReady := func() *app.Session {
		var stored *app.Session
		require.Eventually(t, func() bool {
			loaded, err := s.Session(ctx, sess.ID)
			if err != nil || loaded.State != app.StateReady {
				return false
			}
			stored = loaded
			return true
		}, 5*time.Second, 10*time.Millisecond)
		return stored
	}
	waitReady()

	// Links are gone and can't be written again, as if their key expired before the session.
	store.loseLinks()

	_, err = s.Refresh(ctx, sess.ID)
	require.NoError(t, err)
	stored := waitReady()

	assert.Equal(t, []string{"alice", "bob"}, stored.Usernames)
	require.NotNil(t, stored.Report)
	assert.Len(t, stored.Report.Users, 2)

	_, err = s.Refresh(ctx, sess.ID)
	require.NoError(t, err)
	waitReady()
}

func TestServiceInsightsErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := newMemStore()
	aggregator := app.NewAggregator(mock.NewMockGithubClient(ctrl), app.DefaultAggregatorConfig(), newTestLogger())
	s := app.NewService(mock.NewMockLinkExtractor(ctrl), aggregator, store, app.ServiceConfig{}, newTestLogger())

	ctx := context.Background()

	_, err := s.Insights(ctx, "missing", app.RepoFilter{})
	assert.True(t, app.IsNotFoundError(err))

	sess := app.NewSession("cv.pdf", time.Now())
	require.NoError(t, sess.Transition(app.StateExtracting, time.Now()))
	require.NoError(t, sess.Transition(app.StateResolving, time.Now()))
	require.NoError(t, sess.Transition(app.StateAggregating, time.Now()))
	require.NoError(t, store.Save(ctx, sess))

	_, err = s.Insights(ctx, sess.ID, app.RepoFilter{})
	assert.True(t, app.IsScheduledForLaterError(err))

	empty := app.NewSession("empty.pdf", time.Now())
	require.NoError(t, empty.Transition(app.StateExtracting, time.Now()))
	require.NoError(t, empty.Transition(app.StateEmpty, time.Now()))
	require.NoError(t, store.Save(ctx, empty))

	_, err = s.Refresh(ctx, empty.ID)
	assert.True(t, app.IsInvalidRequestError(err))

	broken := app.NewSession("broken.pdf", time.Now())
	require.NoError(t, broken.Transition(app.StateExtracting, time.Now()))
	require.NoError(t, broken.Transition(app.StateFailed, time.Now()))
	require.NoError(t, store.Save(ctx, broken))

	_, err = s.Refresh(ctx, broken.ID)
	assert.True(t, app.IsInvalidRequestError(err))

	ins, err := s.Insights(ctx, empty.ID, app.RepoFilter{})
	require.NoError(t, err)
	assert.Equal(t, app.StateEmpty, ins.State)
	assert.Empty(t, ins.Users)
}

func repoNames(repos []app.Repository) []string {
	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}
	return names
}

// memStore keeps session copies in memory.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]app.Session
	links    map[string][]string
	noLinks  bool
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[string]app.Session),
		links:    make(map[string][]string),
	}
}

func (m *memStore) Save(_ context.Context, s *app.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memStore) Load(_ context.Context, id string) (*app.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, app.NotFoundError("session not found")
	}
	return &s, nil
}

// loseLinks drops stored links and ignores links saved later.
func (m *memStore) loseLinks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noLinks = true
	m.links = make(map[string][]string)
}

func (m *memStore) SaveLinks(_ context.Context, id string, links []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.noLinks {
		return nil
	}
	m.links[id] = append([]string(nil), links...)
	return nil
}

func (m *memStore) LoadLinks(_ context.Context, id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	links, ok := m.links[id]
	if !ok {
		return []string{}, nil
	}
	return links, nil
}
