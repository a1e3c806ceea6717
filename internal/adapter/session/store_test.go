package session

import (
	"context"
	"errors"
	"io/ioutil"
	"testing"
	"time"

	"github.com/m-zajac/gitinsight/internal/adapter/session/mock"
	"github.com/m-zajac/gitinsight/internal/app"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := mock.NewKVStore(nil)
	s := NewStore(kv, time.Hour, newTestLogger())

	_, err := s.Load(ctx, "missing")
	require.Error(t, err)
	assert.True(t, app.IsNotFoundError(err))

	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sess := app.NewSession("cv.pdf", created)
	require.NoError(t, sess.Transition(app.StateExtracting, created))
	require.NoError(t, sess.Transition(app.StateResolving, created))
	require.NoError(t, sess.Transition(app.StateAggregating, created))
	require.NoError(t, sess.Transition(app.StateReady, created))
	contributions := 42
	sess.Links = []string{"https://github.com/alice"}
	sess.Usernames = []string{"alice"}
	sess.Report = &app.Report{
		Users: []app.UserInsights{
			{
				Username:      "alice",
				Profile:       &app.Profile{Login: "alice"},
				Repositories:  []app.Repository{{ID: 1, Name: "tool", UpdatedAt: created}},
				Events:        []app.Event{},
				Contributions: &contributions,
				Languages:     app.LanguageBytes{"Go": 100},
				LanguageShare: []app.LanguageShare{{Name: "Go", Percent: 100}},
			},
		},
		CreatedAt: created,
	}
	require.NoError(t, s.Save(ctx, sess))

	got, err := s.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestStoreExpiration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := mock.NewKVStore(nil)
	s := NewStore(kv, time.Hour, newTestLogger())

	now := time.Now()
	s.now = func() time.Time { return now }

	sess := app.NewSession("cv.pdf", now)
	require.NoError(t, s.Save(ctx, sess))
	require.NoError(t, s.SaveLinks(ctx, sess.ID, []string{"https://github.com/alice"}))
	assert.Equal(t, 2, kv.Keys())

	s.now = func() time.Time { return now.Add(59 * time.Minute) }
	_, err := s.Load(ctx, sess.ID)
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(61 * time.Minute) }
	_, err = s.Load(ctx, sess.ID)
	assert.True(t, app.IsNotFoundError(err))
	links, err := s.LoadLinks(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, links)

	assert.Equal(t, 2, kv.Deletes())
	assert.Equal(t, 0, kv.Keys())
}

func TestStoreLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*Store, *mock.KVStore)
		want  []string
	}{
		{
			name:  "missing",
			setup: func(*Store, *mock.KVStore) {},
			want:  []string{},
		},
		{
			name: "saved",
			setup: func(s *Store, _ *mock.KVStore) {
				_ = s.SaveLinks(context.Background(), "id", []string{"https://github.com/alice", "https://github.com/bob"})
			},
			want: []string{"https://github.com/alice", "https://github.com/bob"},
		},
		{
			name: "saved nil",
			setup: func(s *Store, _ *mock.KVStore) {
				_ = s.SaveLinks(context.Background(), "id", nil)
			},
			want: []string{},
		},
		{
			name: "malformed entry",
			setup: func(_ *Store, kv *mock.KVStore) {
				_ = kv.UpdateKey(context.Background(), []byte("id/gh_links"), []byte("{not json"))
			},
			want: []string{},
		},
		{
			name: "malformed links",
			setup: func(_ *Store, kv *mock.KVStore) {
				_ = kv.UpdateKey(context.Background(), []byte("id/gh_links"), []byte(`{"Created": 0, "Data": {"a": 1}}`))
			},
			want: []string{},
		},
		{
			name: "storage error",
			setup: func(_ *Store, kv *mock.KVStore) {
				kv.Err = errors.New("connection refused")
			},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := mock.NewKVStore(nil)
			s := NewStore(kv, 0, newTestLogger())
			tt.setup(s, kv)

			got, err := s.LoadLinks(context.Background(), "id")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := mock.NewKVStore(map[string][]byte{
		"s/broken": []byte("garbage"),
	})
	s := NewStore(kv, 0, newTestLogger())

	_, err := s.Load(ctx, "broken")
	require.Error(t, err)
	assert.False(t, app.IsNotFoundError(err))

	kv.Err = errors.New("disk full")
	assert.Error(t, s.Save(ctx, app.NewSession("cv.pdf", time.Now())))
	assert.Error(t, s.SaveLinks(ctx, "id", []string{}))
}

func newTestLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}
