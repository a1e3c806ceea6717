package session

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/gitinsight/internal/app"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LinksKey is the name under which extracted links are kept for a session.
const LinksKey = "gh_links"

// KVStore provides simple kv data storage.
type KVStore interface {
	ReadKey(ctx context.Context, key []byte) ([]byte, error)
	UpdateKey(ctx context.Context, key []byte, data []byte) error
	DeleteKey(ctx context.Context, key []byte) error
}

// Store keeps sessions in kv store.
// This struct is an adapter for app.SessionStore.
//
// Entries older than ttl are treated as missing and deleted on read.
type Store struct {
	kv  KVStore
	ttl time.Duration
	l   logrus.FieldLogger
	now func() time.Time
}

var _ app.SessionStore = &Store{}

// NewStore creates new Store instance. Zero ttl means entries never expire.
func NewStore(kv KVStore, ttl time.Duration, l logrus.FieldLogger) *Store {
	return &Store{
		kv:  kv,
		ttl: ttl,
		l:   l,
		now: time.Now,
	}
}

// Save stores session, replacing previous version.
func (s *Store) Save(ctx context.Context, sess *app.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}

	return s.write(ctx, sessionKey(sess.ID), data)
}

// Load returns session by id. Returns app.NotFoundError for missing or expired sessions.
func (s *Store) Load(ctx context.Context, id string) (*app.Session, error) {
	data, err := s.read(ctx, sessionKey(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, app.NotFoundError(fmt.Sprintf("session %s not found", id))
	}

	var sess app.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshalling session: %w", err)
	}

	return &sess, nil
}

// SaveLinks stores links extracted for session.
func (s *Store) SaveLinks(ctx context.Context, sessionID string, links []string) error {
	if links == nil {
		links = []string{}
	}
	data, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("marshalling links: %w", err)
	}

	return s.write(ctx, linksKey(sessionID), data)
}

// LoadLinks returns links stored for session.
// Missing, expired and malformed data is returned as empty list.
func (s *Store) LoadLinks(ctx context.Context, sessionID string) ([]string, error) {
	data, err := s.read(ctx, linksKey(sessionID))
	if err != nil {
		s.l.WithError(err).WithField("session", sessionID).Warn("reading links")
		return []string{}, nil
	}
	if data == nil {
		return []string{}, nil
	}

	var links []string
	if err := json.Unmarshal(data, &links); err != nil {
		s.l.WithError(err).WithField("session", sessionID).Warn("malformed links")
		return []string{}, nil
	}
	if links == nil {
		links = []string{}
	}

	return links, nil
}

func (s *Store) write(ctx context.Context, key []byte, data []byte) error {
	dbdata, err := json.Marshal(dbEntry{
		Created: s.now().Unix(),
		Data:    data,
	})
	if err != nil {
		return fmt.Errorf("serializing data for save: %w", err)
	}

	return s.kv.UpdateKey(ctx, key, dbdata)
}

// read returns entry data, or nil if there's no valid entry for key.
func (s *Store) read(ctx context.Context, key []byte) (jsoniter.RawMessage, error) {
	dbdata, err := s.kv.ReadKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if dbdata == nil {
		return nil, nil
	}

	var entry dbEntry
	if err := json.Unmarshal(dbdata, &entry); err != nil {
		return nil, fmt.Errorf("unserializing data: %w", err)
	}

	created := time.Unix(entry.Created, 0)
	if s.ttl > 0 && created.Add(s.ttl).Before(s.now()) {
		if err := s.kv.DeleteKey(ctx, key); err != nil {
			s.l.WithError(err).Warnf("deleting expired key %s", key)
		}
		return nil, nil
	}

	return entry.Data, nil
}

func sessionKey(id string) []byte {
	return []byte("s/" + id)
}

func linksKey(id string) []byte {
	return []byte(id + "/" + LinksKey)
}

type dbEntry struct {
	Created int64
	Data    jsoniter.RawMessage
}
