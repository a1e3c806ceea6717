package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LinkExtractor finds github links in a document.
type LinkExtractor interface {
	Extract(ctx context.Context, doc Document, progress ProgressFunc) ([]string, error)
}

// SessionStore keeps sessions and extracted links handed over between upload and aggregation.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	// Load returns NotFoundError for unknown or expired sessions.
	Load(ctx context.Context, id string) (*Session, error)
	SaveLinks(ctx context.Context, sessionID string, links []string) error
	// LoadLinks returns empty list when links are absent or malformed.
	LoadLinks(ctx context.Context, sessionID string) ([]string, error)
}

// ServiceConfig configures Service.
type ServiceConfig struct {
	// AggregationTimeout - maximum duration of a single aggregation job.
	AggregationTimeout time.Duration
	// Workers - number of concurrently running aggregation jobs.
	Workers int
	// QueueSize - number of aggregation jobs waiting for a worker.
	QueueSize int
}

// Service is main apps entry point. Provides all app functionality.
type Service struct {
	extractor  LinkExtractor
	aggregator *Aggregator
	store      SessionStore
	conf       ServiceConfig
	l          logrus.FieldLogger
	now        func() time.Time

	// Waiting jobs. Workers take them one at a time, so at most Workers + QueueSize jobs are accepted.
	jobs    chan string
	workers sync.WaitGroup

	// Func for canceling workers and running jobs.
	stop func()
}

// NewService creates new Service instance.
func NewService(
	extractor LinkExtractor,
	aggregator *Aggregator,
	store SessionStore,
	conf ServiceConfig,
	l logrus.FieldLogger,
) *Service {
	if conf.Workers <= 0 {
		conf.Workers = 1
	}
	if conf.QueueSize <= 0 {
		conf.QueueSize = 100
	}
	if conf.AggregationTimeout <= 0 {
		conf.AggregationTimeout = time.Minute
	}

	return &Service{
		extractor:  extractor,
		aggregator: aggregator,
		store:      store,
		conf:       conf,
		l:          l,
		now:        time.Now,
		jobs:       make(chan string, conf.QueueSize),
	}
}

// Upload extracts github links from a résumé and schedules aggregation of found profiles.
//
// Invalid documents are rejected with InvalidRequestError before any processing.
// Document without github profile links produces session in StateEmpty, it's not an error.
func (s *Service) Upload(ctx context.Context, doc Document) (*Session, error) {
	sess := NewSession(doc.Name, s.now())
	if err := sess.Transition(StateExtracting, s.now()); err != nil {
		return nil, err
	}
	l := s.l.WithField("session", sess.ID)

	links, err := s.extractor.Extract(ctx, doc, func(done int, total int) {
		sess.Progress = Progress{Pages: done, TotalPages: total}
		l.Debugf("extracting links: page %d/%d", done, total)
	})
	if err != nil {
		if IsInvalidRequestError(err) {
			return nil, err
		}
		sess.Message = "Failed to process PDF"
		if terr := sess.Transition(StateFailed, s.now()); terr != nil {
			return nil, terr
		}
		if serr := s.store.Save(ctx, sess); serr != nil {
			l.WithError(serr).Error("saving failed session")
		}
		return nil, fmt.Errorf("extracting links: %w", err)
	}
	sess.Links = links

	if err := s.store.SaveLinks(ctx, sess.ID, links); err != nil {
		return nil, fmt.Errorf("saving links: %w", err)
	}

	if len(links) == 0 {
		return s.finishEmpty(ctx, sess)
	}

	if err := sess.Transition(StateResolving, s.now()); err != nil {
		return nil, err
	}
	sess.Usernames = ResolveUsernames(links)
	if len(sess.Usernames) == 0 {
		return s.finishEmpty(ctx, sess)
	}

	if err := sess.Transition(StateAggregating, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	if err := s.schedule(ctx, sess); err != nil {
		return nil, err
	}
	l.Infof("found %d links, %d users", len(links), len(sess.Usernames))

	return sess, nil
}

// Session returns session by id.
func (s *Service) Session(ctx context.Context, id string) (*Session, error) {
	return s.store.Load(ctx, id)
}

// Refresh schedules new aggregation for a ready or failed session.
func (s *Service) Refresh(ctx context.Context, id string) (*Session, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.State == StateAggregating {
		return sess, nil
	}
	if len(sess.Usernames) == 0 {
		return nil, InvalidRequestError("session has no github users to refresh")
	}
	if err := sess.Transition(StateAggregating, s.now()); err != nil {
		return nil, InvalidRequestError(fmt.Sprintf("session in state %s can't be refreshed", sess.State))
	}
	sess.Message = ""
	// Links expire with their own ttl, saving them again keeps them alive as long as the session.
	if err := s.store.SaveLinks(ctx, sess.ID, sess.Links); err != nil {
		return nil, fmt.Errorf("saving links: %w", err)
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	if err := s.schedule(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Insights returns aggregated report for session with repositories filtered by f.
// Returns ScheduledForLaterError while aggregation is still running.
func (s *Service) Insights(ctx context.Context, id string, f RepoFilter) (*Insights, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.State.Final() {
		return nil, ScheduledForLaterError(fmt.Sprintf("session is %s", sess.State))
	}

	return NewInsights(sess, f, s.now()), nil
}

// RunScheduler starts aggregation workers.
// Doesn't block.
func (s *Service) RunScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel

	for i := 0; i < s.conf.Workers; i++ {
		s.workers.Add(1)
		go func() {
			defer s.workers.Done()
			for {
				select {
				case id := <-s.jobs:
					s.aggregate(ctx, id)
				case <-ctx.Done():
					return
				}
			}
		}()
	}
}

// Close stops workers and waits for them to return. Running jobs get their context canceled.
func (s *Service) Close() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	s.workers.Wait()
}

func (s *Service) schedule(ctx context.Context, sess *Session) error {
	select {
	case s.jobs <- sess.ID:
		return nil
	default:
	}

	sess.Message = "Too many resumes are processed right now, try again later"
	if err := sess.Transition(StateFailed, s.now()); err != nil {
		return err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		s.l.WithError(err).WithField("session", sess.ID).Error("saving session")
	}

	return TooManyRequestsError("aggregation scheduler: no free slots left")
}

func (s *Service) finishEmpty(ctx context.Context, sess *Session) (*Session, error) {
	sess.Message = NoLinksMessage
	if err := sess.Transition(StateEmpty, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	return sess, nil
}

func (s *Service) aggregate(ctx context.Context, id string) {
	l := s.l.WithField("session", id)

	ctx, cancel := context.WithTimeout(ctx, s.conf.AggregationTimeout)
	defer cancel()

	sess, err := s.store.Load(ctx, id)
	if err != nil {
		l.WithError(err).Error("loading session for aggregation")
		return
	}
	if sess.State != StateAggregating {
		l.Warnf("skipping aggregation of session in state %s", sess.State)
		return
	}

	var report *Report
	links, err := s.store.LoadLinks(ctx, id)
	if err == nil {
		if usernames := ResolveUsernames(links); len(usernames) > 0 {
			sess.Usernames = usernames
		} else {
			l.Warn("links are missing, using usernames resolved at upload")
		}
		l.Infof("aggregating %d users...", len(sess.Usernames))
		report = s.aggregator.Aggregate(ctx, sess.Usernames)
		err = ctx.Err()
	}

	next := StateReady
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		next = StateFailed
		sess.Message = "Loading GitHub data timed out"
	case err != nil:
		next = StateFailed
		sess.Message = "Failed to load GitHub data"
	default:
		sess.Report = report
		sess.Message = report.Banner
	}
	if err != nil {
		l.WithError(err).Error("aggregation failed")
	}
	if terr := sess.Transition(next, s.now()); terr != nil {
		l.WithError(terr).Error("finishing aggregation")
		return
	}

	// Job context may be already done here, result should be saved anyway.
	if err := s.store.Save(context.Background(), sess); err != nil {
		l.WithError(err).Error("saving aggregated session")
		return
	}
	l.Infof("aggregation done, state %s", sess.State)
}
