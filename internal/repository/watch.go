package repository

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/breakfree/internal/error_values"
	"github.com/limbo/breakfree/pkg/entity"
)

// NotificationSource abstracts the LISTEN side of pg_notify so the
// watcher can be tested without a live connection.
type NotificationSource interface {
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

type pgNotificationSource struct {
	conn *pgx.Conn
}

// NewPGNotificationSource opens a dedicated connection subscribed to
// the profile updates channel. The connection must not be shared with
// query traffic, WaitForNotification owns it.
func NewPGNotificationSource(ctx context.Context, cfg DBConfig) (NotificationSource, error) {
	conn, err := pgx.Connect(ctx, cfg.ConnString())
	if err != nil {
		return nil, errors.New("connecting listener error: " + err.Error())
	}
	_, err = conn.Exec(ctx, "LISTEN "+ProfileUpdatesChannel+";")
	if err != nil {
		conn.Close(ctx)
		return nil, errors.New("subscribing to channel error: " + err.Error())
	}
	return &pgNotificationSource{conn: conn}, nil
}

func (s *pgNotificationSource) WaitForNotification(ctx context.Context) (*pgconn.Notification, error) {
	return s.conn.WaitForNotification(ctx)
}

func (s *pgNotificationSource) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

type profileSubscriber struct {
	onData  func(*entity.Profile)
	onError func(error)
}

// ProfileWatcher fans profile-change notifications out to per-user
// subscribers. Each subscriber gets the current snapshot immediately
// (nil when the profile doesn't exist yet) and a fresh snapshot on
// every subsequent change.
type ProfileWatcher struct {
	profiles ProfilesRepositoryI
	source   NotificationSource

	mu     sync.Mutex
	subs   map[uuid.UUID]map[int]*profileSubscriber
	nextID int

	cancel context.CancelFunc
	done   chan struct{}
}

func NewProfileWatcher(profiles ProfilesRepositoryI, source NotificationSource) *ProfileWatcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &ProfileWatcher{
		profiles: profiles,
		source:   source,
		subs:     make(map[uuid.UUID]map[int]*profileSubscriber),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.run(ctx)
	return w
}

// Subscribe registers callbacks for uid and returns an unsubscribe
// func. Unsubscribing more than once is safe.
func (w *ProfileWatcher) Subscribe(uid uuid.UUID, onData func(*entity.Profile), onError func(error)) func() {
	sub := &profileSubscriber{onData: onData, onError: onError}

	snapshot, err := w.snapshot(uid)
	if err != nil {
		sub.onError(err)
	} else {
		sub.onData(snapshot)
	}

	w.mu.Lock()
	w.nextID++
	id := w.nextID
	if w.subs[uid] == nil {
		w.subs[uid] = make(map[int]*profileSubscriber)
	}
	w.subs[uid][id] = sub
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			delete(w.subs[uid], id)
			if len(w.subs[uid]) == 0 {
				delete(w.subs, uid)
			}
		})
	}
}

// Close stops the listen loop and releases the listener connection.
func (w *ProfileWatcher) Close() error {
	w.cancel()
	<-w.done
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	return w.source.Close(ctx)
}

func (w *ProfileWatcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		notification, err := w.source.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// A broken listener must surface, subscribers cannot be
			// left believing their data is merely empty
			w.broadcastError(errors.New("profile listener error: " + err.Error()))
			return
		}
		uid, err := uuid.Parse(notification.Payload)
		if err != nil {
			slog.Warn("dropping notification with bad payload", slog.String("payload", notification.Payload))
			continue
		}
		w.deliver(uid)
	}
}

func (w *ProfileWatcher) deliver(uid uuid.UUID) {
	w.mu.Lock()
	subs := make([]*profileSubscriber, 0, len(w.subs[uid]))
	for _, sub := range w.subs[uid] {
		subs = append(subs, sub)
	}
	w.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	snapshot, err := w.snapshot(uid)
	for _, sub := range subs {
		if err != nil {
			sub.onError(err)
		} else {
			sub.onData(snapshot)
		}
	}
}

func (w *ProfileWatcher) broadcastError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, subs := range w.subs {
		for _, sub := range subs {
			sub.onError(err)
		}
	}
}

func (w *ProfileWatcher) snapshot(uid uuid.UUID) (*entity.Profile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	profile, err := w.profiles.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			// Absent is data, not an error: the first snapshot may
			// legitimately be nil before the profile exists
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}
