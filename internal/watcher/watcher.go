// Package watcher polls the append-only login table and announces records it
// has not seen before to the broadcast channel. The store offers no change
// feed, so polling with an in-memory seen set stands in for one.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/luminohq/lumino-bot/internal/config"
	"github.com/luminohq/lumino-bot/internal/render"
	"github.com/luminohq/lumino-bot/internal/store"
)

// Store is the slice of the record store gateway the watcher reads from.
type Store interface {
	ListLogins(ctx context.Context) ([]store.LoginRecord, error)
	GetUser(ctx context.Context, id string) (store.UserProfile, error)
}

// Broadcaster delivers a notification to the broadcast channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) error
}

// Watcher runs the dedup poll loop. An id is announced at most once per
// process lifetime (bounded by the seen set capacity); a restart clears the
// set, so records present across a restart are announced again.
type Watcher struct {
	store       Store
	broadcaster Broadcaster
	seen        *seenSet
	interval    time.Duration
	logger      *slog.Logger
	failures    int
}

func New(log *slog.Logger, gateway Store, broadcaster Broadcaster, cfg config.WatcherConfig) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		store:       gateway,
		broadcaster: broadcaster,
		seen:        newSeenSet(cfg.SeenCapacity),
		interval:    cfg.PollInterval,
		logger:      log.With(slog.String("service", "watcher")),
	}
}

// Run polls until ctx is cancelled. A failed cycle is logged and the loop
// continues after the normal delay; the delay runs from the end of one cycle
// to the start of the next, so slow queries throttle the load naturally.
func (w *Watcher) Run(ctx context.Context) {
	w.logger.Info("login watcher started", slog.Duration("interval", w.interval))
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("login watcher stopped")
			return
		case <-timer.C:
		}

		started := time.Now()
		notified, err := w.cycle(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("login watcher stopped")
				return
			}
			w.failures++
			w.logger.Error("login check failed",
				slog.Any("error", err),
				slog.Int("consecutive_failures", w.failures))
		} else {
			w.failures = 0
			w.logger.Debug("login check complete",
				slog.Duration("duration", time.Since(started)),
				slog.Int("notified", notified),
				slog.Int("seen", w.seen.Len()))
		}

		timer.Reset(w.interval)
	}
}

// cycle scans the full login table once, in the store's return order.
func (w *Watcher) cycle(ctx context.Context) (int, error) {
	logins, err := w.store.ListLogins(ctx)
	if err != nil {
		return 0, fmt.Errorf("list logins: %w", err)
	}

	notified := 0
	for _, login := range logins {
		if !w.seen.Add(login.ID) {
			continue
		}
		user, err := w.store.GetUser(ctx, login.ID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return notified, fmt.Errorf("fetch profile %s: %w", login.ID, err)
			}
			user = store.UserProfile{ID: login.ID}
		}
		if err := w.broadcaster.Broadcast(ctx, render.LoginAlert(user, login)); err != nil {
			return notified, fmt.Errorf("broadcast login %s: %w", login.ID, err)
		}
		notified++
	}
	return notified, nil
}
