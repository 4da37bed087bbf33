package server

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/playperu/treasurehunt/internal/content"
	"github.com/playperu/treasurehunt/internal/hunt"
	"github.com/playperu/treasurehunt/internal/store"
)

// Hunts loads sessions from the store, runs transitions on them and saves
// them back. Transitions on one session are serialised; different sessions
// run in parallel.
type Hunts struct {
	library *content.Library
	store   store.Store[hunt.Snapshot]
	broker  *Broker
	logger  *slog.Logger
	opts    []hunt.Option
	seed    uint64
	locks   keyedMutex
}

// NewHunts returns a session service. A non-zero seed makes map filler
// deterministic per session and location.
func NewHunts(logger *slog.Logger, library *content.Library, sessions store.Store[hunt.Snapshot], broker *Broker, seed uint64, opts ...hunt.Option) *Hunts {
	return &Hunts{
		library: library,
		store:   sessions,
		broker:  broker,
		logger:  logger,
		opts:    opts,
		seed:    seed,
		locks:   keyedMutex{locks: make(map[string]*refMutex)},
	}
}

// Create stores a new session bound to the current content table.
func (h *Hunts) Create(ctx context.Context) (string, *hunt.Session, error) {
	id := uuid.NewString()
	s := hunt.NewSession(h.library.Current(), h.opts...)
	if err := h.store.Put(ctx, id, s.Snapshot()); err != nil {
		return "", nil, fmt.Errorf("saving new session: %w", err)
	}
	h.logger.Info("session created", "session", id, "content", s.Content().Version)
	return id, s, nil
}

// Get loads a session for reading.
func (h *Hunts) Get(ctx context.Context, id string) (*hunt.Session, error) {
	snap, err := h.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := h.library.Get(snap.ContentVersion)
	if err != nil {
		return nil, err
	}
	opts := h.opts
	if h.seed != 0 {
		step := uint64(snap.CurrentLocationIndex) << 1
		if snap.Started {
			step |= 1
		}
		opts = append(slices.Clip(opts), hunt.WithRand(h.sessionRand(id, step)))
	}
	return hunt.Restore(c, snap, opts...)
}

// sessionRand returns a source owned by one load of one session, so sessions
// never share generator state. step separates the draws made by Start and by
// each Advance.
func (h *Hunts) sessionRand(id string, step uint64) hunt.Rand {
	f := fnv.New64a()
	f.Write([]byte(id))
	return hunt.NewRand(h.seed ^ f.Sum64() + step)
}

// Apply runs fn against session id and saves the result, whether or not fn
// succeeded: a rejected answer still posts a notice. Changes are published
// to subscribers.
func (h *Hunts) Apply(ctx context.Context, id string, fn func(*hunt.Session) (hunt.Event, error)) (*hunt.Session, hunt.Event, error) {
	unlock := h.locks.lock(id)
	defer unlock()

	s, err := h.Get(ctx, id)
	if err != nil {
		return nil, hunt.Event{}, err
	}

	ev, fnErr := fn(s)
	if err := h.store.Put(ctx, id, s.Snapshot()); err != nil {
		return nil, hunt.Event{}, fmt.Errorf("saving session: %w", err)
	}

	var mm *hunt.MismatchError
	switch {
	case errors.As(fnErr, &mm):
		h.logger.Debug("answer rejected", "session", id, "location", s.Index(), "kind", mm.Kind)
		h.broker.Publish(id, SessionEvent{Type: EventMismatch, Location: s.Index(), Phase: s.Phase(), Kind: mm.Kind})
	case fnErr == nil && ev.Changed():
		h.logger.Info("session advanced", "session", id, "location", ev.Location, "event", ev.Type)
		h.broker.Publish(id, eventFrom(ev))
	}
	return s, ev, fnErr
}

type refMutex struct {
	sync.Mutex
	refs int
}

// keyedMutex hands out one mutex per key and forgets it when unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
