package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaminalder/codex-gomoku/internal/domain"
	"github.com/sirupsen/logrus"
)

// Errors exposed by the service layer.
var (
	ErrNotFound = errors.New("game not found")
)

// GameState is the in-memory state tracked per game.
type GameState struct {
	ID      string
	Game    domain.Game
	Created time.Time
	Updated time.Time
}

// Snapshot returns the render view of the game.
func (gs *GameState) Snapshot() domain.Snapshot { return gs.Game.Snapshot() }

func (gs *GameState) copy() *GameState {
	cp := *gs
	cp.Game = gs.Game.Clone()
	return &cp
}

type subscriber struct {
	mu     sync.Mutex
	ch     chan []byte
	done   chan struct{}
	closed bool
}

func newSubscriber() *subscriber {
	return &subscriber{ch: make(chan []byte, 1), done: make(chan struct{})}
}

// close ends delivery and releases the goroutine watching the subscriber's context.
func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
		close(s.done)
	}
}

// send delivers without blocking; false means the subscriber is full or gone.
func (s *subscriber) send(b []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- b:
		return true
	default:
		return false
	}
}

// Service owns every game and serializes all calls into the engine.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	log    logrus.FieldLogger
}

// Option configures a Service.
type Option func(*Service)

// WithRenderer sets the broadcast renderer.
func WithRenderer(renderer func(GameState) []byte) Option {
	return func(s *Service) {
		if renderer != nil {
			s.render = renderer
		}
	}
}

// WithLogger sets the logger; the standard logrus logger is used otherwise.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a service with a renderer that encodes nothing.
func NewService(opts ...Option) *Service {
	s := &Service{
		games:  make(map[string]*GameState),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: func(GameState) []byte { return nil },
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	now := time.Now()
	gs := &GameState{ID: id, Game: domain.New(), Created: now, Updated: now}
	s.games[id] = gs
	s.log.WithField("game", id).Info("game created")
	return gs.copy(), nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	return gs.copy(), true
}

// Len returns the number of games held.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Play places the side to move's stone at (r, c) and broadcasts on success.
// Engine rejections return the unchanged state alongside the domain error.
func (s *Service) Play(id string, r, c int) (*GameState, domain.MoveResult, error) {
	var res domain.MoveResult
	gs, err := s.mutate(id, func(gs *GameState) error {
		var err error
		res, err = gs.Game.Play(r, c)
		entry := s.log.WithFields(logrus.Fields{
			"game":   id,
			"row":    r,
			"col":    c,
			"status": res.Status,
		})
		if err != nil {
			entry.WithError(err).Debug("move rejected")
			return err
		}
		entry = entry.WithField("color", res.Move.Color)
		switch res.Status {
		case domain.Win:
			entry.Info("game won")
		case domain.Draw:
			entry.Info("game drawn")
		default:
			entry.Debug("stone placed")
		}
		return nil
	})
	return gs, res, err
}

// Undo takes back the last move of the game.
func (s *Service) Undo(id string) (*GameState, domain.UndoResult, error) {
	var res domain.UndoResult
	gs, err := s.mutate(id, func(gs *GameState) error {
		var err error
		res, err = gs.Game.Undo()
		entry := s.log.WithFields(logrus.Fields{"game": id, "status": res.Status})
		if err != nil {
			entry.WithError(err).Debug("undo rejected")
			return err
		}
		entry.WithFields(logrus.Fields{
			"row":   res.Move.Row,
			"col":   res.Move.Col,
			"color": res.Move.Color,
		}).Debug("move undone")
		return nil
	})
	return gs, res, err
}

// Reset starts the game over. It always succeeds for a known id.
func (s *Service) Reset(id string) (*GameState, error) {
	return s.mutate(id, func(gs *GameState) error {
		gs.Game.Reset()
		s.log.WithField("game", id).Info("game reset")
		return nil
	})
}

// Delete removes a game and closes its subscribers.
func (s *Service) Delete(id string) bool {
	s.mu.Lock()
	_, ok := s.games[id]
	delete(s.games, id)
	subs := s.subs[id]
	delete(s.subs, id)
	s.mu.Unlock()
	for sub := range subs {
		sub.close()
	}
	if ok {
		s.log.WithField("game", id).Info("game deleted")
	}
	return ok
}

// mutate runs fn against the stored game under the lock. When fn fails the
// current state is returned with its error and nothing is broadcast.
func (s *Service) mutate(id string, fn func(*GameState) error) (*GameState, error) {
	var toDrop []*subscriber

	s.mu.Lock()
	gs, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if err := fn(gs); err != nil {
		cp := gs.copy()
		s.mu.Unlock()
		return cp, err
	}
	gs.Updated = time.Now()

	// Snapshot state and subscribers
	cp := gs.copy()
	subs := s.copySubsLocked(id)
	payload := s.render(*cp)
	s.mu.Unlock()

	// Fan-out; drop slow subscribers by closing and marking for deletion
	for sub := range subs {
		if !sub.send(payload) {
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	if len(toDrop) > 0 {
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{"game": id, "dropped": len(toDrop)}).Warn("dropped slow subscribers")
	}
	return cp, nil
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
// The channel is closed right away for unknown games.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := newSubscriber()
	if _, ok := s.games[id]; !ok {
		sub.close()
		return sub.ch, func() {}
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-sub.done:
		}
	}()
	return sub.ch, unsub
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
