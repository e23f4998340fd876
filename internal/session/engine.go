// Package session runs a timed practice session: it presents the cards of a deck,
// requeues them according to each answer and writes the outcome back to the
// mastery store when the session ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/at-ishikawa/spacetimes/internal/deck"
	"github.com/at-ishikawa/spacetimes/internal/fact"
	"github.com/at-ishikawa/spacetimes/internal/mastery"
)

type Engine struct {
	store     mastery.Store
	clock     Clock
	presenter Presenter
	rng       *rand.Rand
	logger    *slog.Logger
	newID     func() string
}

func NewEngine(
	store mastery.Store,
	clock Clock,
	presenter Presenter,
	rng *rand.Rand,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		store:     store,
		clock:     clock,
		presenter: presenter,
		rng:       rng,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Start validates the request, builds the deck and presents the first card.
// ctx is kept by the session for resolutions raised by its countdown.
func (e *Engine) Start(ctx context.Context, learnerID string, tables []int, opts Options) (*Session, error) {
	if learnerID == "" {
		return nil, ErrNoLearner
	}
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	for _, t := range tables {
		if !fact.IsOperand(t) {
			return nil, fmt.Errorf("%w: got %d", ErrTableOutOfRange, t)
		}
	}

	record, err := e.store.Get(ctx, learnerID)
	if errors.Is(err, mastery.ErrLearnerNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err != nil {
		return nil, fmt.Errorf("store.Get(%s) > %w", learnerID, err)
	}

	opts = opts.normalize()
	logger := e.logger.With("component", "session", "learner", learnerID)
	cards := deck.NewBuilder(e.rng, opts.TargetSuccessRate, e.logger).Build(tables, record)

	s := &Session{
		id:        e.newID(),
		ctx:       ctx,
		learnerID: learnerID,
		tables:    append([]int(nil), tables...),
		opts:      opts,
		queue:     cards,
		store:     e.store,
		clock:     e.clock,
		presenter: e.presenter,
		rng:       e.rng,
		logger:    logger,
		timer:     countdown{clock: e.clock},
	}
	logger.Debug("session started", "tables", tables, "deck_size", len(cards))
	if err := s.nextCard(ctx); err != nil {
		return s, err
	}
	return s, nil
}
