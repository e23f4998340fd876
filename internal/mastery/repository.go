package mastery

import (
	"context"
	"errors"
)

var ErrLearnerNotFound = errors.New("learner not found")

//go:generate mockgen -source=repository.go -destination=../mocks/mastery/mock_store.go -package=mock_mastery

// Store persists learner records. Implementations are synchronous and authoritative.
type Store interface {
	Get(ctx context.Context, learnerID string) (*Record, error)
	Put(ctx context.Context, learnerID string, record *Record) error
	List(ctx context.Context) ([]Record, error)
}
