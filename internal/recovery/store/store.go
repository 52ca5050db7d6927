package store

import (
	"context"
	"errors"

	"github.com/lockstead/recovery/internal/recovery/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. The recovery engine itself never reaches into ambient
// storage state; services receive a Store explicitly and the verifier reads
// records through it.
type Store interface {
	Questions() Questions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g. replacing
	// the full question set). The caller MUST call Commit() or Rollback()
	// on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Questions interface {
	// ListQuestions returns all question records ordered by created_at
	// ascending (id as tie-break). The ordering must be stable and
	// reproducible; recovery matches by question identity, not position,
	// but presentation order has to be deterministic.
	ListQuestions(ctx context.Context) ([]domain.SecurityQuestion, error)

	// GetQuestionByID returns a single question record.
	GetQuestionByID(ctx context.Context, id string) (domain.SecurityQuestion, error)

	// CreateQuestion inserts a new record (id is provided by app via ULID).
	CreateQuestion(ctx context.Context, q domain.SecurityQuestion) error

	// UpdateAnswerHash replaces the stored hash and bumps updated_at.
	// Only explicit re-registration goes through here.
	UpdateAnswerHash(ctx context.Context, id string, newHash string) error

	// DeleteAllQuestions clears the set, used when the full set is replaced
	// inside a transaction.
	DeleteAllQuestions(ctx context.Context) error

	// CountQuestions returns the number of registered questions.
	CountQuestions(ctx context.Context) (int, error)
}
