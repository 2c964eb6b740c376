package database

import (
	"context"

	"github.com/rs/zerolog"
)

// Mutation is one staged write. Concrete mutation types belong to the
// store that knows how to apply them.
type Mutation interface {
	// Describe returns a short label such as "insert authors" for logs.
	Describe() string
}

// Applier executes a batch of mutations atomically and reports the number
// of rows affected. Implementations must apply mutations in slice order
// inside a single transaction.
type Applier interface {
	Apply(ctx context.Context, mutations []Mutation) (int64, error)
}

// CommitResult is the outcome of a successful UnitOfWork.Commit.
type CommitResult struct {
	RowsAffected int64
	Mutations    int
}

// Changed reports whether at least one row was affected.
func (r CommitResult) Changed() bool {
	return r.RowsAffected > 0
}

// UnitOfWork buffers mutations until Commit sends them to the store in one
// transaction. It is owned by a single caller and is not safe for
// concurrent use.
type UnitOfWork struct {
	applier Applier
	pending []Mutation
	logger  zerolog.Logger
}

// NewUnitOfWork binds a new, empty unit of work to applier.
func NewUnitOfWork(applier Applier, logger zerolog.Logger) *UnitOfWork {
	return &UnitOfWork{
		applier: applier,
		logger:  logger,
	}
}

// Stage appends m to the pending list. Mutations are applied in call order.
func (u *UnitOfWork) Stage(m Mutation) {
	u.pending = append(u.pending, m)
}

// Pending returns a copy of the staged mutations.
func (u *UnitOfWork) Pending() []Mutation {
	out := make([]Mutation, len(u.pending))
	copy(out, u.pending)
	return out
}

// Len returns the number of staged mutations.
func (u *UnitOfWork) Len() int {
	return len(u.pending)
}

// Discard drops every staged mutation without touching the store.
func (u *UnitOfWork) Discard() {
	u.pending = nil
}

// Commit applies all staged mutations atomically. On success the pending
// list is cleared; on failure it is kept and the store error is returned
// unchanged.
func (u *UnitOfWork) Commit(ctx context.Context) (CommitResult, error) {
	if len(u.pending) == 0 {
		return CommitResult{}, nil
	}

	batch := u.Pending()
	rows, err := u.applier.Apply(ctx, batch)
	if err != nil {
		return CommitResult{}, err
	}

	u.pending = nil
	u.logger.Debug().
		Int("mutations", len(batch)).
		Int64("rows_affected", rows).
		Msg("unit of work committed")

	return CommitResult{RowsAffected: rows, Mutations: len(batch)}, nil
}
