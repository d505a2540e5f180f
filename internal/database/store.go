package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store groups the repositories over one connection or one transaction
type Store struct {
	db   *sqlx.DB
	inTx bool

	Users      *UserRepository
	Facts      *FactRepository
	SavedFacts *SavedFactRepository
	Activities *ActivityRepository
	Statistics *StatisticsRepository
}

// NewStore creates a store backed by db
func NewStore(db *sqlx.DB) *Store {
	return newStore(db, db, false)
}

func newStore(db *sqlx.DB, ext sqlx.ExtContext, inTx bool) *Store {
	return &Store{
		db:         db,
		inTx:       inTx,
		Users:      NewUserRepository(ext),
		Facts:      NewFactRepository(ext),
		SavedFacts: NewSavedFactRepository(ext),
		Activities: NewActivityRepository(ext),
		Statistics: NewStatisticsRepository(ext),
	}
}

// WithTx runs fn with a store bound to a single transaction. The transaction is
// committed when fn returns nil and rolled back otherwise. Calling WithTx on a
// transactional store reuses the running transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(newStore(s.db, tx, true)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func isPostgres(ext sqlx.ExtContext) bool {
	return ext.DriverName() == "postgres"
}
