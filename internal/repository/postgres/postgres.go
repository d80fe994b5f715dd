package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lendloop-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx. Every
// repository is written against it so the same code runs standalone or
// inside Store.ExecTx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repos
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		Repos: newRepos(db),
	}
}

func newRepos(db dbtx) repository.Repos {
	return repository.Repos{
		Users:         NewUserRepository(db),
		Items:         NewItemRepository(db),
		Bookings:      NewBookingRepository(db),
		Credits:       NewCreditTransactionRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// ExecTx runs fn with repositories bound to a single transaction. A non-nil
// error from fn rolls everything back.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(newRepos(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			// Keep the fn error inspectable; callers match on it to pick
			// failure kinds.
			return errors.Join(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
