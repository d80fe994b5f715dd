package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
)

type creditTransactionRepository struct {
	db dbtx
}

func NewCreditTransactionRepository(db dbtx) repository.CreditTransactionRepository {
	return &creditTransactionRepository{db: db}
}

func (r *creditTransactionRepository) Create(ctx context.Context, tx *domain.CreditTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.CreatedOn = time.Now()
	query := `INSERT INTO credit_transactions (id, user_id, amount, type, related_booking_id, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, tx.ID, tx.UserID, tx.Amount, tx.Type, tx.RelatedBookingID, tx.Description, tx.CreatedOn)
	return err
}

func (r *creditTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.CreditTransaction, error) {
	query := `SELECT id, user_id, amount, type, related_booking_id, COALESCE(description, ''), created_on
	          FROM credit_transactions WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.CreditTransaction
	for rows.Next() {
		var tx domain.CreditTransaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Type, &tx.RelatedBookingID, &tx.Description, &tx.CreatedOn); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
