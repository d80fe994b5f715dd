package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
)

type notificationRepository struct {
	db dbtx
}

func NewNotificationRepository(db dbtx) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedOn = time.Now()

	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (id, user_id, title, message, attributes, read, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query, n.ID, n.UserID, n.Title, n.Message, attrs, n.Read, n.CreatedOn)
	return err
}

func (r *notificationRepository) List(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	query := `SELECT id, user_id, title, message, attributes, read, created_on
	          FROM notifications WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &attrs, &n.Read, &n.CreatedOn); err != nil {
			return nil, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, err
			}
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	query := `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}
