package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
)

type userRepository struct {
	db dbtx
}

func NewUserRepository(db dbtx) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	query := `INSERT INTO users (id, name, email, password_hash, image, credits, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Image, u.Credits, now, now)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, name, email, password_hash, COALESCE(image, ''), credits, created_on, updated_on
	                   FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, name, email, password_hash, COALESCE(image, ''), credits, created_on, updated_on
	                   FROM users WHERE email = $1`, email)
}

func (r *userRepository) GetForUpdate(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, name, email, password_hash, COALESCE(image, ''), credits, created_on, updated_on
	                   FROM users WHERE id = $1 FOR UPDATE`, id)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Image, &u.Credits, &createdOn, &updatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) AdjustCredits(ctx context.Context, id string, delta int) error {
	query := `UPDATE users SET credits = credits + $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, delta, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name = $1, email = $2, image = $3, updated_on = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.Image, time.Now(), u.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
