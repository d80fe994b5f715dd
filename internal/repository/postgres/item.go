package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
)

type itemRepository struct {
	db dbtx
}

func NewItemRepository(db dbtx) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, owner_id, title, COALESCE(description, ''), COALESCE(category, ''), COALESCE(location, ''), images, price_per_day, available, created_on, updated_on`

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	query := `INSERT INTO items (id, owner_id, title, description, category, location, images, price_per_day, available, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, it.ID, it.OwnerID, it.Title, it.Description, it.Category,
		it.Location, pq.Array(it.Images), it.PricePerDay, it.Available, now, now)
	return err
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *itemRepository) GetForUpdate(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *itemRepository) scanOne(row *sql.Row) (*domain.Item, error) {
	it := &domain.Item{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.Category, &it.Location,
		pq.Array(&it.Images), &it.PricePerDay, &it.Available, &createdOn, &updatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	it.CreatedOn = createdOn.Format("2006-01-02")
	it.UpdatedOn = updatedOn.Format("2006-01-02")
	return it, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET title = $1, description = $2, category = $3, location = $4, images = $5,
	          price_per_day = $6, available = $7, updated_on = $8 WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query, it.Title, it.Description, it.Category, it.Location,
		pq.Array(it.Images), it.PricePerDay, it.Available, time.Now(), it.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) SetAvailable(ctx context.Context, id string, available bool) error {
	query := `UPDATE items SET available = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) Search(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	args := []any{}
	idx := 1

	if f.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", idx, idx)
		args = append(args, "%"+f.Query+"%")
		idx++
	}
	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, f.Category)
		idx++
	}
	if f.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", idx)
		args = append(args, "%"+f.Location+"%")
		idx++
	}
	if f.MaxPrice > 0 {
		query += fmt.Sprintf(" AND price_per_day <= $%d", idx)
		args = append(args, f.MaxPrice)
		idx++
	}
	if f.OnlyAvailable {
		query += " AND available = true"
	}
	query += " ORDER BY created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanList(rows)
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanList(rows)
}

func (r *itemRepository) scanList(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.Category, &it.Location,
			pq.Array(&it.Images), &it.PricePerDay, &it.Available, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		it.CreatedOn = createdOn.Format("2006-01-02")
		it.UpdatedOn = updatedOn.Format("2006-01-02")
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *itemRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM items WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}
