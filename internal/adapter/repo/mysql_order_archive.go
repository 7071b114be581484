package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
	"github.com/minh2003vt/OkiMart/internal/usecase"
)

// MySQLOrderArchive keeps a durable copy of completed orders outside the
// state store. Checkout treats it as best-effort: a failed insert is
// logged by the caller and never blocks the purchase.
type MySQLOrderArchive struct{ db *sql.DB }

func NewMySQLOrderArchive(db *sql.DB) *MySQLOrderArchive { return &MySQLOrderArchive{db: db} }

func (r *MySQLOrderArchive) Archive(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO orders (id,user_id,total,items_json,created_at)
VALUES (?,?,?,?,?)
`, o.ID, o.UserID, o.Total.String(), items, o.CreatedAt)
	return err
}

func (r *MySQLOrderArchive) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,user_id,total,items_json,created_at
FROM orders WHERE id=?`, id)

	var (
		o         domain.Order
		totalStr  string
		itemsJSON []byte
	)
	if err := row.Scan(&o.ID, &o.UserID, &totalStr, &itemsJSON, &o.CreatedAt); err != nil {
		return nil, err
	}
	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return nil, err
	}
	o.Total = total
	if err := json.Unmarshal(itemsJSON, &o.Lines); err != nil {
		return nil, err
	}
	return &o, nil
}

var _ usecase.OrderArchive = (*MySQLOrderArchive)(nil)
