// internal/orderapi/store.go
//
// Order storage for the local order API.
//
// Context
// -------
// Accepted orders go to a Store.  Two implementations exist:
//
// MemoryStore, a bounded LRU, is the default when no DSN is configured.
// SQLStore writes one row per order to MySQL via sqlx:
//
//	pizza_order (id CHAR(36) PK, full_name, size, toppings JSON, created_at)
//
// Toppings are stored as a JSON array so the row keeps selection order.
package orderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/pizzaorder/internal/cache"
)

// Order is one accepted order.
type Order struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Size      string    `json:"size"`
	Toppings  []string  `json:"toppings"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists accepted orders.
type Store interface {
	Save(ctx context.Context, o Order) error
	Recent(ctx context.Context, limit int) ([]Order, error)
}

/*──────────────────────────── memory store ─────────────────────────────────*/

// MemoryStore keeps the most recent orders in an LRU.
type MemoryStore struct {
	lru *cache.LRU[uuid.UUID, Order]
}

// NewMemoryStore keeps at most capacity orders.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{lru: cache.New[uuid.UUID, Order](capacity)}
}

func (m *MemoryStore) Save(_ context.Context, o Order) error {
	m.lru.Add(o.ID, o)
	return nil
}

func (m *MemoryStore) Recent(_ context.Context, limit int) ([]Order, error) {
	return m.lru.Values(limit), nil
}

/*──────────────────────────── SQL store ────────────────────────────────────*/

// SQLStore writes orders to MySQL.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open connection pool.
func NewSQLStore(db *sqlx.DB) *SQLStore { return &SQLStore{db: db} }

type orderRow struct {
	ID        string    `db:"id"`
	FullName  string    `db:"full_name"`
	Size      string    `db:"size"`
	Toppings  []byte    `db:"toppings"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *SQLStore) Save(ctx context.Context, o Order) error {
	toppings, err := json.Marshal(o.Toppings)
	if err != nil {
		return fmt.Errorf("encode toppings: %w", err)
	}

	const q = `INSERT INTO pizza_order (id, full_name, size, toppings, created_at)
	           VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q,
		o.ID.String(), o.FullName, o.Size, toppings, o.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert order %s: %w", o.ID, err)
	}
	return nil
}

func (s *SQLStore) Recent(ctx context.Context, limit int) ([]Order, error) {
	const q = `SELECT id, full_name, size, toppings, created_at
	             FROM pizza_order
	         ORDER BY created_at DESC
	            LIMIT ?`

	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, fmt.Errorf("select recent orders: %w", err)
	}

	out := make([]Order, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("order id %q: %w", r.ID, err)
		}
		var toppings []string
		if err := json.Unmarshal(r.Toppings, &toppings); err != nil {
			return nil, fmt.Errorf("order %s toppings: %w", r.ID, err)
		}
		out = append(out, Order{
			ID:        id,
			FullName:  r.FullName,
			Size:      r.Size,
			Toppings:  toppings,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}
