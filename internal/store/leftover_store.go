package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vbonduro/pantrychef/internal/domain"
)

const leftoverColumns = `id, user_id, name, category, quantity, from_meal, added_at, expires_at, status`

type LeftoverStore struct {
	db *sql.DB
}

func NewLeftoverStore(db *sql.DB) *LeftoverStore {
	return &LeftoverStore{db: db}
}

// Create inserts item, assigning a new id when it has none.
func (s *LeftoverStore) Create(ctx context.Context, item *domain.LeftoverItem) (*domain.LeftoverItem, error) {
	if err := insertLeftover(ctx, s.db, item); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, item.UserID, item.ID)
}

// CreateMany inserts items in one transaction. Either every item is stored or
// none is.
func (s *LeftoverStore) CreateMany(ctx context.Context, items []*domain.LeftoverItem) ([]*domain.LeftoverItem, error) {
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := insertLeftover(ctx, tx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := make([]*domain.LeftoverItem, 0, len(items))
	for _, item := range items {
		c, err := s.GetByID(ctx, item.UserID, item.ID)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

func insertLeftover(ctx context.Context, ex execer, item *domain.LeftoverItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = domain.StatusFresh
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = now()
	}

	var expiresAt any
	if item.ExpiresAt != nil {
		expiresAt = item.ExpiresAt.UTC()
	}

	_, err := ex.ExecContext(ctx, `
		INSERT INTO leftovers (`+leftoverColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.UserID, item.Name, string(item.Category), item.Quantity, item.FromMeal,
		item.AddedAt.UTC(), expiresAt, string(item.Status))
	if err != nil {
		return fmt.Errorf("failed to create leftover: %w", err)
	}
	return nil
}

func (s *LeftoverStore) GetByID(ctx context.Context, userID, id string) (*domain.LeftoverItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+leftoverColumns+` FROM leftovers WHERE user_id = ? AND id = ?
	`, userID, id)

	item, err := scanLeftover(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get leftover: %w", err)
	}

	return item, nil
}

// List returns the user's leftovers, newest first. An empty category matches
// every category.
func (s *LeftoverStore) List(ctx context.Context, userID string, category domain.Category) ([]*domain.LeftoverItem, error) {
	query := `SELECT ` + leftoverColumns + ` FROM leftovers WHERE user_id = ?`
	args := []any{userID}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY added_at DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leftovers: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var items []*domain.LeftoverItem
	for rows.Next() {
		item, err := scanLeftover(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leftover: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leftovers: %w", err)
	}

	return items, nil
}

func (s *LeftoverStore) UpdateStatus(ctx context.Context, userID, id string, status domain.Status) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE leftovers SET status = ? WHERE user_id = ? AND id = ?
	`, string(status), userID, id)
	if err != nil {
		return fmt.Errorf("failed to update leftover status: %w", err)
	}

	return requireAffected(result, "leftover")
}

func (s *LeftoverStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM leftovers WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete leftover: %w", err)
	}

	return requireAffected(result, "leftover")
}

// DeleteMany removes every listed leftover the user owns and reports how many
// rows went. Unknown ids are ignored.
func (s *LeftoverStore) DeleteMany(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM leftovers WHERE user_id = ? AND id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leftovers: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeftover(row rowScanner) (*domain.LeftoverItem, error) {
	item := &domain.LeftoverItem{}
	var category, status string
	var expiresAt sql.NullTime
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &category, &item.Quantity, &item.FromMeal,
		&item.AddedAt, &expiresAt, &status); err != nil {
		return nil, err
	}
	item.Category = domain.Category(category)
	item.Status = domain.Status(status)
	if expiresAt.Valid {
		t := expiresAt.Time
		item.ExpiresAt = &t
	}
	return item, nil
}

func requireAffected(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s %w", what, domain.ErrNotFound)
	}

	return nil
}

// now is the clock used when callers leave timestamps unset.
var now = func() time.Time { return time.Now().UTC() }
