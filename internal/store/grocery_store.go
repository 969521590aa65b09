package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/vbonduro/pantrychef/internal/domain"
)

const groceryColumns = `id, user_id, name, amount, category, from_recipe, completed, created_at, updated_at`

type GroceryStore struct {
	db *sql.DB
}

func NewGroceryStore(db *sql.DB) *GroceryStore {
	return &GroceryStore{db: db}
}

// Create inserts item, assigning a new id and timestamps when unset.
func (s *GroceryStore) Create(ctx context.Context, item *domain.GroceryItem) (*domain.GroceryItem, error) {
	if err := insertGrocery(ctx, s.db, item); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, item.UserID, item.ID)
}

// CreateMany inserts items in one transaction. Either every item is stored or
// none is.
func (s *GroceryStore) CreateMany(ctx context.Context, items []*domain.GroceryItem) ([]*domain.GroceryItem, error) {
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := insertGrocery(ctx, tx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := make([]*domain.GroceryItem, 0, len(items))
	for _, item := range items {
		c, err := s.GetByID(ctx, item.UserID, item.ID)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

func insertGrocery(ctx context.Context, ex execer, item *domain.GroceryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}

	_, err := ex.ExecContext(ctx, `
		INSERT INTO grocery_items (`+groceryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.UserID, item.Name, item.Amount, item.Category, item.FromRecipe, item.Completed,
		item.CreatedAt.UTC(), item.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create grocery item: %w", err)
	}
	return nil
}

func (s *GroceryStore) GetByID(ctx context.Context, userID, id string) (*domain.GroceryItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+groceryColumns+` FROM grocery_items WHERE user_id = ? AND id = ?
	`, userID, id)

	item, err := scanGrocery(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grocery item: %w", err)
	}

	return item, nil
}

// List returns the user's grocery items, newest first. search is a
// case-insensitive substring of the name, matched literally; empty search or
// category match all.
func (s *GroceryStore) List(ctx context.Context, userID, search, category string) ([]*domain.GroceryItem, error) {
	query := `SELECT ` + groceryColumns + ` FROM grocery_items WHERE user_id = ?`
	args := []any{userID}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	// SQLite's LOWER and LIKE only fold ASCII, so the name match runs here.
	needle := strings.ToLower(search)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grocery items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var items []*domain.GroceryItem
	for rows.Next() {
		item, err := scanGrocery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grocery item: %w", err)
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grocery items: %w", err)
	}

	return items, nil
}

func (s *GroceryStore) Update(ctx context.Context, item *domain.GroceryItem) error {
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now()
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE grocery_items SET name = ?, amount = ?, category = ?, completed = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`, item.Name, item.Amount, item.Category, item.Completed, item.UpdatedAt.UTC(), item.UserID, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update grocery item: %w", err)
	}

	return requireAffected(result, "grocery item")
}

func (s *GroceryStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM grocery_items WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", err)
	}

	return requireAffected(result, "grocery item")
}

// DeleteCompleted removes the user's checked-off items and reports how many.
func (s *GroceryStore) DeleteCompleted(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM grocery_items WHERE user_id = ? AND completed = 1
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete completed grocery items: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func scanGrocery(row rowScanner) (*domain.GroceryItem, error) {
	item := &domain.GroceryItem{}
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Amount, &item.Category, &item.FromRecipe,
		&item.Completed, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return item, nil
}
