package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vbonduro/pantrychef/internal/domain"
	"github.com/vbonduro/pantrychef/internal/metrics"
	"github.com/vbonduro/pantrychef/internal/recipe"
)

// leftoverRepository is the subset of store.LeftoverStore that PantryService requires.
type leftoverRepository interface {
	Create(ctx context.Context, item *domain.LeftoverItem) (*domain.LeftoverItem, error)
	CreateMany(ctx context.Context, items []*domain.LeftoverItem) ([]*domain.LeftoverItem, error)
	GetByID(ctx context.Context, userID, id string) (*domain.LeftoverItem, error)
	List(ctx context.Context, userID string, category domain.Category) ([]*domain.LeftoverItem, error)
	UpdateStatus(ctx context.Context, userID, id string, status domain.Status) error
	Delete(ctx context.Context, userID, id string) error
	DeleteMany(ctx context.Context, userID string, ids []string) (int64, error)
}

type recipeSynthesizer interface {
	Synthesize(items []domain.LeftoverItem, prefs recipe.Preferences) *recipe.Recipe
}

type PantryOptions struct {
	// ExpiringWindow is how close to expiry a leftover turns "expiring".
	ExpiringWindow time.Duration
	// DefaultExpiryDays applies when a new leftover has no shelf life of its own.
	DefaultExpiryDays int
}

type PantryService struct {
	leftovers  leftoverRepository
	synth      recipeSynthesizer
	window     time.Duration
	expiryDays int
	now        func() time.Time
	logger     *slog.Logger
}

func NewPantryService(leftovers leftoverRepository, synth recipeSynthesizer, opts PantryOptions, logger *slog.Logger) *PantryService {
	if opts.ExpiringWindow <= 0 {
		opts.ExpiringWindow = 24 * time.Hour
	}
	if opts.DefaultExpiryDays <= 0 {
		opts.DefaultExpiryDays = 3
	}
	return &PantryService{
		leftovers:  leftovers,
		synth:      synth,
		window:     opts.ExpiringWindow,
		expiryDays: opts.DefaultExpiryDays,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

// NewLeftover describes a leftover to put in the pantry. Zero ExpiryDays means
// the configured default.
type NewLeftover struct {
	Name       string          `json:"name"`
	Category   domain.Category `json:"category"`
	Quantity   string          `json:"quantity"`
	ExpiryDays int             `json:"expiry_days"`
}

func (s *PantryService) AddLeftover(ctx context.Context, userID string, in NewLeftover) (*domain.LeftoverItem, error) {
	item, err := s.prepareLeftover(userID, in, "")
	if err != nil {
		return nil, err
	}
	created, err := s.leftovers.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info("leftover added", "user_id", userID, "id", created.ID, "category", created.Category)
	return created, nil
}

func (s *PantryService) prepareLeftover(userID string, in NewLeftover, fromMeal string) (*domain.LeftoverItem, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	category := in.Category
	if category == "" {
		category = domain.CategoryOther
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}
	if in.ExpiryDays < 0 {
		return nil, fmt.Errorf("%w: expiry days must not be negative", ErrInvalidExpiry)
	}
	days := in.ExpiryDays
	if days == 0 {
		days = s.expiryDays
	}

	now := s.now()
	expires := now.AddDate(0, 0, days)
	return &domain.LeftoverItem{
		UserID:    userID,
		Name:      name,
		Category:  category,
		Quantity:  strings.TrimSpace(in.Quantity),
		FromMeal:  fromMeal,
		AddedAt:   now,
		ExpiresAt: &expires,
		Status:    domain.StatusAt(&expires, now, s.window),
	}, nil
}

// ListLeftovers returns the user's leftovers with statuses recomputed for the
// current time. Statuses that moved are written back.
func (s *PantryService) ListLeftovers(ctx context.Context, userID string, category domain.Category) ([]*domain.LeftoverItem, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	items, err := s.leftovers.List(ctx, userID, category)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expired := 0
	for _, item := range items {
		status := domain.StatusAt(item.ExpiresAt, now, s.window)
		if status == item.Status {
			continue
		}
		err := s.leftovers.UpdateStatus(ctx, userID, item.ID, status)
		if errors.Is(err, domain.ErrNotFound) {
			// Removed since the list was read.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to refresh status of leftover %s: %w", item.ID, err)
		}
		s.logger.Debug("leftover status changed", "id", item.ID, "from", item.Status, "to", status)
		if status == domain.StatusExpired {
			expired++
		}
		item.Status = status
	}
	metrics.LeftoversExpired(expired)

	return items, nil
}

func (s *PantryService) RemoveLeftover(ctx context.Context, userID, id string) error {
	if err := s.leftovers.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to remove leftover: %w", err)
	}
	s.logger.Info("leftover removed", "user_id", userID, "id", id)
	return nil
}

// RemoveLeftovers deletes a selection and reports how many were removed.
func (s *PantryService) RemoveLeftovers(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoLeftoversSelected
	}
	n, err := s.leftovers.DeleteMany(ctx, userID, ids)
	if err != nil {
		return 0, err
	}
	s.logger.Info("leftovers removed", "user_id", userID, "requested", len(ids), "removed", n)
	return n, nil
}

// CompleteMeal records the surplus portions of a finished meal as leftovers
// tagged with the meal's name. Every portion is validated first and they are
// stored together or not at all.
func (s *PantryService) CompleteMeal(ctx context.Context, userID, mealName string, surplus []NewLeftover) ([]*domain.LeftoverItem, error) {
	meal, err := cleanName(mealName)
	if err != nil {
		return nil, err
	}

	prepared := make([]*domain.LeftoverItem, 0, len(surplus))
	for _, in := range surplus {
		item, err := s.prepareLeftover(userID, in, meal)
		if err != nil {
			return nil, fmt.Errorf("leftover %q from meal: %w", in.Name, err)
		}
		prepared = append(prepared, item)
	}

	added, err := s.leftovers.CreateMany(ctx, prepared)
	if err != nil {
		return nil, err
	}

	s.logger.Info("meal completed", "user_id", userID, "meal", meal, "leftovers", len(added))
	return added, nil
}

type PantryStats struct {
	Fresh    int `json:"fresh"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
	Total    int `json:"total"`
}

func (s *PantryService) Stats(ctx context.Context, userID string) (*PantryStats, error) {
	items, err := s.ListLeftovers(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	stats := &PantryStats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case domain.StatusExpiring:
			stats.Expiring++
		case domain.StatusExpired:
			stats.Expired++
		default:
			stats.Fresh++
		}
	}
	return stats, nil
}

// GenerateRecipe synthesizes a recipe from the selected leftovers, in
// selection order. Duplicate ids are used once.
func (s *PantryService) GenerateRecipe(ctx context.Context, userID string, ids []string, prefs recipe.Preferences) (*recipe.Recipe, error) {
	if len(ids) == 0 {
		return nil, ErrNoLeftoversSelected
	}
	prefs = prefs.WithDefaults()
	if !prefs.Valid() {
		return nil, ErrInvalidPreferences
	}

	seen := make(map[string]bool, len(ids))
	items := make([]domain.LeftoverItem, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		item, err := s.leftovers.GetByID(ctx, userID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load leftover: %w", err)
		}
		if item == nil {
			return nil, fmt.Errorf("leftover %s: %w", id, ErrNotFound)
		}
		items = append(items, *item)
	}

	r := s.synth.Synthesize(items, prefs)
	metrics.RecipeSynthesized(string(r.Family), string(r.CookingMethod))
	s.logger.Info("recipe generated",
		"user_id", userID,
		"leftovers", len(items),
		"family", r.Family,
		"method", r.CookingMethod,
	)
	return r, nil
}
