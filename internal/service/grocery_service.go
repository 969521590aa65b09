package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vbonduro/pantrychef/internal/domain"
	"github.com/vbonduro/pantrychef/internal/listparse"
	"github.com/vbonduro/pantrychef/internal/metrics"
	"github.com/vbonduro/pantrychef/internal/pricing"
	"github.com/vbonduro/pantrychef/internal/recipe"
)

// groceryRepository is the subset of store.GroceryStore that GroceryService requires.
type groceryRepository interface {
	Create(ctx context.Context, item *domain.GroceryItem) (*domain.GroceryItem, error)
	CreateMany(ctx context.Context, items []*domain.GroceryItem) ([]*domain.GroceryItem, error)
	GetByID(ctx context.Context, userID, id string) (*domain.GroceryItem, error)
	List(ctx context.Context, userID, search, category string) ([]*domain.GroceryItem, error)
	Update(ctx context.Context, item *domain.GroceryItem) error
	Delete(ctx context.Context, userID, id string) error
	DeleteCompleted(ctx context.Context, userID string) (int64, error)
}

type GroceryService struct {
	items   groceryRepository
	catalog pricing.PriceCatalog
	now     func() time.Time
	logger  *slog.Logger
}

func NewGroceryService(items groceryRepository, catalog pricing.PriceCatalog, logger *slog.Logger) *GroceryService {
	return &GroceryService{
		items:   items,
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

type NewGrocery struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

// GroceryUpdate carries the fields of an edit. Nil fields are left alone.
type GroceryUpdate struct {
	Name     *string `json:"name"`
	Amount   *string `json:"amount"`
	Category *string `json:"category"`
}

func normalizeCategory(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return "Other", nil
	}
	known, ok := domain.GroceryCategory(c)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	return known, nil
}

func (s *GroceryService) prepare(userID string, in NewGrocery, fromRecipe string) (*domain.GroceryItem, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	category, err := normalizeCategory(in.Category)
	if err != nil {
		return nil, err
	}
	amount := strings.TrimSpace(in.Amount)
	if amount == "" {
		amount = "1"
	}
	now := s.now()
	return &domain.GroceryItem{
		UserID:     userID,
		Name:       name,
		Amount:     amount,
		Category:   category,
		FromRecipe: fromRecipe,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ListGroceries returns the user's list, newest first. category "All" or empty
// disables the category filter.
func (s *GroceryService) ListGroceries(ctx context.Context, userID, search, category string) ([]*domain.GroceryItem, error) {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	if category != "" {
		known, ok := domain.GroceryCategory(category)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
		}
		category = known
	}
	return s.items.List(ctx, userID, strings.TrimSpace(search), category)
}

func (s *GroceryService) AddGrocery(ctx context.Context, userID string, in NewGrocery) (*domain.GroceryItem, error) {
	item, err := s.prepare(userID, in, "")
	if err != nil {
		return nil, err
	}
	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.Info("grocery item added", "user_id", userID, "id", created.ID, "category", created.Category)
	return created, nil
}

// AddGroceries validates every item, then stores them all or none.
func (s *GroceryService) AddGroceries(ctx context.Context, userID string, in []NewGrocery) ([]*domain.GroceryItem, error) {
	return s.addAll(ctx, userID, in, "")
}

// AddFromRecipe puts the ingredients the cook still has to buy on the list.
// Leftover ingredients are skipped.
func (s *GroceryService) AddFromRecipe(ctx context.Context, userID, recipeName string, ingredients []recipe.Ingredient) ([]*domain.GroceryItem, error) {
	name, err := cleanName(recipeName)
	if err != nil {
		return nil, err
	}

	var in []NewGrocery
	for _, ing := range ingredients {
		if ing.Leftover {
			continue
		}
		category, ok := domain.GroceryCategory(ing.Category)
		if !ok {
			category = "Other"
		}
		in = append(in, NewGrocery{
			Name:     ing.Name,
			Amount:   strings.TrimSpace(ing.Amount + " " + ing.Unit),
			Category: category,
		})
	}
	return s.addAll(ctx, userID, in, name)
}

// ImportList adds every entry of a pasted or transcribed list. Unknown
// categories fall back to "Other" rather than rejecting the import.
func (s *GroceryService) ImportList(ctx context.Context, userID, text string) ([]*domain.GroceryItem, error) {
	entries := listparse.Parse(text)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: list has no items", ErrInvalidName)
	}

	in := make([]NewGrocery, len(entries))
	for i, e := range entries {
		category, ok := domain.GroceryCategory(e.Category)
		if !ok {
			category = "Other"
		}
		in[i] = NewGrocery{Name: e.Name, Amount: e.Amount, Category: category}
	}
	return s.addAll(ctx, userID, in, "")
}

func (s *GroceryService) addAll(ctx context.Context, userID string, in []NewGrocery, fromRecipe string) ([]*domain.GroceryItem, error) {
	prepared := make([]*domain.GroceryItem, 0, len(in))
	for i, g := range in {
		item, err := s.prepare(userID, g, fromRecipe)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		prepared = append(prepared, item)
	}

	created, err := s.items.CreateMany(ctx, prepared)
	if err != nil {
		return nil, err
	}

	s.logger.Info("grocery items added", "user_id", userID, "count", len(created), "from_recipe", fromRecipe)
	return created, nil
}

func (s *GroceryService) get(ctx context.Context, userID, id string) (*domain.GroceryItem, error) {
	item, err := s.items.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("grocery item %s: %w", id, ErrNotFound)
	}
	return item, nil
}

// ToggleGrocery sets the completion flag, or flips it when completed is nil.
func (s *GroceryService) ToggleGrocery(ctx context.Context, userID, id string, completed *bool) (*domain.GroceryItem, error) {
	item, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if completed != nil {
		item.Completed = *completed
	} else {
		item.Completed = !item.Completed
	}
	item.UpdatedAt = s.now()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to toggle grocery item: %w", err)
	}
	return item, nil
}

func (s *GroceryService) UpdateGrocery(ctx context.Context, userID, id string, upd GroceryUpdate) (*domain.GroceryItem, error) {
	item, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name, err := cleanName(*upd.Name)
		if err != nil {
			return nil, err
		}
		item.Name = name
	}
	if upd.Amount != nil {
		item.Amount = strings.TrimSpace(*upd.Amount)
		if item.Amount == "" {
			item.Amount = "1"
		}
	}
	if upd.Category != nil {
		category, err := normalizeCategory(*upd.Category)
		if err != nil {
			return nil, err
		}
		item.Category = category
	}

	item.UpdatedAt = s.now()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update grocery item: %w", err)
	}
	return item, nil
}

func (s *GroceryService) RemoveGrocery(ctx context.Context, userID, id string) error {
	if err := s.items.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to remove grocery item: %w", err)
	}
	return nil
}

func (s *GroceryService) ClearCompleted(ctx context.Context, userID string) (int64, error) {
	n, err := s.items.DeleteCompleted(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("completed grocery items cleared", "user_id", userID, "removed", n)
	return n, nil
}

// ComparePrices ranks stores for the items still to buy.
func (s *GroceryService) ComparePrices(ctx context.Context, userID string) (*pricing.Comparison, error) {
	items, err := s.items.List(ctx, userID, "", "")
	if err != nil {
		return nil, err
	}

	pending := make([]domain.GroceryItem, 0, len(items))
	for _, item := range items {
		if !item.Completed {
			pending = append(pending, *item)
		}
	}

	c := pricing.Compare(pending, s.catalog)
	metrics.PricesCompared(c.BestStore, len(pending)-c.ItemCount)
	s.logger.Info("prices compared",
		"user_id", userID,
		"pending", len(pending),
		"matched", c.ItemCount,
		"best_store", c.BestStore,
		"total_savings", c.TotalSavings,
	)
	return c, nil
}

type Suggestion struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Reason    string   `json:"reason"`
	BestPrice *float64 `json:"best_price,omitempty"`
	BestStore string   `json:"best_store,omitempty"`
	// PriceLabel reads like "From €1.19"; empty without a catalog price.
	PriceLabel string `json:"price_label,omitempty"`
}

var shoppingSuggestions = []Suggestion{
	{Name: "Bananas", Category: "Fruits", Reason: "Great source of potassium"},
	{Name: "Greek Yogurt", Category: "Dairy", Reason: "High protein breakfast"},
	{Name: "Spinach", Category: "Vegetables", Reason: "Iron and vitamins"},
	{Name: "Salmon", Category: "Protein", Reason: "Omega-3 fatty acids"},
	{Name: "Quinoa", Category: "Grains", Reason: "Complete protein grain"},
	{Name: "Avocados", Category: "Fruits", Reason: "Healthy fats"},
	{Name: "Sweet Potatoes", Category: "Vegetables", Reason: "Complex carbohydrates"},
	{Name: "Almonds", Category: "Nuts", Reason: "Healthy snack option"},
	{Name: "Olive Oil", Category: "Pantry", Reason: "Healthy cooking oil"},
	{Name: "Blueberries", Category: "Fruits", Reason: "Antioxidants"},
	{Name: "Oats", Category: "Grains", Reason: "Fiber-rich breakfast"},
	{Name: "Broccoli", Category: "Vegetables", Reason: "Vitamin C and fiber"},
}

// MaxSuggestions caps how many suggestions are offered at once.
const MaxSuggestions = 6

var currencySymbols = map[string]string{"EUR": "€", "USD": "$", "GBP": "£"}

// Suggestions offers healthy staples the user does not have on the list yet,
// priced from the catalog where possible.
func (s *GroceryService) Suggestions(ctx context.Context, userID string) ([]Suggestion, error) {
	items, err := s.items.List(ctx, userID, "", "")
	if err != nil {
		return nil, err
	}
	onList := make(map[string]bool, len(items))
	for _, item := range items {
		onList[strings.ToLower(item.Name)] = true
	}

	out := make([]Suggestion, 0, MaxSuggestions)
	for _, sg := range shoppingSuggestions {
		if len(out) == MaxSuggestions {
			break
		}
		if onList[strings.ToLower(sg.Name)] {
			continue
		}
		if entry, ok := s.catalog.Lookup(sg.Name); ok && len(entry.Prices) > 0 {
			best := entry.Best()
			price := best.Price
			sg.BestPrice = &price
			sg.BestStore = best.Store
			sg.PriceLabel = fmt.Sprintf("From %s%.2f", currencySymbol(best.Currency), price)
		}
		out = append(out, sg)
	}
	return out, nil
}

func currencySymbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	if code == "" {
		return ""
	}
	return code + " "
}
