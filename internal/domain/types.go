package domain

import (
	"strings"
	"time"
)

// Category groups leftovers for recipe family selection.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryProteins   Category = "proteins"
	CategoryGrains     Category = "grains"
	CategoryDairy      Category = "dairy"
	CategoryCondiments Category = "condiments"
	CategoryOther      Category = "other"
)

// Categories lists every known leftover category in display order.
var Categories = []Category{
	CategoryVegetables,
	CategoryProteins,
	CategoryGrains,
	CategoryDairy,
	CategoryCondiments,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusFresh    Status = "fresh"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// StatusAt derives a leftover's freshness at now. Items without an expiry are
// always fresh; items within window of their expiry are expiring.
func StatusAt(expiresAt *time.Time, now time.Time, window time.Duration) Status {
	if expiresAt == nil {
		return StatusFresh
	}
	if !now.Before(*expiresAt) {
		return StatusExpired
	}
	if expiresAt.Sub(now) <= window {
		return StatusExpiring
	}
	return StatusFresh
}

type LeftoverItem struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Name      string     `json:"name"`
	Category  Category   `json:"category"`
	Quantity  string     `json:"quantity,omitempty"`
	FromMeal  string     `json:"from_meal,omitempty"`
	AddedAt   time.Time  `json:"added_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Status    Status     `json:"status"`
}

type GroceryItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Name       string    `json:"name"`
	Amount     string    `json:"amount"`
	Category   string    `json:"category"`
	FromRecipe string    `json:"from_recipe,omitempty"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GroceryCategories lists the shelf categories a grocery item can carry.
var GroceryCategories = []string{
	"Vegetables", "Fruits", "Protein", "Dairy", "Grains", "Pantry",
	"Spices", "Fresh", "Bakery", "Nuts", "Other",
}

// GroceryCategory returns the canonical spelling of c, matching
// case-insensitively.
func GroceryCategory(c string) (string, bool) {
	for _, known := range GroceryCategories {
		if strings.EqualFold(c, known) {
			return known, true
		}
	}
	return "", false
}
