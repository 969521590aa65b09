// Package recipe turns a selection of pantry leftovers and cooking
// preferences into a ready-to-cook recipe.
package recipe

import (
	"strings"

	"github.com/vbonduro/pantrychef/internal/domain"
)

type Ingredient struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Leftover bool   `json:"leftover"`
}

type Recipe struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Family        Family       `json:"family"`
	CookingMethod Method       `json:"cooking_method"`
	Ingredients   []Ingredient `json:"ingredients"`
	Instructions  []string     `json:"instructions"`
	CookTime      string       `json:"cook_time"`
	Difficulty    string       `json:"difficulty"`
	Nutrition     Nutrition    `json:"nutrition"`
	Tags          []string     `json:"tags"`
	UsesLeftovers []string     `json:"uses_leftovers"`
	Image         string       `json:"image"`
	Servings      int          `json:"servings"`
}

// Supplements returns the ingredients the cook has to bring beyond the
// leftovers.
func (r *Recipe) Supplements() []Ingredient {
	var out []Ingredient
	for _, ing := range r.Ingredients {
		if !ing.Leftover {
			out = append(out, ing)
		}
	}
	return out
}

type Synthesizer struct {
	rand Source
}

func NewSynthesizer(src Source) *Synthesizer {
	if src == nil {
		src = NewSource(0)
	}
	return &Synthesizer{rand: src}
}

// Synthesize builds a recipe from items. Callers must pass at least one item;
// every item shows up in Ingredients and UsesLeftovers in input order.
func (s *Synthesizer) Synthesize(items []domain.LeftoverItem, prefs Preferences) *Recipe {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	family := SelectFamily(CategoriesOf(items))
	v := selectVariant(family, prefs.Time)
	supplements := v.Supplements(prefs.Health)

	ingredients := make([]Ingredient, 0, len(items)+len(supplements))
	for _, item := range items {
		amount := item.Quantity
		if amount == "" {
			amount = "1"
		}
		ingredients = append(ingredients, Ingredient{
			Name:     item.Name,
			Amount:   amount,
			Unit:     "portion",
			Category: string(item.Category),
			Leftover: true,
		})
	}
	for _, name := range supplements {
		ingredients = append(ingredients, Ingredient{
			Name:     name,
			Amount:   "to",
			Unit:     "taste",
			Category: "pantry",
		})
	}

	return &Recipe{
		Name:          v.Title(strings.Join(names, ", ")),
		Description:   Description(prefs.Health),
		Family:        family,
		CookingMethod: v.method,
		Ingredients:   ingredients,
		Instructions:  Instructions(v.method, names),
		CookTime:      CookTime(v.method, prefs.Time),
		Difficulty:    DifficultyLabel(prefs.Difficulty),
		Nutrition:     EstimateNutrition(s.rand, prefs.Health, len(items)),
		Tags:          Tags(v.method, prefs),
		UsesLeftovers: names,
		Image:         Image(v.method, prefs.Health),
		Servings:      servings(len(items)),
	}
}

func servings(itemCount int) int {
	n := (itemCount + 1) / 2
	if n < 2 {
		return 2
	}
	return n
}
