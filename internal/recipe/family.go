package recipe

import "github.com/vbonduro/pantrychef/internal/domain"

// Family is a coarse grouping of cooking techniques chosen from the categories
// of the selected leftovers.
type Family string

const (
	FamilyProteinVegetable Family = "protein-vegetable"
	FamilyGrainVegetable   Family = "grain-vegetable"
	FamilyProtein          Family = "protein"
	FamilyVegetable        Family = "vegetable"
	FamilyFusion           Family = "fusion"
)

// CategorySet is the distinct set of categories across a leftover selection.
type CategorySet map[domain.Category]bool

func CategoriesOf(items []domain.LeftoverItem) CategorySet {
	set := make(CategorySet, len(items))
	for _, item := range items {
		set[item.Category] = true
	}
	return set
}

// Has reports whether every given category is present.
func (s CategorySet) Has(categories ...domain.Category) bool {
	for _, c := range categories {
		if !s[c] {
			return false
		}
	}
	return true
}

type familyRule struct {
	family  Family
	matches func(CategorySet) bool
}

func requires(categories ...domain.Category) func(CategorySet) bool {
	return func(s CategorySet) bool { return s.Has(categories...) }
}

// familyRules is evaluated top to bottom and the first match wins. A selection
// of proteins and grains therefore lands in the protein family, and grains on
// their own fall through to fusion.
var familyRules = []familyRule{
	{FamilyProteinVegetable, requires(domain.CategoryProteins, domain.CategoryVegetables)},
	{FamilyGrainVegetable, requires(domain.CategoryGrains, domain.CategoryVegetables)},
	{FamilyProtein, requires(domain.CategoryProteins)},
	{FamilyVegetable, requires(domain.CategoryVegetables)},
}

// SelectFamily picks the cooking family for a category set.
func SelectFamily(set CategorySet) Family {
	for _, rule := range familyRules {
		if rule.matches(set) {
			return rule.family
		}
	}
	return FamilyFusion
}
