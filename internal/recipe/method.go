package recipe

import "fmt"

// Method is a concrete cooking technique.
type Method string

const (
	MethodStirFry    Method = "stir-fry"
	MethodQuickSaute Method = "quick-sauté"
	MethodSlowCook   Method = "slow-cook"
	MethodAssembly   Method = "assembly"
	MethodBake       Method = "bake"
	MethodWrap       Method = "wrap"
	MethodBraise     Method = "braise"
	MethodSear       Method = "sear"
	MethodRoast      Method = "roast"
	MethodSaute      Method = "sauté"
	MethodBowl       Method = "bowl"
)

// variant is one row of a family's plan: the method, a title pattern taking
// the joined leftover names, and the two supplemental ingredient lists.
type variant struct {
	method  Method
	title   string
	healthy []string
	rich    []string
}

func (v variant) Title(names string) string {
	return fmt.Sprintf(v.title, names)
}

// Supplements returns the healthy list for a healthy focus and the rich list
// for balanced and delicious.
func (v variant) Supplements(h HealthFocus) []string {
	src := v.rich
	if h == HealthHealthy {
		src = v.healthy
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

type familyPlan struct {
	short, medium, long variant
}

func (p familyPlan) pick(t TimePreference) variant {
	switch t {
	case TimeShort:
		return p.short
	case TimeLong:
		return p.long
	default:
		return p.medium
	}
}

var (
	quickScramble = variant{
		method:  MethodQuickSaute,
		title:   "Quick %s Scramble",
		healthy: []string{"olive oil", "herbs", "lemon", "salt & pepper"},
		rich:    []string{"butter", "garlic", "cream", "cheese"},
	}
	stirFry = variant{
		method:  MethodStirFry,
		title:   "%s Stir-Fry",
		healthy: []string{"ginger", "garlic", "low-sodium soy sauce", "sesame oil"},
		rich:    []string{"garlic", "soy sauce", "oyster sauce", "sesame oil"},
	}
	slowCookedStew = variant{
		method:  MethodSlowCook,
		title:   "Slow-Cooked %s Stew",
		healthy: []string{"vegetable broth", "tomatoes", "herbs", "onion"},
		rich:    []string{"wine", "butter", "cream", "bacon"},
	}
	quickBowl = variant{
		method:  MethodAssembly,
		title:   "Quick %s Bowl",
		healthy: []string{"lemon juice", "olive oil", "herbs", "seeds"},
		rich:    []string{"dressing", "cheese", "nuts", "dried fruit"},
	}
	casserole = variant{
		method:  MethodBake,
		title:   "Baked %s Casserole",
		healthy: []string{"vegetable broth", "herbs", "nutritional yeast"},
		rich:    []string{"cheese", "cream", "butter", "breadcrumbs"},
	}
	wrap = variant{
		method:  MethodWrap,
		title:   "%s Wrap",
		healthy: []string{"lettuce", "tomato", "avocado", "whole grain tortilla"},
		rich:    []string{"cheese", "sauce", "crispy toppings", "regular tortilla"},
	}
	braised = variant{
		method:  MethodBraise,
		title:   "Braised %s with Sauce",
		healthy: []string{"herbs", "vegetables", "broth", "wine"},
		rich:    []string{"cream", "butter", "wine", "rich sauce"},
	}
	flashSeared = variant{
		method:  MethodSear,
		title:   "Flash-Seared %s",
		healthy: []string{"olive oil", "lemon", "herbs", "garlic"},
		rich:    []string{"butter", "cream", "cheese", "nuts"},
	}
	roastedMedley = variant{
		method:  MethodRoast,
		title:   "Roasted %s Medley",
		healthy: []string{"olive oil", "herbs", "balsamic", "seeds"},
		rich:    []string{"olive oil", "herbs", "cheese", "nuts"},
	}
	fusion = variant{
		method:  MethodSaute,
		title:   "Creative %s Fusion",
		healthy: []string{"onion", "garlic", "herbs", "vegetable broth"},
		rich:    []string{"onion", "garlic", "cream", "wine"},
	}
)

// familyPlans maps each family to its short/medium/long variants. Only the
// protein-vegetable family distinguishes medium from long.
var familyPlans = map[Family]familyPlan{
	FamilyProteinVegetable: {short: quickScramble, medium: stirFry, long: slowCookedStew},
	FamilyGrainVegetable:   {short: quickBowl, medium: casserole, long: casserole},
	FamilyProtein:          {short: wrap, medium: braised, long: braised},
	FamilyVegetable:        {short: flashSeared, medium: roastedMedley, long: roastedMedley},
	FamilyFusion:           {short: fusion, medium: fusion, long: fusion},
}

func selectVariant(f Family, t TimePreference) variant {
	plan, ok := familyPlans[f]
	if !ok {
		plan = familyPlans[FamilyFusion]
	}
	return plan.pick(t)
}

// SelectMethod returns the cooking method a family uses for a time budget.
func SelectMethod(f Family, t TimePreference) Method {
	return selectVariant(f, t).method
}
