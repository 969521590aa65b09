package recipe

import "strings"

const leftoversPlaceholder = "{leftovers}"

var instructionTemplates = map[Method][]string{
	MethodStirFry: {
		"Heat oil in a large pan or wok over medium-high heat",
		"Add garlic and ginger, stir-fry for 30 seconds until fragrant",
		"Add your leftover {leftovers} to the pan",
		"Stir-fry for 3-4 minutes until heated through",
		"Season with soy sauce, sesame oil, salt and pepper",
		"Serve hot over rice or noodles",
	},
	MethodBowl: {
		"Arrange your leftover ingredients in a large bowl",
		"Drizzle with olive oil and lemon juice",
		"Season with herbs, salt, and pepper",
		"Toss gently to combine all flavors",
		"Let sit for 5 minutes to allow flavors to meld",
		"Serve at room temperature or slightly warmed",
	},
	MethodWrap: {
		"Warm tortillas in a dry pan or microwave",
		"Layer lettuce and tomato on each tortilla",
		"Add your leftover {leftovers}",
		"Drizzle with your favorite sauce",
		"Roll tightly and slice in half",
		"Serve immediately",
	},
	MethodRoast: {
		"Preheat oven to 400°F (200°C)",
		"Toss leftover {leftovers} with olive oil",
		"Season with herbs, garlic, salt, and pepper",
		"Spread on a baking sheet in a single layer",
		"Roast for 15-20 minutes until heated through and slightly crispy",
		"Serve hot as a side or main dish",
	},
	MethodSaute: {
		"Heat oil in a large pan over medium heat",
		"Add onion and garlic, cook until softened",
		"Add your leftover {leftovers}",
		"Pour in a splash of broth to prevent sticking",
		"Cook for 5-7 minutes, stirring occasionally",
		"Season with herbs and serve hot",
	},
}

// Instructions renders the method's template with the leftover names joined
// by " and ". Methods without a template of their own use the sauté steps.
func Instructions(m Method, names []string) []string {
	tmpl, ok := instructionTemplates[m]
	if !ok {
		tmpl = instructionTemplates[MethodSaute]
	}
	joined := strings.Join(names, " and ")
	steps := make([]string, len(tmpl))
	for i, step := range tmpl {
		steps[i] = strings.ReplaceAll(step, leftoversPlaceholder, joined)
	}
	return steps
}

type cookTimes struct {
	short, medium, long string
}

var cookTimeTable = map[Method]cookTimes{
	MethodStirFry:    {"10 mins", "15 mins", "20 mins"},
	MethodBowl:       {"5 mins", "10 mins", "15 mins"},
	MethodWrap:       {"3 mins", "5 mins", "8 mins"},
	MethodRoast:      {"15 mins", "25 mins", "45 mins"},
	MethodSaute:      {"8 mins", "15 mins", "25 mins"},
	MethodQuickSaute: {"5 mins", "8 mins", "12 mins"},
	MethodSlowCook:   {"30 mins", "45 mins", "90 mins"},
	MethodAssembly:   {"3 mins", "5 mins", "8 mins"},
	MethodBake:       {"20 mins", "35 mins", "60 mins"},
	MethodBraise:     {"25 mins", "40 mins", "75 mins"},
	MethodSear:       {"5 mins", "8 mins", "12 mins"},
}

func CookTime(m Method, t TimePreference) string {
	row, ok := cookTimeTable[m]
	if !ok {
		row = cookTimeTable[MethodSaute]
	}
	switch t {
	case TimeShort:
		return row.short
	case TimeLong:
		return row.long
	default:
		return row.medium
	}
}

var (
	healthyImages = map[Method]string{
		MethodStirFry: "🥗", MethodBowl: "🥙", MethodWrap: "🌯", MethodRoast: "🥕",
		MethodSaute: "🥬", MethodQuickSaute: "🥬", MethodSlowCook: "🍲",
		MethodAssembly: "🥗", MethodBake: "🥦", MethodBraise: "🍲", MethodSear: "🥕",
	}
	deliciousImages = map[Method]string{
		MethodStirFry: "🍜", MethodBowl: "🍝", MethodWrap: "🌯", MethodRoast: "🍖",
		MethodSaute: "🍳", MethodQuickSaute: "🍳", MethodSlowCook: "🍲",
		MethodAssembly: "🍽️", MethodBake: "🧄", MethodBraise: "🍖", MethodSear: "🥩",
	}
	balancedImages = map[Method]string{
		MethodStirFry: "🍛", MethodBowl: "🍲", MethodWrap: "🌯", MethodRoast: "🍽️",
		MethodSaute: "🍳", MethodQuickSaute: "🍳", MethodSlowCook: "🍲",
		MethodAssembly: "🍽️", MethodBake: "🥘", MethodBraise: "🍲", MethodSear: "🍳",
	}
)

// Image picks the decorative emoji for a method and health focus.
func Image(m Method, h HealthFocus) string {
	table, fallback := balancedImages, "🍽️"
	switch h {
	case HealthHealthy:
		table, fallback = healthyImages, "🥗"
	case HealthDelicious:
		table = deliciousImages
	}
	if img, ok := table[m]; ok {
		return img
	}
	return fallback
}

func Tags(m Method, p Preferences) []string {
	tags := []string{"leftover-friendly", "sustainable", string(m)}
	switch p.Health {
	case HealthHealthy:
		tags = append(tags, "healthy", "nutritious")
	case HealthDelicious:
		tags = append(tags, "indulgent", "flavorful")
	}
	switch p.Time {
	case TimeShort:
		tags = append(tags, "quick", "easy")
	case TimeLong:
		tags = append(tags, "slow-cooked", "rich")
	}
	return tags
}

func Description(h HealthFocus) string {
	switch h {
	case HealthHealthy:
		return "A nutritious and wholesome recipe that makes the most of your leftovers while keeping you healthy!"
	case HealthDelicious:
		return "An indulgent and flavorful recipe that transforms your leftovers into something truly special!"
	default:
		return "A delicious way to transform your leftovers into a fresh, exciting meal!"
	}
}
