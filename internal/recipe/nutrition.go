package recipe

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness behind nutrition estimates. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// lockedSource makes a *rand.Rand safe for a Synthesizer shared across
// request goroutines.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a goroutine-safe Source. A zero seed seeds from the clock.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// Nutrition is a per-serving estimate. The numbers are deliberately
// approximate; only the ranges below are stable.
type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// MaxHealthyCalories caps the estimate when the health focus is healthy.
const MaxHealthyCalories = 400

type macroRange struct {
	min, span int
}

func (r macroRange) draw(src Source) int {
	return src.Intn(r.span) + r.min
}

type nutritionProfile struct {
	// calorieScale is applied to the per-item calorie bump, in tenths.
	calorieScale        int
	protein, carbs, fat macroRange
}

var nutritionProfiles = map[HealthFocus]nutritionProfile{
	HealthHealthy: {
		calorieScale: 8,
		protein:      macroRange{20, 25},
		carbs:        macroRange{30, 35},
		fat:          macroRange{8, 12},
	},
	HealthDelicious: {
		calorieScale: 13,
		protein:      macroRange{15, 20},
		carbs:        macroRange{35, 40},
		fat:          macroRange{15, 25},
	},
	HealthBalanced: {
		calorieScale: 10,
		protein:      macroRange{15, 20},
		carbs:        macroRange{25, 30},
		fat:          macroRange{10, 15},
	},
}

const (
	baseCaloriesMin  = 250
	baseCaloriesSpan = 150
	caloriesPerItem  = 50
)

// EstimateNutrition draws a bounded estimate for itemCount leftovers.
func EstimateNutrition(src Source, h HealthFocus, itemCount int) Nutrition {
	profile, ok := nutritionProfiles[h]
	if !ok {
		profile = nutritionProfiles[HealthBalanced]
	}

	base := src.Intn(baseCaloriesSpan) + baseCaloriesMin
	bump := itemCount * caloriesPerItem * profile.calorieScale / 10
	calories := base + bump
	if h == HealthHealthy && calories > MaxHealthyCalories {
		calories = MaxHealthyCalories
	}

	return Nutrition{
		Calories: calories,
		Protein:  profile.protein.draw(src),
		Carbs:    profile.carbs.draw(src),
		Fat:      profile.fat.draw(src),
	}
}
