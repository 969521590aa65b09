package recipe

type TimePreference string

const (
	TimeShort  TimePreference = "short"
	TimeMedium TimePreference = "medium"
	TimeLong   TimePreference = "long"
)

type HealthFocus string

const (
	HealthHealthy   HealthFocus = "healthy"
	HealthBalanced  HealthFocus = "balanced"
	HealthDelicious HealthFocus = "delicious"
)

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyMedium      Difficulty = "medium"
	DifficultyChallenging Difficulty = "challenging"
)

// Preferences are the cooking dimensions chosen for a single synthesis
// request. They are never persisted.
type Preferences struct {
	Time       TimePreference `json:"time_preference"`
	Health     HealthFocus    `json:"health_focus"`
	Difficulty Difficulty     `json:"difficulty"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Time:       TimeMedium,
		Health:     HealthBalanced,
		Difficulty: DifficultyEasy,
	}
}

// WithDefaults fills unset fields from DefaultPreferences.
func (p Preferences) WithDefaults() Preferences {
	d := DefaultPreferences()
	if p.Time == "" {
		p.Time = d.Time
	}
	if p.Health == "" {
		p.Health = d.Health
	}
	if p.Difficulty == "" {
		p.Difficulty = d.Difficulty
	}
	return p
}

// Valid reports whether every field holds a known value.
func (p Preferences) Valid() bool {
	switch p.Time {
	case TimeShort, TimeMedium, TimeLong:
	default:
		return false
	}
	switch p.Health {
	case HealthHealthy, HealthBalanced, HealthDelicious:
	default:
		return false
	}
	switch p.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyChallenging:
	default:
		return false
	}
	return true
}

// DifficultyLabel maps the preference straight to its display label.
func DifficultyLabel(d Difficulty) string {
	switch d {
	case DifficultyMedium:
		return "Medium"
	case DifficultyChallenging:
		return "Hard"
	default:
		return "Easy"
	}
}
