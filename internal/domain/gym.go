package domain

import "strings"

// Defaults for gym entries posted without a name or category.
const (
	DefaultExerciseName = "Unknown Exercise"
	DefaultMuscleGroup  = "Other"
	DefaultMealName     = "Unknown Meal"
	DefaultMealType     = "Snack"
)

// Named ranges of the gym analytics.
const (
	GymRangeWeek  = "week"
	GymRangeMonth = "month"
)

const (
	gymRangeWeekDays    = 7
	gymRangeMonthDays   = 30
	defaultExerciseSets = 1
	defaultExerciseReps = 1
)

// GymExercise is one logged exercise of a gym day.
type GymExercise struct {
	ID          string  `json:"id"`
	DayID       string  `json:"-"`
	Name        string  `json:"name"`
	MuscleGroup string  `json:"muscle_group"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
}

// GymMeal is one logged meal of a gym day.
type GymMeal struct {
	ID       string  `json:"id"`
	DayID    string  `json:"-"`
	Name     string  `json:"name"`
	MealType string  `json:"meal_type"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// GymDay is the fitness log of one calendar day. A day that was never saved
// has no ID, a nil weight and zero counters.
type GymDay struct {
	ID           string        `json:"id,omitempty"`
	UserID       string        `json:"-"`
	Date         string        `json:"date"`
	Weight       *float64      `json:"weight"`
	WaterGlasses int           `json:"water_glasses"`
	Pushups      int           `json:"pushups"`
	Pullups      int           `json:"pullups"`
	Squads       int           `json:"squads"`
	Notes        string        `json:"notes"`
	Exercises    []GymExercise `json:"exercises"`
	Meals        []GymMeal     `json:"meals"`
}

// NewGymDay returns the empty log of date.
func NewGymDay(userID, date string) *GymDay {
	return &GymDay{UserID: userID, Date: date, Exercises: []GymExercise{}, Meals: []GymMeal{}}
}

// GymDayPatch carries the day fields a client sent. Nil fields keep their
// stored value.
type GymDayPatch struct {
	Weight       *float64 `json:"weight"`
	WaterGlasses *int     `json:"water_glasses"`
	Pushups      *int     `json:"pushups"`
	Pullups      *int     `json:"pullups"`
	Squads       *int     `json:"squads"`
	Notes        *string  `json:"notes"`
}

// Apply copies the set fields of p onto d.
func (d *GymDay) Apply(p GymDayPatch) {
	if p.Weight != nil {
		w := *p.Weight
		d.Weight = &w
	}
	if p.WaterGlasses != nil {
		d.WaterGlasses = *p.WaterGlasses
	}
	if p.Pushups != nil {
		d.Pushups = *p.Pushups
	}
	if p.Pullups != nil {
		d.Pullups = *p.Pullups
	}
	if p.Squads != nil {
		d.Squads = *p.Squads
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
}

// GymExerciseInput is a new exercise as posted. Blank text takes the default
// name and muscle group. Missing numbers mean one set of one rep with no
// weight.
type GymExerciseInput struct {
	Name        string   `json:"name"`
	MuscleGroup string   `json:"muscle_group"`
	Sets        *int     `json:"sets"`
	Reps        *int     `json:"reps"`
	Weight      *float64 `json:"weight"`
}

// Exercise resolves the defaults of the input.
func (in GymExerciseInput) Exercise() GymExercise {
	e := GymExercise{
		Name:        strings.TrimSpace(in.Name),
		MuscleGroup: strings.TrimSpace(in.MuscleGroup),
		Sets:        defaultExerciseSets,
		Reps:        defaultExerciseReps,
	}
	if e.Name == "" {
		e.Name = DefaultExerciseName
	}
	if e.MuscleGroup == "" {
		e.MuscleGroup = DefaultMuscleGroup
	}
	if in.Sets != nil {
		e.Sets = *in.Sets
	}
	if in.Reps != nil {
		e.Reps = *in.Reps
	}
	if in.Weight != nil {
		e.Weight = *in.Weight
	}
	return e
}

// GymMealInput is a new meal as posted. Missing numbers are zero.
type GymMealInput struct {
	Name     string   `json:"name"`
	MealType string   `json:"meal_type"`
	Calories *int     `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

// Meal resolves the defaults of the input.
func (in GymMealInput) Meal() GymMeal {
	m := GymMeal{Name: strings.TrimSpace(in.Name), MealType: strings.TrimSpace(in.MealType)}
	if m.Name == "" {
		m.Name = DefaultMealName
	}
	if m.MealType == "" {
		m.MealType = DefaultMealType
	}
	if in.Calories != nil {
		m.Calories = *in.Calories
	}
	if in.Protein != nil {
		m.Protein = *in.Protein
	}
	if in.Carbs != nil {
		m.Carbs = *in.Carbs
	}
	if in.Fat != nil {
		m.Fat = *in.Fat
	}
	return m
}

// GymGoal holds a user's daily and weekly fitness targets.
type GymGoal struct {
	TargetWater           int `json:"target_water"`
	TargetProtein         int `json:"target_protein"`
	TargetCalories        int `json:"target_calories"`
	TargetPushups         int `json:"target_pushups"`
	TargetPullups         int `json:"target_pullups"`
	TargetSquads          int `json:"target_squads"`
	TargetWorkoutsPerWeek int `json:"target_workouts_per_week"`
}

// DefaultGymGoal is used until a user saves their own targets.
func DefaultGymGoal() GymGoal {
	return GymGoal{
		TargetWater:           8,
		TargetProtein:         150,
		TargetCalories:        2500,
		TargetWorkoutsPerWeek: 3,
	}
}

// GymGoalPatch carries the targets a client sent.
type GymGoalPatch struct {
	TargetWater           *int `json:"target_water"`
	TargetProtein         *int `json:"target_protein"`
	TargetCalories        *int `json:"target_calories"`
	TargetPushups         *int `json:"target_pushups"`
	TargetPullups         *int `json:"target_pullups"`
	TargetSquads          *int `json:"target_squads"`
	TargetWorkoutsPerWeek *int `json:"target_workouts_per_week"`
}

// Merge returns g with the set fields of p applied.
func (g GymGoal) Merge(p GymGoalPatch) GymGoal {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&g.TargetWater, p.TargetWater)
	set(&g.TargetProtein, p.TargetProtein)
	set(&g.TargetCalories, p.TargetCalories)
	set(&g.TargetPushups, p.TargetPushups)
	set(&g.TargetPullups, p.TargetPullups)
	set(&g.TargetSquads, p.TargetSquads)
	set(&g.TargetWorkoutsPerWeek, p.TargetWorkoutsPerWeek)
	return g
}

// GymDayStats is one day of the analytics and history charts.
type GymDayStats struct {
	Date             string  `json:"date"`
	Weight           float64 `json:"weight"`
	WaterGlasses     int     `json:"water_glasses"`
	Pushups          int     `json:"pushups"`
	Pullups          int     `json:"pullups"`
	Squads           int     `json:"squads"`
	CaloriesConsumed int     `json:"calories_consumed"`
	ProteinConsumed  float64 `json:"protein_consumed"`
	CarbsConsumed    float64 `json:"carbs_consumed"`
	FatConsumed      float64 `json:"fat_consumed"`
	WorkoutCount     int     `json:"workout_count"`
}

// Stats totals the meals of the day. An unrecorded weight reads as 0.
func (d *GymDay) Stats() GymDayStats {
	s := GymDayStats{
		Date:         d.Date,
		WaterGlasses: d.WaterGlasses,
		Pushups:      d.Pushups,
		Pullups:      d.Pullups,
		Squads:       d.Squads,
		WorkoutCount: len(d.Exercises),
	}
	if d.Weight != nil {
		s.Weight = *d.Weight
	}
	for _, m := range d.Meals {
		s.CaloriesConsumed += m.Calories
		s.ProteinConsumed += m.Protein
		s.CarbsConsumed += m.Carbs
		s.FatConsumed += m.Fat
	}
	return s
}

// GymRangeDays returns how many days before today a named analytics range
// reaches back. ok is false for an unknown name.
func GymRangeDays(name string) (days int, ok bool) {
	switch name {
	case GymRangeWeek:
		return gymRangeWeekDays, true
	case GymRangeMonth:
		return gymRangeMonthDays, true
	}
	return 0, false
}
