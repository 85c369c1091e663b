package validation

import (
	"pomofocus/internal/domain"
)

const (
	maxGymCount     = 100000
	maxGymWeight    = 1000
	maxGymNotes     = 2000
	maxGymEntryName = 100
)

// ValidateGymDate checks the required day a gym entry is logged under
func (v *Validator) ValidateGymDate(date string) error {
	ve := NewValidationError()
	if date == "" {
		ve.AddRequiredError("date")
	} else if !v.IsValidDate(date) {
		ve.AddInvalidFormatError("date", date, "YYYY-MM-DD")
	}
	return ve.OrNil()
}

func (v *Validator) checkCount(ve *ValidationError, field string, n int) {
	if !v.IsInRange(n, 0, maxGymCount) {
		ve.AddInvalidRangeError(field, n, 0, maxGymCount)
	}
}

func (v *Validator) checkAmount(ve *ValidationError, field string, f float64, max int) {
	if f < 0 || f > float64(max) {
		ve.AddInvalidRangeError(field, f, 0, max)
	}
}

func (v *Validator) checkEntryName(ve *ValidationError, field, value string) {
	if !v.IsValidStringLength(value, 1, maxGymEntryName) {
		ve.AddInvalidLengthError(field, value, 1, maxGymEntryName)
	}
}

// ValidateGymDayPatch bounds the counters of a day
func (v *Validator) ValidateGymDayPatch(p domain.GymDayPatch) error {
	ve := NewValidationError()
	if p.Weight != nil {
		v.checkAmount(ve, "weight", *p.Weight, maxGymWeight)
	}
	counts := []struct {
		field string
		value *int
	}{
		{"water_glasses", p.WaterGlasses},
		{"pushups", p.Pushups},
		{"pullups", p.Pullups},
		{"squads", p.Squads},
	}
	for _, c := range counts {
		if c.value != nil {
			v.checkCount(ve, c.field, *c.value)
		}
	}
	if p.Notes != nil && len([]rune(*p.Notes)) > maxGymNotes {
		ve.AddInvalidLengthError("notes", *p.Notes, 0, maxGymNotes)
	}
	return ve.OrNil()
}

// ValidateGymExercise checks an exercise after defaults are applied
func (v *Validator) ValidateGymExercise(e domain.GymExercise) error {
	ve := NewValidationError()
	v.checkEntryName(ve, "name", e.Name)
	v.checkEntryName(ve, "muscle_group", e.MuscleGroup)
	v.checkCount(ve, "sets", e.Sets)
	v.checkCount(ve, "reps", e.Reps)
	v.checkAmount(ve, "weight", e.Weight, maxGymWeight)
	return ve.OrNil()
}

// ValidateGymMeal checks a meal after defaults are applied
func (v *Validator) ValidateGymMeal(m domain.GymMeal) error {
	ve := NewValidationError()
	v.checkEntryName(ve, "name", m.Name)
	v.checkEntryName(ve, "meal_type", m.MealType)
	v.checkCount(ve, "calories", m.Calories)
	v.checkAmount(ve, "protein", m.Protein, maxGymCount)
	v.checkAmount(ve, "carbs", m.Carbs, maxGymCount)
	v.checkAmount(ve, "fat", m.Fat, maxGymCount)
	return ve.OrNil()
}

// ValidateGymGoal bounds every target
func (v *Validator) ValidateGymGoal(g domain.GymGoal) error {
	ve := NewValidationError()
	v.checkCount(ve, "target_water", g.TargetWater)
	v.checkCount(ve, "target_protein", g.TargetProtein)
	v.checkCount(ve, "target_calories", g.TargetCalories)
	v.checkCount(ve, "target_pushups", g.TargetPushups)
	v.checkCount(ve, "target_pullups", g.TargetPullups)
	v.checkCount(ve, "target_squads", g.TargetSquads)
	if !v.IsInRange(g.TargetWorkoutsPerWeek, 0, 14) {
		ve.AddInvalidRangeError("target_workouts_per_week", g.TargetWorkoutsPerWeek, 0, 14)
	}
	return ve.OrNil()
}
