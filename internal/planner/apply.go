// ABOUTME: Applying sheets and past weekday workouts to the in-progress workout.
// ABOUTME: Applied exercises are clones with fresh ids and every set incomplete.
package planner

import (
	"github.com/harperreed/treino/internal/models"
)

// ApplySheet replaces the workout's exercises with clones of the sheet's.
// The workout keeps its own id and date and takes the sheet's name and weekday.
func ApplySheet(w *models.Workout, sheet *models.WorkoutSheet) {
	w.Name = sheet.Name
	w.Weekday = sheet.Weekday
	w.Exercises = models.CloneExercises(sheet.Exercises)
}

// ApplyWeekdayHistory loads the last workout saved for day into w.
// It reports false and leaves w untouched when that bucket is empty.
func ApplyWeekdayHistory(w *models.Workout, h models.History, day models.Weekday) bool {
	last, ok := h.Latest(day.Bucket())
	if !ok {
		return false
	}
	w.Name = last.Name
	w.Weekday = day
	w.Exercises = models.CloneExercises(last.Exercises)
	return true
}
