// ABOUTME: Workout counts over the last calendar month and year.
// ABOUTME: Lookbacks use calendar subtraction clamped to the end of the target month.
package history

import (
	"time"

	"github.com/harperreed/treino/internal/models"
)

// Counts is the number of saved workouts in each lookback window.
type Counts struct {
	LastMonth int `json:"lastMonth"`
	LastYear  int `json:"lastYear"`
	Total     int `json:"total"`
}

// WorkoutCounts counts workouts dated in [now-1 month, now] and [now-1 year, now].
func WorkoutCounts(h models.History, now time.Time) Counts {
	monthAgo := models.AddMonths(now, -1)
	yearAgo := models.AddMonths(now, -12)

	var c Counts
	for _, list := range h {
		for _, w := range list {
			c.Total++
			if w.Date.After(now) {
				continue
			}
			if !w.Date.Before(monthAgo) {
				c.LastMonth++
			}
			if !w.Date.Before(yearAgo) {
				c.LastYear++
			}
		}
	}
	return c
}
