// ABOUTME: Past occurrences of an exercise, used to enrich newly added exercises.
// ABOUTME: Returned snapshots are deep copies, detached from stored history.
package history

import (
	"sort"

	"github.com/harperreed/treino/internal/models"
)

// ExerciseHistoryFor returns a snapshot for every past workout that contains an exercise
// named name with at least one completed set, oldest first.
func ExerciseHistoryFor(h models.History, name string) []models.ExerciseHistory {
	var out []models.ExerciseHistory
	for _, w := range h.All() {
		for _, e := range w.Exercises {
			if e.Name != name || e.CompletedSets() == 0 {
				continue
			}
			out = append(out, models.ExerciseHistory{
				Date: w.Date,
				Sets: models.CopySets(e.Sets),
			})
			break
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// RecentWorkouts returns up to limit workouts across all buckets, newest first.
// A limit of 0 returns all.
func RecentWorkouts(h models.History, limit int) []models.Workout {
	all := h.All()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}
