// ABOUTME: Per-exercise max-weight progression derived from workout history.
// ABOUTME: Only completed sets count; single-point exercises are not selectable.
package history

import (
	"sort"
	"time"

	"github.com/harperreed/treino/internal/models"
)

// Point is the heaviest completed set of an exercise in one workout.
type Point struct {
	Date      time.Time `json:"date"`
	MaxWeight float64   `json:"maxWeight"`
}

// Series is the progression of one exercise, ascending by date.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Progression groups completed sets by exercise name and returns one point per workout.
// Workouts with no completed sets for the exercise, or whose max weight is 0, add nothing.
// Two points at the same instant keep the heavier weight.
func Progression(h models.History) map[string][]Point {
	byName := make(map[string]map[int64]Point)

	for _, w := range h.All() {
		best := make(map[string]float64)
		for _, e := range w.Exercises {
			completed := false
			top := 0.0
			for _, s := range e.Sets {
				if !s.Completed {
					continue
				}
				completed = true
				if v := s.WeightValue(); v > top {
					top = v
				}
			}
			if !completed || top == 0 {
				continue
			}
			if top > best[e.Name] {
				best[e.Name] = top
			}
		}

		key := w.Date.UnixNano()
		for name, top := range best {
			points, ok := byName[name]
			if !ok {
				points = make(map[int64]Point)
				byName[name] = points
			}
			if p, ok := points[key]; !ok || top > p.MaxWeight {
				points[key] = Point{Date: w.Date, MaxWeight: top}
			}
		}
	}

	out := make(map[string][]Point, len(byName))
	for name, points := range byName {
		list := make([]Point, 0, len(points))
		for _, p := range points {
			list = append(list, p)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
		out[name] = list
	}
	return out
}

// SelectableExercises returns the exercises with at least two points, sorted by name.
func SelectableExercises(h models.History) []Series {
	var out []Series
	for name, points := range Progression(h) {
		if len(points) < 2 {
			continue
		}
		out = append(out, Series{Name: name, Points: points})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ProgressionFor returns the progression of a single exercise.
func ProgressionFor(h models.History, name string) []Point {
	return Progression(h)[name]
}
