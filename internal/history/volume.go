// ABOUTME: Weekly completed-set volume per muscle group.
// ABOUTME: Multi-group exercises add their full completed-set count to every group.
package history

import (
	"sort"
	"time"

	"github.com/harperreed/treino/internal/models"
)

// VolumeWindow is the trailing window counted as "this week".
const VolumeWindow = 7 * 24 * time.Hour

// GroupVolume is the completed-set total for one muscle group.
type GroupVolume struct {
	Group models.MuscleGroup `json:"group"`
	Total int                `json:"total"`
	Color string             `json:"color"`
}

// WeeklyVolume holds bar-chart and pie-chart ready lists of the same totals.
type WeeklyVolume struct {
	Bars []GroupVolume `json:"bars"`
	Pie  []GroupVolume `json:"pie"`
}

// ComputeWeeklyVolume sums completed sets per muscle group over workouts dated in [now-7d, now].
// Groups are ordered by total descending, then by name.
func ComputeWeeklyVolume(h models.History, now time.Time) WeeklyVolume {
	from := now.Add(-VolumeWindow)
	totals := make(map[models.MuscleGroup]int)

	for _, w := range h.All() {
		if w.Date.Before(from) || w.Date.After(now) {
			continue
		}
		for _, e := range w.Exercises {
			if len(e.MuscleGroups) == 0 {
				continue
			}
			n := e.CompletedSets()
			for _, g := range models.UniqueMuscleGroups(e.MuscleGroups) {
				totals[g] += n
			}
		}
	}

	bars := make([]GroupVolume, 0, len(totals))
	for g, total := range totals {
		bars = append(bars, GroupVolume{Group: g, Total: total, Color: g.Color()})
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Total != bars[j].Total {
			return bars[i].Total > bars[j].Total
		}
		return bars[i].Group < bars[j].Group
	})

	pie := make([]GroupVolume, len(bars))
	copy(pie, bars)
	return WeeklyVolume{Bars: bars, Pie: pie}
}

// Total returns the total for one group, or 0.
func (v WeeklyVolume) Total(g models.MuscleGroup) int {
	for _, b := range v.Bars {
		if b.Group == g {
			return b.Total
		}
	}
	return 0
}
