// ABOUTME: Weekday and MuscleGroup tags used to bucket history and tag exercises.
// ABOUTME: Tag values match the persisted records so existing data round-trips.
package models

// Weekday is the training day a workout or sheet is planned for.
type Weekday string

const (
	Monday    Weekday = "Segunda"
	Tuesday   Weekday = "Terça"
	Wednesday Weekday = "Quarta"
	Thursday  Weekday = "Quinta"
	Friday    Weekday = "Sexta"
	Saturday  Weekday = "Sábado"
	Sunday    Weekday = "Domingo"
)

// NoWeekdayBucket is the history bucket for workouts saved without a weekday.
const NoWeekdayBucket = "SemDia"

// AllWeekdays returns the weekdays in training-week order.
func AllWeekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// IsValidWeekday reports whether s names a weekday.
func IsValidWeekday(s string) bool {
	for _, d := range AllWeekdays() {
		if string(d) == s {
			return true
		}
	}
	return false
}

// Bucket returns the history bucket key for the weekday.
func (w Weekday) Bucket() string {
	if w == "" {
		return NoWeekdayBucket
	}
	return string(w)
}

// MuscleGroup tags the muscles an exercise trains.
type MuscleGroup string

const (
	MuscleChest      MuscleGroup = "Peito"
	MuscleBack       MuscleGroup = "Costas"
	MuscleQuads      MuscleGroup = "Quadríceps"
	MuscleHamstrings MuscleGroup = "Posterior"
	MuscleShoulders  MuscleGroup = "Ombros"
	MuscleBiceps     MuscleGroup = "Bíceps"
	MuscleTriceps    MuscleGroup = "Tríceps"
	MuscleAbs        MuscleGroup = "Abdômen"
	MuscleGlutes     MuscleGroup = "Glúteos"
	MuscleCalves     MuscleGroup = "Panturrilha"
	MuscleForearms   MuscleGroup = "Antebraço"
	MuscleTraps      MuscleGroup = "Trapézio"
	MuscleLowerBack  MuscleGroup = "Lombar"
)

// DefaultMuscleColor is used for groups without an assigned chart colour.
const DefaultMuscleColor = "#000000"

// MuscleGroupColors maps muscle groups to their chart colours.
var MuscleGroupColors = map[MuscleGroup]string{
	MuscleChest:      "#FF8042",
	MuscleBack:       "#0088FE",
	MuscleQuads:      "#00C49F",
	MuscleHamstrings: "#8884D8",
	MuscleShoulders:  "#FFBB28",
	MuscleBiceps:     "#FF0000",
	MuscleTriceps:    "#00FF00",
	MuscleAbs:        "#0000FF",
	MuscleGlutes:     "#FF00FF",
	MuscleCalves:     "#00FFFF",
	MuscleForearms:   "#FF7F00",
	MuscleTraps:      "#7F00FF",
	MuscleLowerBack:  "#7F7F7F",
}

// AllMuscleGroups returns every muscle group tag.
func AllMuscleGroups() []MuscleGroup {
	return []MuscleGroup{
		MuscleChest, MuscleBack, MuscleQuads, MuscleHamstrings, MuscleShoulders,
		MuscleBiceps, MuscleTriceps, MuscleAbs, MuscleGlutes, MuscleCalves,
		MuscleForearms, MuscleTraps, MuscleLowerBack,
	}
}

// UniqueMuscleGroups drops repeated groups, keeping first-seen order.
func UniqueMuscleGroups(groups []MuscleGroup) []MuscleGroup {
	if len(groups) == 0 {
		return nil
	}
	seen := make(map[MuscleGroup]bool, len(groups))
	out := make([]MuscleGroup, 0, len(groups))
	for _, g := range groups {
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// IsValidMuscleGroup reports whether s names a muscle group.
func IsValidMuscleGroup(s string) bool {
	_, ok := MuscleGroupColors[MuscleGroup(s)]
	return ok
}

// Color returns the chart colour for the group.
func (g MuscleGroup) Color() string {
	if c, ok := MuscleGroupColors[g]; ok {
		return c
	}
	return DefaultMuscleColor
}
