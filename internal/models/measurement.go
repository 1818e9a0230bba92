// ABOUTME: BodyMeasurement model with optional anthropometric fields.
// ABOUTME: Field metadata drives CLI flags, display units, and MCP input parsing.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MeasurementField names one numeric field of a BodyMeasurement.
type MeasurementField string

const (
	FieldWeight      MeasurementField = "weight"
	FieldHeight      MeasurementField = "height"
	FieldBodyFat     MeasurementField = "body_fat"
	FieldChest       MeasurementField = "chest"
	FieldWaist       MeasurementField = "waist"
	FieldHips        MeasurementField = "hips"
	FieldBicepsLeft  MeasurementField = "biceps_left"
	FieldBicepsRight MeasurementField = "biceps_right"
	FieldThighLeft   MeasurementField = "thigh_left"
	FieldThighRight  MeasurementField = "thigh_right"
	FieldCalfLeft    MeasurementField = "calf_left"
	FieldCalfRight   MeasurementField = "calf_right"
)

// MeasurementUnits maps fields to their display units.
var MeasurementUnits = map[MeasurementField]string{
	FieldWeight:      "kg",
	FieldHeight:      "cm",
	FieldBodyFat:     "%",
	FieldChest:       "cm",
	FieldWaist:       "cm",
	FieldHips:        "cm",
	FieldBicepsLeft:  "cm",
	FieldBicepsRight: "cm",
	FieldThighLeft:   "cm",
	FieldThighRight:  "cm",
	FieldCalfLeft:    "cm",
	FieldCalfRight:   "cm",
}

// AllMeasurementFields returns the fields in display order.
func AllMeasurementFields() []MeasurementField {
	return []MeasurementField{
		FieldWeight, FieldHeight, FieldBodyFat, FieldChest, FieldWaist, FieldHips,
		FieldBicepsLeft, FieldBicepsRight, FieldThighLeft, FieldThighRight,
		FieldCalfLeft, FieldCalfRight,
	}
}

// IsValidMeasurementField checks if a string is a valid measurement field.
func IsValidMeasurementField(s string) bool {
	_, ok := MeasurementUnits[MeasurementField(s)]
	return ok
}

// BodyMeasurement is a dated set of body measurements.
type BodyMeasurement struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Date        time.Time `json:"date" yaml:"date"`
	Weight      *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Height      *float64  `json:"height,omitempty" yaml:"height,omitempty"`
	BodyFat     *float64  `json:"bodyFat,omitempty" yaml:"bodyFat,omitempty"`
	Chest       *float64  `json:"chest,omitempty" yaml:"chest,omitempty"`
	Waist       *float64  `json:"waist,omitempty" yaml:"waist,omitempty"`
	Hips        *float64  `json:"hips,omitempty" yaml:"hips,omitempty"`
	BicepsLeft  *float64  `json:"bicepsLeft,omitempty" yaml:"bicepsLeft,omitempty"`
	BicepsRight *float64  `json:"bicepsRight,omitempty" yaml:"bicepsRight,omitempty"`
	ThighLeft   *float64  `json:"thighLeft,omitempty" yaml:"thighLeft,omitempty"`
	ThighRight  *float64  `json:"thighRight,omitempty" yaml:"thighRight,omitempty"`
	CalfLeft    *float64  `json:"calfLeft,omitempty" yaml:"calfLeft,omitempty"`
	CalfRight   *float64  `json:"calfRight,omitempty" yaml:"calfRight,omitempty"`
	Notes       string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewBodyMeasurement creates an empty measurement dated now.
func NewBodyMeasurement() *BodyMeasurement {
	return &BodyMeasurement{
		ID:   uuid.New(),
		Date: time.Now(),
	}
}

// WithDate sets a custom date.
func (m *BodyMeasurement) WithDate(t time.Time) *BodyMeasurement {
	m.Date = t
	return m
}

// WithNotes sets notes on the measurement.
func (m *BodyMeasurement) WithNotes(notes string) *BodyMeasurement {
	m.Notes = notes
	return m
}

// WithField sets one numeric field. Unknown fields are ignored.
func (m *BodyMeasurement) WithField(field MeasurementField, value float64) *BodyMeasurement {
	if p := m.fieldPtr(field); p != nil {
		v := value
		*p = &v
	}
	return m
}

// Field returns a field's value if it was recorded.
func (m *BodyMeasurement) Field(field MeasurementField) (float64, bool) {
	p := m.fieldPtr(field)
	if p == nil || *p == nil {
		return 0, false
	}
	return **p, true
}

// IsEmpty reports whether no numeric field was recorded.
func (m *BodyMeasurement) IsEmpty() bool {
	for _, f := range AllMeasurementFields() {
		if _, ok := m.Field(f); ok {
			return false
		}
	}
	return true
}

func (m *BodyMeasurement) fieldPtr(field MeasurementField) **float64 {
	switch field {
	case FieldWeight:
		return &m.Weight
	case FieldHeight:
		return &m.Height
	case FieldBodyFat:
		return &m.BodyFat
	case FieldChest:
		return &m.Chest
	case FieldWaist:
		return &m.Waist
	case FieldHips:
		return &m.Hips
	case FieldBicepsLeft:
		return &m.BicepsLeft
	case FieldBicepsRight:
		return &m.BicepsRight
	case FieldThighLeft:
		return &m.ThighLeft
	case FieldThighRight:
		return &m.ThighRight
	case FieldCalfLeft:
		return &m.CalfLeft
	case FieldCalfRight:
		return &m.CalfRight
	}
	return nil
}
