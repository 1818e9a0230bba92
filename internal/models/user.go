// ABOUTME: User profile record.
// ABOUTME: Holds no credentials; identity is trusted from the caller.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a local profile.
type User struct {
	ID               uuid.UUID         `json:"id" yaml:"id"`
	Username         string            `json:"username" yaml:"username"`
	Email            string            `json:"email" yaml:"email"`
	CreatedAt        time.Time         `json:"createdAt" yaml:"createdAt"`
	SavedWorkouts    []uuid.UUID       `json:"savedWorkouts,omitempty" yaml:"savedWorkouts,omitempty"`
	BodyMeasurements []BodyMeasurement `json:"bodyMeasurements,omitempty" yaml:"bodyMeasurements,omitempty"`
	WorkoutSheets    []WorkoutSheet    `json:"workoutSheets,omitempty" yaml:"workoutSheets,omitempty"`
}

// NewUser creates a user profile.
func NewUser(username, email string) *User {
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	}
}

// HasSaved reports whether the sheet is in the user's saved list.
func (u *User) HasSaved(sheetID uuid.UUID) bool {
	for _, id := range u.SavedWorkouts {
		if id == sheetID {
			return true
		}
	}
	return false
}
