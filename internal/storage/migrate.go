// ABOUTME: Data migration between storage backends.
// ABOUTME: Copies every record from source to destination through the export format.

package storage

import (
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Workouts     int
	Sheets       int
	Cycles       int
	Measurements int
	Users        int
	Current      bool
}

// MigrateData copies all data from src to dst storage.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	if err := dst.ImportData(data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}

	// Current user is not part of the export; carry it explicitly.
	user, err := src.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("read current user: %w", err)
	}
	if user != nil {
		if err := dst.SaveCurrentUser(user); err != nil {
			return nil, fmt.Errorf("write current user: %w", err)
		}
	}

	return &MigrateSummary{
		Workouts:     data.History.Len(),
		Sheets:       len(data.Sheets),
		Cycles:       len(data.Cycles),
		Measurements: len(data.Measurements),
		Users:        len(data.Users),
		Current:      data.CurrentWorkout != nil,
	}, nil
}
