// ABOUTME: Meso-cycle CRUD with referential checks against sheets.
// ABOUTME: Start and end dates are stored as given; their order is not enforced.
package planner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/treino/internal/models"
)

func cycleID(c models.MesoCycle) uuid.UUID { return c.ID }

// ListCycles returns every cycle.
func (m *Manager) ListCycles() ([]models.MesoCycle, error) {
	return m.repo.Cycles()
}

// GetCycle finds a cycle by id or unique id prefix.
func (m *Manager) GetCycle(idOrPrefix string) (*models.MesoCycle, error) {
	cycles, err := m.repo.Cycles()
	if err != nil {
		return nil, err
	}
	i, err := findByPrefix(cycles, cycleID, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return &cycles[i], nil
}

// SaveCycle inserts or replaces a cycle by id.
// It needs a name and at least one sheet, and every referenced sheet must exist.
func (m *Manager) SaveCycle(c *models.MesoCycle) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: cycle name is required", ErrValidation)
	}
	if len(c.WorkoutSheetIDs) == 0 {
		return fmt.Errorf("%w: select at least one sheet", ErrValidation)
	}

	sheets, err := m.repo.Sheets()
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(sheets))
	for _, s := range sheets {
		known[s.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(c.WorkoutSheetIDs))
	ids := make([]uuid.UUID, 0, len(c.WorkoutSheetIDs))
	for _, id := range c.WorkoutSheetIDs {
		if !known[id] {
			return fmt.Errorf("%w: sheet %s", ErrNotFound, id)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	c.WorkoutSheetIDs = ids

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = m.now()
	}
	if c.StartDate.IsZero() {
		c.StartDate = m.now()
	}
	if c.EndDate.IsZero() {
		c.EndDate = models.AddMonths(c.StartDate, 1)
	}

	cycles, err := m.repo.Cycles()
	if err != nil {
		return err
	}
	replaced := false
	for i := range cycles {
		if cycles[i].ID == c.ID {
			cycles[i] = *c
			replaced = true
			break
		}
	}
	if !replaced {
		cycles = append(cycles, *c)
	}
	if err := m.repo.SaveCycles(cycles); err != nil {
		return fmt.Errorf("save cycles: %w", err)
	}
	return nil
}

// DeleteCycle removes a cycle. Its sheets are untouched.
func (m *Manager) DeleteCycle(id uuid.UUID) error {
	cycles, err := m.repo.Cycles()
	if err != nil {
		return err
	}
	kept := make([]models.MesoCycle, 0, len(cycles))
	for _, c := range cycles {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cycles) {
		return fmt.Errorf("%w: cycle %s", ErrNotFound, id)
	}
	if err := m.repo.SaveCycles(kept); err != nil {
		return fmt.Errorf("save cycles: %w", err)
	}
	return nil
}

// RemoveSheetFromCycles drops a sheet reference from every cycle that has it.
// Cycles left with no sheets are kept so the user can pick new ones.
func (m *Manager) RemoveSheetFromCycles(sheetID uuid.UUID) (int, error) {
	cycles, err := m.repo.Cycles()
	if err != nil {
		return 0, err
	}
	changed := 0
	for i := range cycles {
		if !cycles[i].References(sheetID) {
			continue
		}
		kept := make([]uuid.UUID, 0, len(cycles[i].WorkoutSheetIDs))
		for _, id := range cycles[i].WorkoutSheetIDs {
			if id != sheetID {
				kept = append(kept, id)
			}
		}
		cycles[i].WorkoutSheetIDs = kept
		changed++
	}
	if changed == 0 {
		return 0, nil
	}
	if err := m.repo.SaveCycles(cycles); err != nil {
		return 0, fmt.Errorf("save cycles: %w", err)
	}
	return changed, nil
}

// ActiveCycles returns the cycles whose window contains now.
func (m *Manager) ActiveCycles() ([]models.MesoCycle, error) {
	cycles, err := m.repo.Cycles()
	if err != nil {
		return nil, err
	}
	now := m.now()
	out := []models.MesoCycle{}
	for i := range cycles {
		if cycles[i].IsActive(now) {
			out = append(out, cycles[i])
		}
	}
	return out, nil
}

// SheetsForCycle resolves a cycle's sheet references, skipping any that no longer exist.
func (m *Manager) SheetsForCycle(c *models.MesoCycle) ([]models.WorkoutSheet, error) {
	sheets, err := m.repo.Sheets()
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.WorkoutSheet, len(sheets))
	for _, s := range sheets {
		byID[s.ID] = s
	}
	out := []models.WorkoutSheet{}
	for _, id := range c.WorkoutSheetIDs {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}
