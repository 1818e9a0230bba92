// ABOUTME: MCP tool implementations for workouts, sheets, cycles, and measurements.
// ABOUTME: Analytics tools expose progression, weekly volume, and workout counts.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/treino/internal/history"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/planner"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// current_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "current_workout",
		Description: "Get the workout currently in progress",
	}, s.handleCurrentWorkout)

	// get_progression
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progression",
		Description: "Max completed weight per workout for an exercise, or every exercise with at least two data points",
	}, s.handleGetProgression)

	// get_weekly_volume
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_weekly_volume",
		Description: "Completed sets per muscle group over the last 7 days",
	}, s.handleGetWeeklyVolume)

	// get_workout_counts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout_counts",
		Description: "Number of saved workouts in the last month and the last year",
	}, s.handleGetWorkoutCounts)

	// list_sheets
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sheets",
		Description: "List workout sheets (reusable templates)",
	}, s.handleListSheets)

	// get_shared_sheet
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_shared_sheet",
		Description: "Resolve a public sheet by its share id",
	}, s.handleGetSharedSheet)

	// list_cycles
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_cycles",
		Description: "List meso-cycles, optionally only the active ones",
	}, s.handleListCycles)

	// add_measurement
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_measurement",
		Description: "Record body measurements (weight in kg, body fat in %, circumferences in cm)",
	}, s.handleAddMeasurement)

	// list_measurements
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_measurements",
		Description: "List recent body measurements, optionally only those recording one field",
	}, s.handleListMeasurements)
}

// Tool input/output types

type emptyInput struct{}

type getProgressionInput struct {
	Exercise string `json:"exercise,omitempty" jsonschema:"Exercise name; omit to list every exercise with progression"`
}

type listSheetsInput struct {
	PublicOnly bool `json:"public_only,omitempty" jsonschema:"Only list public sheets"`
}

type sheetOutput struct {
	Sheet     models.WorkoutSheet `json:"sheet"`
	ShareLink string              `json:"share_link,omitempty"`
}

type getSharedSheetInput struct {
	ShareID string `json:"share_id" jsonschema:"Share id from a {origin}/workout/{shareId} link"`
}

type listCyclesInput struct {
	ActiveOnly bool `json:"active_only,omitempty" jsonschema:"Only list cycles active today"`
}

type cycleOutput struct {
	Cycle  models.MesoCycle      `json:"cycle"`
	Active bool                  `json:"active"`
	Sheets []models.WorkoutSheet `json:"sheets"`
}

type addMeasurementInput struct {
	Date        string   `json:"date,omitempty" jsonschema:"Timestamp (ISO 8601 or YYYY-MM-DD), defaults to now"`
	Weight      *float64 `json:"weight,omitempty" jsonschema:"Body weight in kg"`
	Height      *float64 `json:"height,omitempty" jsonschema:"Height in cm"`
	BodyFat     *float64 `json:"body_fat,omitempty" jsonschema:"Body fat percentage"`
	Chest       *float64 `json:"chest,omitempty" jsonschema:"Chest in cm"`
	Waist       *float64 `json:"waist,omitempty" jsonschema:"Waist in cm"`
	Hips        *float64 `json:"hips,omitempty" jsonschema:"Hips in cm"`
	BicepsLeft  *float64 `json:"biceps_left,omitempty" jsonschema:"Left biceps in cm"`
	BicepsRight *float64 `json:"biceps_right,omitempty" jsonschema:"Right biceps in cm"`
	ThighLeft   *float64 `json:"thigh_left,omitempty" jsonschema:"Left thigh in cm"`
	ThighRight  *float64 `json:"thigh_right,omitempty" jsonschema:"Right thigh in cm"`
	CalfLeft    *float64 `json:"calf_left,omitempty" jsonschema:"Left calf in cm"`
	CalfRight   *float64 `json:"calf_right,omitempty" jsonschema:"Right calf in cm"`
	Notes       string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

func (in addMeasurementInput) fields() map[models.MeasurementField]*float64 {
	return map[models.MeasurementField]*float64{
		models.FieldWeight:      in.Weight,
		models.FieldHeight:      in.Height,
		models.FieldBodyFat:     in.BodyFat,
		models.FieldChest:       in.Chest,
		models.FieldWaist:       in.Waist,
		models.FieldHips:        in.Hips,
		models.FieldBicepsLeft:  in.BicepsLeft,
		models.FieldBicepsRight: in.BicepsRight,
		models.FieldThighLeft:   in.ThighLeft,
		models.FieldThighRight:  in.ThighRight,
		models.FieldCalfLeft:    in.CalfLeft,
		models.FieldCalfRight:   in.CalfRight,
	}
}

type measurementOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type listMeasurementsInput struct {
	Field string `json:"field,omitempty" jsonschema:"Only measurements that recorded this field (weight, height, body_fat, chest, waist, hips, biceps_left, biceps_right, thigh_left, thigh_right, calf_left, calf_right)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

// parseDate accepts RFC 3339, "2006-01-02 15:04" or a bare date.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %s", s)
}

// Tool handlers

func (s *Server) handleCurrentWorkout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	w, err := s.repo.CurrentWorkout()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load current workout: %w", err)
	}
	if w == nil {
		return nil, map[string]any{"message": "No workout in progress."}, nil
	}
	return nil, w, nil
}

func (s *Server) handleGetProgression(ctx context.Context, req *mcp.CallToolRequest, input getProgressionInput) (*mcp.CallToolResult, any, error) {
	h, err := s.repo.History()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load history: %w", err)
	}
	if input.Exercise == "" {
		series := history.SelectableExercises(h)
		if len(series) == 0 {
			return nil, map[string]any{"message": "Not enough history to show progression yet."}, nil
		}
		return nil, series, nil
	}
	points := history.ProgressionFor(h, input.Exercise)
	return nil, history.Series{Name: input.Exercise, Points: points}, nil
}

func (s *Server) handleGetWeeklyVolume(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, history.WeeklyVolume, error) {
	h, err := s.repo.History()
	if err != nil {
		return nil, history.WeeklyVolume{}, fmt.Errorf("failed to load history: %w", err)
	}
	return nil, history.ComputeWeeklyVolume(h, s.now()), nil
}

func (s *Server) handleGetWorkoutCounts(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, history.Counts, error) {
	h, err := s.repo.History()
	if err != nil {
		return nil, history.Counts{}, fmt.Errorf("failed to load history: %w", err)
	}
	return nil, history.WorkoutCounts(h, s.now()), nil
}

func (s *Server) handleListSheets(ctx context.Context, req *mcp.CallToolRequest, input listSheetsInput) (*mcp.CallToolResult, any, error) {
	var sheets []models.WorkoutSheet
	var err error
	if input.PublicOnly {
		sheets, err = s.sheets.PublicSheets()
	} else {
		sheets, err = s.sheets.ListSheets()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sheets: %w", err)
	}
	if len(sheets) == 0 {
		return nil, map[string]any{"message": "No sheets found."}, nil
	}

	out := make([]sheetOutput, len(sheets))
	for i := range sheets {
		out[i].Sheet = sheets[i]
		if link, err := planner.ShareLink(s.origin, &sheets[i]); err == nil {
			out[i].ShareLink = link
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetSharedSheet(ctx context.Context, req *mcp.CallToolRequest, input getSharedSheetInput) (*mcp.CallToolResult, any, error) {
	sheet, err := s.sheets.FindShared(input.ShareID)
	if errors.Is(err, planner.ErrNotFound) {
		return nil, nil, fmt.Errorf("shared sheet not found: %s", input.ShareID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find shared sheet: %w", err)
	}
	return nil, sheet, nil
}

func (s *Server) handleListCycles(ctx context.Context, req *mcp.CallToolRequest, input listCyclesInput) (*mcp.CallToolResult, any, error) {
	cycles, err := s.sheets.ListCycles()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list cycles: %w", err)
	}

	now := s.now()
	out := []cycleOutput{}
	for i := range cycles {
		active := cycles[i].IsActive(now)
		if input.ActiveOnly && !active {
			continue
		}
		sheets, err := s.sheets.SheetsForCycle(&cycles[i])
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve sheets: %w", err)
		}
		out = append(out, cycleOutput{Cycle: cycles[i], Active: active, Sheets: sheets})
	}
	if len(out) == 0 {
		return nil, map[string]any{"message": "No cycles found."}, nil
	}
	return nil, out, nil
}

func (s *Server) handleAddMeasurement(ctx context.Context, req *mcp.CallToolRequest, input addMeasurementInput) (*mcp.CallToolResult, measurementOutput, error) {
	m := models.NewBodyMeasurement()
	if input.Date != "" {
		t, err := parseDate(input.Date)
		if err != nil {
			return nil, measurementOutput{}, err
		}
		m.WithDate(t)
	}
	for field, v := range input.fields() {
		if v != nil {
			m.WithField(field, *v)
		}
	}
	if input.Notes != "" {
		m.WithNotes(input.Notes)
	}

	if err := s.measures.Add(m); err != nil {
		return nil, measurementOutput{}, fmt.Errorf("failed to add measurement: %w", err)
	}

	return nil, measurementOutput{
		ID:      m.ID.String()[:8],
		Message: fmt.Sprintf("Added measurement (ID: %s)", m.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListMeasurements(ctx context.Context, req *mcp.CallToolRequest, input listMeasurementsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var field *models.MeasurementField
	if input.Field != "" {
		if !models.IsValidMeasurementField(input.Field) {
			return nil, nil, fmt.Errorf("unknown measurement field: %s", input.Field)
		}
		f := models.MeasurementField(input.Field)
		field = &f
	}

	list, err := s.measures.List(field, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	if len(list) == 0 {
		return nil, map[string]any{"message": "No measurements found."}, nil
	}
	return nil, list, nil
}
