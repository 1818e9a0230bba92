// ABOUTME: MCP resource implementations for workout history and stats.
// ABOUTME: Provides treino://history/recent and treino://stats resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/treino/internal/history"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentLimit = 10

func (s *Server) registerResources() {
	// treino://history/recent - Last saved workouts across all weekdays
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "treino://history/recent",
		Name:        "Recent Workouts",
		Description: "Last 10 workouts saved to history, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// treino://stats - Dashboard with counts, weekly volume, and progression
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "treino://stats",
		Name:        "Training Stats Dashboard",
		Description: "Workout counts, weekly muscle-group volume, and exercise progression",
		MIMEType:    "application/json",
	}, s.handleStatsResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	h, err := s.repo.History()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	recent := history.RecentWorkouts(h, recentLimit)

	return jsonResource("treino://history/recent", map[string]any{
		"workouts": recent,
		"count":    len(recent),
		"total":    h.Len(),
	})
}

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	h, err := s.repo.History()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	now := s.now()

	cycles, err := s.sheets.ListCycles()
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	activeNames := []string{}
	for i := range cycles {
		if cycles[i].IsActive(now) {
			activeNames = append(activeNames, cycles[i].Name)
		}
	}

	progression := map[string]history.Point{}
	for _, series := range history.SelectableExercises(h) {
		progression[series.Name] = series.Points[len(series.Points)-1]
	}

	return jsonResource("treino://stats", map[string]any{
		"generated_at":  now.Format(time.RFC3339),
		"counts":        history.WorkoutCounts(h, now),
		"weekly_volume": history.ComputeWeeklyVolume(h, now).Bars,
		"latest_max":    progression,
		"active_cycles": activeNames,
	})
}
