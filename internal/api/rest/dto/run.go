package dto

import (
	"encoding/json"
	"time"

	"github.com/teia-community/teia-analytics/internal/store/schema"
)

// RunResponse represents an analysis run
type RunResponse struct {
	ID        string          `json:"id"`
	Program   string          `json:"program"`
	Poll      string          `json:"poll,omitempty"`
	UserCount int             `json:"user_count"`
	Config    json.RawMessage `json:"config,omitempty"`
	Summary   json.RawMessage `json:"summary,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// MapRunToDTO maps a schema.AnalysisRun to RunResponse
func MapRunToDTO(run *schema.AnalysisRun) *RunResponse {
	return &RunResponse{
		ID:        run.ID.String(),
		Program:   string(run.Program),
		Poll:      run.Poll,
		UserCount: run.UserCount,
		Config:    json.RawMessage(run.Config),
		Summary:   json.RawMessage(run.Summary),
		CreatedAt: run.CreatedAt,
	}
}
