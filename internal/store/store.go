// Package store persists pipeline run history so past overlays can be
// listed and compared without rerunning them.
package store

import (
	"context"
	"time"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID           string    `json:"id"`
	LeftPath     string    `json:"left_path"`
	RightPath    string    `json:"right_path"`
	GroupBy      string    `json:"group_by"`
	Reduction    string    `json:"reduction"`
	LeftCount    int       `json:"left_count"`
	RightCount   int       `json:"right_count"`
	OverlayCount int       `json:"overlay_count"`
	GroupCount   int       `json:"group_count"`
	EmptyOverlay bool      `json:"empty_overlay"`
	ElapsedMS    int64     `json:"elapsed_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store defines the run-history persistence interface.
type Store interface {
	RecordRun(ctx context.Context, run Run) (*Run, error)
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
