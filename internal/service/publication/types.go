package publication

import (
	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/schedule"
)

// Assembler builds one schedule candidate per call.
type Assembler interface {
	Schedule(req schedule.Request) (*schedule.Result, error)
}

type Config struct {
	// MinEfficiency triggers regeneration when a schedule's distribution
	// efficiency falls below it. Zero accepts the first schedule.
	MinEfficiency float64
	MaxAttempts   int
}

type Response struct {
	Schedule       *domain.Schedule `json:"schedule"`
	RunID          string           `json:"run_id"`
	Attempts       int              `json:"attempts"`
	Extended       bool             `json:"extended"`
	ExceedsSoftMax bool             `json:"exceeds_soft_max"`
}
