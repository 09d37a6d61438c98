package schedule

import (
	"time"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/window"
)

// Request describes what to schedule. Callers either list articles or give
// only TotalItems, in which case placeholder new articles are created.
type Request struct {
	TotalItems int
	Imported   []domain.Article
	New        []domain.Article
	StartDate  time.Time
	MinPerDay  int
	MaxPerDay  int
}

type Result struct {
	Schedule *domain.Schedule
	// Window is the final window, including any growth during distribution.
	Window   *window.Window
	Extended bool
	// RequestedMaxPerDay is the caller's max after defaults, before the
	// window caps it at the recommended ceiling.
	RequestedMaxPerDay int
	// ExceedsSoftMax reports RequestedMaxPerDay above the soft ceiling.
	ExceedsSoftMax bool
}

// Rand is the random source shared by distribution and slot generation.
type Rand interface {
	IntN(n int) int
}
