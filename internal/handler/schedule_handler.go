package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/publication"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/schedule"
)

type ScheduleService interface {
	Plan(ctx context.Context, req schedule.Request) (*publication.Response, error)
	Get(ctx context.Context, id string) (*domain.Schedule, error)
}

type ArticleRequest struct {
	ID                  string     `json:"id" binding:"required"`
	OriginalCreatedAt   *time.Time `json:"original_created_at,omitempty"`
	OriginalPublishedAt *time.Time `json:"original_published_at,omitempty"`
}

type PreviewRequest struct {
	TotalItems int              `json:"total_items"`
	Imported   []ArticleRequest `json:"imported" binding:"dive"`
	New        []ArticleRequest `json:"new" binding:"dive"`
	// StartDate is YYYY-MM-DD in the publishing time zone. Empty means today.
	StartDate string `json:"start_date"`
	MinPerDay int    `json:"min_per_day"`
	MaxPerDay int    `json:"max_per_day"`
}

type Defaults struct {
	MinPerDay int
	MaxPerDay int
	Location  *time.Location
}

type ScheduleHandler struct {
	service  ScheduleService
	defaults Defaults
}

func NewScheduleHandler(service ScheduleService, defaults Defaults) *ScheduleHandler {
	if defaults.Location == nil {
		defaults.Location = time.UTC
	}
	return &ScheduleHandler{
		service:  service,
		defaults: defaults,
	}
}

func (h *ScheduleHandler) HandlePreview(c *gin.Context) {
	ctx := c.Request.Context()

	var body PreviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req, err := h.toRequest(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Plan(ctx, req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ScheduleHandler) HandleGet(c *gin.Context) {
	sched, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sched)
}

func (h *ScheduleHandler) toRequest(body PreviewRequest) (schedule.Request, error) {
	req := schedule.Request{
		TotalItems: body.TotalItems,
		Imported:   toArticles(body.Imported),
		New:        toArticles(body.New),
		MinPerDay:  body.MinPerDay,
		MaxPerDay:  body.MaxPerDay,
	}

	if req.MinPerDay == 0 {
		req.MinPerDay = h.defaults.MinPerDay
	}
	if req.MaxPerDay == 0 {
		req.MaxPerDay = h.defaults.MaxPerDay
	}

	if body.StartDate != "" {
		start, err := time.ParseInLocation(time.DateOnly, body.StartDate, h.defaults.Location)
		if err != nil {
			return req, errors.New("invalid start_date format, expected YYYY-MM-DD")
		}
		req.StartDate = start
	} else {
		req.StartDate = time.Now().In(h.defaults.Location)
	}

	return req, nil
}

func toArticles(in []ArticleRequest) []domain.Article {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Article, len(in))
	for i, a := range in {
		out[i] = domain.Article{
			ID:                  a.ID,
			OriginalCreatedAt:   a.OriginalCreatedAt,
			OriginalPublishedAt: a.OriginalPublishedAt,
		}
	}
	return out
}

func (h *ScheduleHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case domain.IsValidationError(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrScheduleNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "schedule request failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
