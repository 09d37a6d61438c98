package publication

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/observability/tracing"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/schedule"
)

type Service struct {
	assembler       Assembler
	scheduleRepo    domain.ScheduleRepository
	resultRecorder  domain.ScheduleResultRecorder
	scheduleMetrics *metrics.ScheduleMetrics
	minEfficiency   float64
	maxAttempts     int
	newRunID        func() string
}

// NewService wires the engine to its side effects. scheduleRepo,
// resultRecorder and scheduleMetrics may be nil.
func NewService(
	assembler Assembler,
	scheduleRepo domain.ScheduleRepository,
	resultRecorder domain.ScheduleResultRecorder,
	scheduleMetrics *metrics.ScheduleMetrics,
	cfg Config,
) *Service {
	return &Service{
		assembler:       assembler,
		scheduleRepo:    scheduleRepo,
		resultRecorder:  resultRecorder,
		scheduleMetrics: scheduleMetrics,
		minEfficiency:   cfg.MinEfficiency,
		maxAttempts:     max(1, cfg.MaxAttempts),
		newRunID:        uuid.NewString,
	}
}

// Plan assembles a schedule, regenerating while the distribution is less
// even than configured, then caches and records the best candidate.
func (s *Service) Plan(ctx context.Context, req schedule.Request) (*Response, error) {
	ctx, span := tracing.StartPlanSpan(ctx, requestedItems(req), len(req.Imported), req.StartDate)
	defer span.End()

	start := time.Now()
	best, attempts, err := s.assembleBest(ctx, req)
	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordAssemblyDuration(ctx, time.Since(start))
	}
	if err != nil {
		if s.scheduleMetrics != nil {
			s.scheduleMetrics.RecordScheduleGenerated(ctx, outcomeFor(err))
		}
		tracing.RecordResult(span, err)

		level := slog.LevelError
		if domain.IsValidationError(err) {
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "failed to assemble schedule",
			slog.String("error", err.Error()),
			slog.Int("total_items", requestedItems(req)),
			slog.Time("start_date", req.StartDate),
		)
		return nil, err
	}

	sched := best.Schedule
	runID := s.newRunID()

	if best.ExceedsSoftMax {
		slog.WarnContext(ctx, "requested max per day exceeds soft ceiling",
			slog.String("schedule_id", sched.ID),
			slog.Int("max_per_day", best.RequestedMaxPerDay),
			slog.Int("window_max_per_day", best.Window.MaxPerDay()),
			slog.Int("soft_max_per_day", best.Window.Policy().SoftMaxPerDay),
		)
	}

	s.recordMetrics(ctx, sched)
	s.cache(ctx, sched)
	s.record(ctx, runID, sched, attempts)

	slog.InfoContext(ctx, "schedule generated",
		slog.String("schedule_id", sched.ID),
		slog.String("run_id", runID),
		slog.Int("total_articles", sched.Stats.TotalArticles),
		slog.Int("working_days", sched.Stats.WorkingDaysUsed),
		slog.Int("extra_days", sched.Stats.ExtraDays),
		slog.Float64("distribution_efficiency", sched.Stats.DistributionEfficiency),
		slog.Int("attempts", attempts),
	)
	tracing.RecordResult(span, nil)

	return &Response{
		Schedule:       sched,
		RunID:          runID,
		Attempts:       attempts,
		Extended:       best.Extended,
		ExceedsSoftMax: best.ExceedsSoftMax,
	}, nil
}

func (s *Service) assembleBest(ctx context.Context, req schedule.Request) (*schedule.Result, int, error) {
	var best *schedule.Result
	attempts := 0

	for attempts < s.maxAttempts {
		attempts++

		_, span := tracing.StartAssemblySpan(ctx, attempts)
		result, err := s.assembler.Schedule(req)
		if err != nil {
			tracing.RecordResult(span, err)
			span.End()
			return nil, attempts, err
		}
		stats := result.Schedule.Stats
		tracing.RecordAssemblyResult(span, stats.WorkingDaysUsed, stats.ExtraDays, stats.DistributionEfficiency, result.Extended, nil)
		span.End()

		if best == nil || stats.DistributionEfficiency > best.Schedule.Stats.DistributionEfficiency {
			best = result
		}
		if s.minEfficiency <= 0 || best.Schedule.Stats.DistributionEfficiency >= s.minEfficiency {
			break
		}

		if s.scheduleMetrics != nil {
			s.scheduleMetrics.RecordRegeneration(ctx)
		}
		slog.DebugContext(ctx, "schedule below efficiency target",
			slog.Int("attempt", attempts),
			slog.Float64("distribution_efficiency", stats.DistributionEfficiency),
			slog.Float64("min_efficiency", s.minEfficiency),
		)
	}

	return best, attempts, nil
}

// Get returns a previously planned schedule from the cache.
func (s *Service) Get(ctx context.Context, id string) (*domain.Schedule, error) {
	if s.scheduleRepo == nil {
		return nil, fmt.Errorf("%w: %s (cache disabled)", domain.ErrScheduleNotFound, id)
	}

	ctx, span := tracing.StartCacheSpan(ctx, "get", id)
	defer span.End()

	sched, err := s.scheduleRepo.GetSchedule(ctx, id)
	tracing.RecordResult(span, err)
	if err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *Service) recordMetrics(ctx context.Context, sched *domain.Schedule) {
	if s.scheduleMetrics == nil {
		return
	}
	s.scheduleMetrics.RecordScheduleGenerated(ctx, "success")
	s.scheduleMetrics.RecordArticlesScheduled(ctx, domain.ClassificationImported.String(), sched.Stats.ImportedArticles)
	s.scheduleMetrics.RecordArticlesScheduled(ctx, domain.ClassificationNew.String(), sched.Stats.NewArticles)
	s.scheduleMetrics.RecordExtraDays(ctx, sched.Stats.ExtraDays)
	s.scheduleMetrics.RecordDistributionEfficiency(ctx, sched.Stats.DistributionEfficiency)
}

// cache failures are logged; the caller still gets the schedule.
func (s *Service) cache(ctx context.Context, sched *domain.Schedule) {
	if s.scheduleRepo == nil {
		return
	}

	ctx, span := tracing.StartCacheSpan(ctx, "save", sched.ID)
	defer span.End()

	err := s.scheduleRepo.SaveSchedule(ctx, sched)
	tracing.RecordResult(span, err)
	if err != nil {
		slog.WarnContext(ctx, "failed to cache schedule",
			slog.String("schedule_id", sched.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) record(ctx context.Context, runID string, sched *domain.Schedule, attempts int) {
	if s.resultRecorder == nil {
		return
	}

	if err := s.resultRecorder.RecordAllocations(ctx, allocationRecords(runID, sched)); err != nil {
		slog.WarnContext(ctx, "failed to record allocations",
			slog.String("schedule_id", sched.ID),
			slog.String("error", err.Error()),
		)
	}

	summary := domain.ScheduleSummaryRecord{
		RunID:                  runID,
		ScheduleID:             sched.ID,
		StartDate:              sched.StartDate,
		EndDate:                sched.EndDate,
		TotalArticles:          sched.Stats.TotalArticles,
		WorkingDaysUsed:        sched.Stats.WorkingDaysUsed,
		DistributionEfficiency: sched.Stats.DistributionEfficiency,
		Attempts:               attempts,
	}
	if err := s.resultRecorder.RecordSummary(ctx, summary); err != nil {
		slog.WarnContext(ctx, "failed to record schedule summary",
			slog.String("schedule_id", sched.ID),
			slog.String("error", err.Error()),
		)
	}
}

func allocationRecords(runID string, sched *domain.Schedule) []domain.AllocationRecord {
	records := make([]domain.AllocationRecord, 0, len(sched.Days))
	for _, day := range sched.Days {
		record := domain.AllocationRecord{
			RunID:          runID,
			ScheduleID:     sched.ID,
			Day:            day.Date,
			Count:          day.Allocation.Count,
			IsPeakCapacity: day.Allocation.IsPeakCapacity,
			IsExtraDay:     day.Allocation.IsExtraDay,
		}
		for _, article := range day.Articles {
			if article.Slot.Classification.IsImported() {
				record.ImportedCount++
			} else {
				record.NewCount++
			}
			if article.Slot.IsPeakHour {
				record.PeakHourCount++
			}
		}
		records = append(records, record)
	}
	return records
}

func requestedItems(req schedule.Request) int {
	if listed := len(req.Imported) + len(req.New); listed > 0 {
		return listed
	}
	return req.TotalItems
}

func outcomeFor(err error) string {
	if domain.IsValidationError(err) {
		return "invalid"
	}
	return "error"
}
