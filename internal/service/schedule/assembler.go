package schedule

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/calendar"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/slot"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/window"
)

// Assembler turns an article pool into a day-by-day publication calendar.
// It does no I/O and is safe for concurrent use: every call gets its own
// random source and slot generator.
type Assembler struct {
	clock       calendar.Clock
	policy      window.Policy
	randSource  func() Rand
	idGenerator func() string
	slotOptions []slot.Option
}

type Option func(*Assembler)

func WithClock(c calendar.Clock) Option {
	return func(a *Assembler) {
		if c != nil {
			a.clock = c
		}
	}
}

func WithPolicy(p window.Policy) Option {
	return func(a *Assembler) {
		a.policy = p
	}
}

// WithRandSource sets the factory called once per Schedule call.
func WithRandSource(f func() Rand) Option {
	return func(a *Assembler) {
		if f != nil {
			a.randSource = f
		}
	}
}

// WithSeed makes every Schedule call draw the same sequence.
func WithSeed(seed uint64) Option {
	return WithRandSource(func() Rand {
		return rand.New(rand.NewPCG(seed, seed))
	})
}

func WithIDGenerator(f func() string) Option {
	return func(a *Assembler) {
		if f != nil {
			a.idGenerator = f
		}
	}
}

func WithSlotOptions(opts ...slot.Option) Option {
	return func(a *Assembler) {
		a.slotOptions = append(a.slotOptions, opts...)
	}
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		clock:  calendar.SystemClock(),
		policy: window.DefaultPolicy(),
		randSource: func() Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		idGenerator: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Schedule builds a window sized for the request, distributes the articles
// over its business days and assigns each one a unique publication slot.
// Validation errors from the window and slot layers are returned as is.
func (a *Assembler) Schedule(req Request) (*Result, error) {
	req, total, err := a.normalize(req)
	if err != nil {
		return nil, err
	}

	w, err := window.ForItemCount(req.StartDate, total, req.MinPerDay, req.MaxPerDay,
		window.WithClock(a.clock),
		window.WithPolicy(a.policy),
	)
	if err != nil {
		return nil, err
	}

	// Placeholders are only built once the count is known to fit a window.
	if len(req.Imported)+len(req.New) == 0 && total > 0 {
		req.New = placeholderArticles(total, a.idGenerator)
	}

	rng := a.randSource()
	dist := w.Distribute(total, rng)

	generator := slot.NewGenerator(rng, append([]slot.Option{slot.WithClock(a.clock)}, a.slotOptions...)...)

	importedQueue := req.Imported
	newQueue := req.New
	days := make([]domain.DaySchedule, 0, len(dist.Allocations))

	for _, alloc := range dist.Allocations {
		importedCount, newCount := splitDay(alloc.Count, len(importedQueue), len(newQueue))

		generator.ResetUsedTimestamps()
		slots, err := generator.GenerateDaySchedule(alloc.Date, importedCount, newCount)
		if err != nil {
			return nil, err
		}

		articles := make([]domain.ScheduledArticle, 0, len(slots))
		for _, s := range slots {
			var article domain.Article
			if s.Classification.IsImported() {
				article, importedQueue = importedQueue[0], importedQueue[1:]
			} else {
				article, newQueue = newQueue[0], newQueue[1:]
			}
			articles = append(articles, stampArticle(generator, article, s))
		}

		days = append(days, domain.DaySchedule{
			Date:       alloc.Date,
			Allocation: alloc,
			Articles:   articles,
		})
	}

	sched := &domain.Schedule{
		ID:          a.idGenerator(),
		GeneratedAt: a.clock.Now(),
		StartDate:   dist.Window.Start(),
		EndDate:     dist.Window.End(),
		Days:        days,
		Stats:       computeStats(days, len(req.Imported), len(req.New), dist.ExtraDays),
	}

	// The window's own max is already capped at the recommended ceiling, so
	// the soft ceiling is checked against what the caller asked for.
	return &Result{
		Schedule:           sched,
		Window:             dist.Window,
		Extended:           dist.Extended,
		RequestedMaxPerDay: req.MaxPerDay,
		ExceedsSoftMax:     req.MaxPerDay > w.Policy().SoftMaxPerDay,
	}, nil
}

// normalize applies defaults and returns the number of articles to place.
func (a *Assembler) normalize(req Request) (Request, int, error) {
	listed := len(req.Imported) + len(req.New)
	total := listed
	switch {
	case req.TotalItems < 0:
		return req, 0, fmt.Errorf("%w: total %d is negative", domain.ErrArticleCountMismatch, req.TotalItems)
	case listed == 0:
		total = req.TotalItems
	case req.TotalItems > 0 && req.TotalItems != listed:
		return req, 0, fmt.Errorf("%w: total %d, listed %d", domain.ErrArticleCountMismatch, req.TotalItems, listed)
	}

	req.Imported = withClassification(req.Imported, domain.ClassificationImported)
	req.New = withClassification(req.New, domain.ClassificationNew)

	if req.MinPerDay == 0 {
		req.MinPerDay = window.DefaultMinPerDay
	}
	if req.MaxPerDay == 0 {
		req.MaxPerDay = window.DefaultMaxPerDay
	}
	if req.StartDate.IsZero() {
		req.StartDate = a.clock.Now()
	}

	return req, total, nil
}

func placeholderArticles(n int, newID func() string) []domain.Article {
	articles := make([]domain.Article, n)
	for i := range articles {
		articles[i] = domain.Article{ID: newID(), Classification: domain.ClassificationNew}
	}
	return articles
}

func withClassification(articles []domain.Article, c domain.Classification) []domain.Article {
	out := make([]domain.Article, len(articles))
	for i, article := range articles {
		article.Classification = c
		out[i] = article
	}
	return out
}
