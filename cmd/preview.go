package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/config"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-publication-scheduling/internal/service/schedule"
)

type previewOptions struct {
	items     int
	imported  int
	start     string
	minPerDay int
	maxPerDay int
	seed      uint64
	asJSON    bool
}

func newPreviewCmd() *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print a publication calendar without starting the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.items, "items", 0, "total number of articles to schedule")
	f.IntVar(&opts.imported, "imported", 0, "how many of the articles are imported")
	f.StringVar(&opts.start, "start", "", "first publishing date (YYYY-MM-DD), defaults to today")
	f.IntVar(&opts.minPerDay, "min", 0, "minimum articles per day (default from PUBLISH_MIN_PER_DAY)")
	f.IntVar(&opts.maxPerDay, "max", 0, "maximum articles per day (default from PUBLISH_MAX_PER_DAY)")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible calendar, 0 picks one")
	f.BoolVar(&opts.asJSON, "json", false, "print the schedule as JSON")
	_ = cmd.MarkFlagRequired("items")

	return cmd
}

func runPreview(out io.Writer, opts *previewOptions) error {
	if opts.items <= 0 {
		return errors.New("--items must be positive")
	}
	if opts.imported < 0 || opts.imported > opts.items {
		return fmt.Errorf("--imported must be between 0 and %d", opts.items)
	}

	publishing, err := config.LoadPublishingConfig()
	if err != nil {
		return err
	}
	if err := publishing.Validate(); err != nil {
		return err
	}

	req := schedule.Request{
		Imported:  placeholderArticles("imported", opts.imported),
		New:       placeholderArticles("new", opts.items-opts.imported),
		MinPerDay: orDefault(opts.minPerDay, publishing.MinPerDay),
		MaxPerDay: orDefault(opts.maxPerDay, publishing.MaxPerDay),
		StartDate: time.Now().In(publishing.Location),
	}
	if opts.start != "" {
		req.StartDate, err = time.ParseInLocation(time.DateOnly, opts.start, publishing.Location)
		if err != nil {
			return fmt.Errorf("invalid --start %q, expected YYYY-MM-DD", opts.start)
		}
	}

	assemblerOpts := []schedule.Option{schedule.WithPolicy(publishing.Policy())}
	if opts.seed != 0 {
		assemblerOpts = append(assemblerOpts, schedule.WithSeed(opts.seed))
	}

	result, err := schedule.NewAssembler(assemblerOpts...).Schedule(req)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Schedule)
	}
	return printCalendar(out, result)
}

func printCalendar(out io.Writer, result *schedule.Result) error {
	sched := result.Schedule
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "DATE\tDAY\tCOUNT\tIMPORTED\tNEW\tFIRST\tLAST\tFLAGS")
	for _, day := range sched.Days {
		imported, fresh := 0, 0
		for _, a := range day.Articles {
			if a.Slot.Classification.IsImported() {
				imported++
			} else {
				fresh++
			}
		}

		first, last := "-", "-"
		if n := len(day.Articles); n > 0 {
			first = day.Articles[0].ScheduledAt.Format(time.TimeOnly)
			last = day.Articles[n-1].ScheduledAt.Format(time.TimeOnly)
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			domain.DayKey(day.Date), day.Date.Weekday().String()[:3],
			day.Allocation.Count, imported, fresh, first, last, dayFlags(day.Allocation))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := sched.Stats
	fmt.Fprintf(out, "\n%d articles (%d imported, %d new) over %d business days, %s to %s\n",
		s.TotalArticles, s.ImportedArticles, s.NewArticles, s.WorkingDaysUsed,
		domain.DayKey(sched.StartDate), domain.DayKey(sched.EndDate))
	fmt.Fprintf(out, "per day: min %d, max %d, avg %.2f, efficiency %.2f%%\n",
		s.MinPerDay, s.MaxPerDay, s.AvgPerDay, s.DistributionEfficiency)
	if result.Extended {
		fmt.Fprintf(out, "window extended by %d extra day(s)\n", s.ExtraDays)
	}
	if result.ExceedsSoftMax {
		fmt.Fprintln(out, "warning: max per day exceeds the soft ceiling")
	}
	return nil
}

func dayFlags(a domain.DailyAllocation) string {
	switch {
	case a.IsPeakCapacity && a.IsExtraDay:
		return "peak,extra"
	case a.IsPeakCapacity:
		return "peak"
	case a.IsExtraDay:
		return "extra"
	}
	return ""
}

func placeholderArticles(prefix string, n int) []domain.Article {
	articles := make([]domain.Article, n)
	for i := range articles {
		articles[i] = domain.Article{ID: fmt.Sprintf("%s-%d", prefix, i+1)}
	}
	return articles
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
