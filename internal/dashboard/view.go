// Package dashboard assembles the year-in-review view model rendered by the
// web page, the terminal dashboard, the CLI reports and exports.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/pipeline"
)

// Source supplies the five dashboard inputs. pipeline.Artifacts reads them
// from disk and client.Client fetches them from a running server.
type Source interface {
	Conversations(ctx context.Context) ([]model.ConversationRecord, error)
	ClusterSummaries(ctx context.Context) (model.ClusterSummaries, error)
	DurationStats(ctx context.Context) (model.DurationStats, error)
	TimePatterns(ctx context.Context) (model.TimePatterns, error)
	TokenStats(ctx context.Context) (model.TokenStats, error)
}

// DefaultTopTopics is how many clusters the topic ranking shows.
const DefaultTopTopics = 5

// Options tune Build.
type Options struct {
	Loc       *time.Location
	Year      int // 0 picks the latest year with data
	TopTopics int
	Now       func() time.Time
}

// Summary holds the headline duration figures in hours.
type Summary struct {
	TotalHours       float64  `json:"total_hours"`
	AverageHours     float64  `json:"average_hours"`
	AverageTurns     *float64 `json:"average_turns,omitempty"`
	LongestChatHours float64  `json:"longest_chat_hours"`
	LongestChatName  string   `json:"longest_chat_name"`
}

// View is everything a renderer needs. Every section has a usable zero value.
type View struct {
	Year          int                      `json:"year"`
	GeneratedAt   time.Time                `json:"generated_at"`
	Conversations int                      `json:"conversations"`
	Summary       Summary                  `json:"summary"`
	Tokens        model.TokenStats         `json:"tokens"`
	Contributions []model.ContributionCell `json:"contributions"`
	Hourly        []model.HourlyBucket     `json:"hourly"`
	MostActive    HourHighlight            `json:"most_active"`
	Seasonal      []model.SeasonalBucket   `json:"seasonal"`
	RichestSeason model.SeasonalBucket     `json:"richest_season"`
	TopTopics     []model.TopicBar         `json:"top_topics"`
}

// Build loads all inputs concurrently and derives the view. A section whose
// input fails is logged and left at its zero value; Build itself never fails.
// Only cancellation of ctx stops the remaining loads.
func Build(ctx context.Context, src Source, opts Options) View {
	var (
		records  []model.ConversationRecord
		clusters model.ClusterSummaries
		duration model.DurationStats
		patterns model.TimePatterns
		tokens   model.TokenStats
	)

	g, gctx := errgroup.WithContext(ctx)
	load := func(section string, fn func(context.Context) error) {
		g.Go(func() error {
			err := fn(gctx)
			if err == nil {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			slog.Warn("dashboard section unavailable", "section", section, "err", err)
			return nil
		})
	}
	load("conversations", func(ctx context.Context) (err error) { records, err = src.Conversations(ctx); return })
	load("clusters", func(ctx context.Context) (err error) { clusters, err = src.ClusterSummaries(ctx); return })
	load("duration", func(ctx context.Context) (err error) { duration, err = src.DurationStats(ctx); return })
	load("patterns", func(ctx context.Context) (err error) { patterns, err = src.TimePatterns(ctx); return })
	load("tokens", func(ctx context.Context) (err error) { tokens, err = src.TokenStats(ctx); return })
	if err := g.Wait(); err != nil {
		slog.Warn("dashboard load interrupted", "err", err)
	}

	return Derive(Inputs{
		Records:  records,
		Clusters: clusters,
		Duration: duration,
		Patterns: patterns,
		Tokens:   tokens,
	}, opts)
}

// Inputs are the raw artifacts Derive works from.
type Inputs struct {
	Records  []model.ConversationRecord
	Clusters model.ClusterSummaries
	Duration model.DurationStats
	Patterns model.TimePatterns
	Tokens   model.TokenStats
}

// Derive computes the view from already loaded inputs.
func Derive(in Inputs, opts Options) View {
	if opts.Loc == nil {
		opts.Loc = time.UTC
	}
	if opts.TopTopics <= 0 {
		opts.TopTopics = DefaultTopTopics
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cells := pipeline.BuildContributions(in.Records, opts.Loc)
	year := opts.Year
	if year == 0 {
		year = pipeline.ContributionYear(cells)
	}

	hourly := NormalizeHourly(in.Patterns.HourlyPattern)
	seasonal := NormalizeSeasonal(in.Patterns.SeasonalPattern)

	return View{
		Year:          year,
		GeneratedAt:   opts.Now().In(opts.Loc),
		Conversations: len(in.Records),
		Summary: Summary{
			TotalHours:       ParseHours(in.Duration.TotalDuration),
			AverageHours:     ParseHours(in.Duration.AverageDuration),
			AverageTurns:     in.Duration.AverageTurns,
			LongestChatHours: ParseHours(in.Duration.LongestChat.Duration),
			LongestChatName:  in.Duration.LongestChat.Name,
		},
		Tokens:        in.Tokens,
		Contributions: pipeline.CellsForYear(cells, year),
		Hourly:        hourly,
		MostActive:    MostActiveHour(hourly),
		Seasonal:      seasonal,
		RichestSeason: RichestSeason(seasonal),
		TopTopics:     TopTopics(in.Clusters, opts.TopTopics),
	}
}

// Levels maps "YYYY-MM-DD" to the contribution level of that day. Days
// without a cell are absent and read as level 0.
func (v View) Levels() map[string]int {
	levels := make(map[string]int, len(v.Contributions))
	for _, c := range v.Contributions {
		levels[c.Date] = c.Value
	}
	return levels
}

// MaxHourlyCount returns the largest hourly count, at least 1.
func (v View) MaxHourlyCount() int {
	m := 1
	for _, b := range v.Hourly {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}

// MaxSeasonValue returns the largest season value, at least 1.
func (v View) MaxSeasonValue() int {
	m := 1
	for _, b := range v.Seasonal {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}
