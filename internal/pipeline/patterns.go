package pipeline

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/source"
)

// ConversationLoader supplies parsed conversation rows.
type ConversationLoader interface {
	Conversations(ctx context.Context) ([]model.ConversationRecord, error)
}

// PatternSource produces hourly and seasonal activity counts.
type PatternSource interface {
	TimePatterns(ctx context.Context) (model.TimePatterns, error)
}

// ConversationPatterns aggregates conversation start times.
type ConversationPatterns struct {
	Loader ConversationLoader
	Loc    *time.Location
}

// TimePatterns implements PatternSource.
func (p ConversationPatterns) TimePatterns(ctx context.Context) (model.TimePatterns, error) {
	records, err := p.Loader.Conversations(ctx)
	if err != nil {
		return model.TimePatterns{}, err
	}
	return PatternsFromCounts(AggregateHourly(records, p.Loc), AggregateSeasonal(records, p.Loc)), nil
}

// FilePatterns reads time_patterns.json as written by the pipeline. Hour keys
// may be "0".."23" or "00".."23"; unknown keys are dropped. The pipeline
// numbers seasons winter first (1 = Dec-Feb); keys are remapped to the
// spring-first numbering Season uses.
type FilePatterns struct {
	Reader *source.Reader
	Name   string
}

type rawPatterns struct {
	Hourly   map[string]float64 `json:"hourly_pattern"`
	Seasonal map[string]float64 `json:"seasonal_pattern"`
}

// TimePatterns implements PatternSource.
func (p FilePatterns) TimePatterns(ctx context.Context) (model.TimePatterns, error) {
	var raw rawPatterns
	if err := p.Reader.DecodeJSON(ctx, p.Name, &raw); err != nil {
		return model.TimePatterns{}, err
	}

	var hours [24]int
	for k, v := range raw.Hourly {
		if h, err := strconv.Atoi(k); err == nil && h >= 0 && h < 24 {
			hours[h] = int(math.Round(v))
		}
	}
	var seasons [4]int
	for k, v := range raw.Seasonal {
		if s, err := strconv.Atoi(k); err == nil && s >= 1 && s <= 4 {
			seasons[pipelineSeason(s)-1] = int(math.Round(v))
		}
	}
	return PatternsFromCounts(hours, seasons), nil
}

// pipelineSeason converts a month%12/3+1 season key to Season numbering.
func pipelineSeason(k int) int {
	return (k+2)%4 + 1
}

// SyntheticPatterns produces placeholder counts in [0,100). Every call with
// the same Seed returns the same data.
type SyntheticPatterns struct {
	Seed int64
}

// TimePatterns implements PatternSource.
func (p SyntheticPatterns) TimePatterns(context.Context) (model.TimePatterns, error) {
	rng := rand.New(rand.NewSource(p.Seed))
	var hours [24]int
	for h := range hours {
		hours[h] = rng.Intn(100)
	}
	var seasons [4]int
	for s := range seasons {
		seasons[s] = rng.Intn(100)
	}
	return PatternsFromCounts(hours, seasons), nil
}

// TokenSource produces lifetime token totals.
type TokenSource interface {
	TokenStats(ctx context.Context) (model.TokenStats, error)
}

// ConversationTokens sums the token columns of conversation.csv.
type ConversationTokens struct {
	Loader ConversationLoader
}

// TokenStats implements TokenSource.
func (t ConversationTokens) TokenStats(ctx context.Context) (model.TokenStats, error) {
	records, err := t.Loader.Conversations(ctx)
	if err != nil {
		return model.TokenStats{}, err
	}
	return TokenTotals(records), nil
}

// FileTokens reads token_stats.json.
type FileTokens struct {
	Reader *source.Reader
	Name   string
}

// TokenStats implements TokenSource.
func (t FileTokens) TokenStats(ctx context.Context) (model.TokenStats, error) {
	var ts model.TokenStats
	if err := t.Reader.DecodeJSON(ctx, t.Name, &ts); err != nil {
		return model.TokenStats{}, err
	}
	if ts.InputTokens < 0 || ts.OutputTokens < 0 || ts.TotalTokens < 0 {
		return model.TokenStats{}, source.ParseError(t.Name, fmt.Errorf("negative token count"))
	}
	return ts, nil
}

// StaticTokens returns fixed, configured totals.
type StaticTokens struct {
	Stats model.TokenStats
}

// TokenStats implements TokenSource.
func (t StaticTokens) TokenStats(context.Context) (model.TokenStats, error) {
	ts := t.Stats
	if ts.TotalTokens == 0 {
		ts.TotalTokens = ts.InputTokens + ts.OutputTokens
	}
	return ts, nil
}
