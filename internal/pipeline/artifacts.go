package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/theirongolddev/chatwrap/internal/config"
	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/source"
	"github.com/theirongolddev/chatwrap/internal/store"
)

// Artifacts serves every dashboard input from the local output directory.
// It is safe for concurrent use.
type Artifacts struct {
	reader   *source.Reader
	names    config.ArtifactsConfig
	loc      *time.Location
	cache    *store.Cache
	patterns PatternSource
	tokens   TokenSource

	mu   sync.Mutex
	last *LoadResult
}

// NewArtifacts wires the reader, optional cache and configured stats sources.
// cache may be nil.
func NewArtifacts(cfg config.Config, cache *store.Cache) (*Artifacts, error) {
	a := &Artifacts{
		reader: source.NewReader(cfg.General.OutDir),
		names:  cfg.Artifacts,
		loc:    cfg.Location(),
		cache:  cache,
	}

	switch cfg.Patterns.Source {
	case config.SourceConversations:
		a.patterns = ConversationPatterns{Loader: a, Loc: a.loc}
	case config.SourceFile:
		a.patterns = FilePatterns{Reader: a.reader, Name: cfg.Artifacts.TimePatterns}
	case config.SourceSynthetic:
		seed := cfg.Patterns.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		a.patterns = SyntheticPatterns{Seed: seed}
	default:
		return nil, fmt.Errorf("unknown patterns source %q", cfg.Patterns.Source)
	}

	switch cfg.Tokens.Source {
	case config.SourceConversations:
		a.tokens = ConversationTokens{Loader: a}
	case config.SourceFile:
		a.tokens = FileTokens{Reader: a.reader, Name: cfg.Artifacts.TokenStats}
	case config.SourceStatic:
		a.tokens = StaticTokens{Stats: model.TokenStats{
			InputTokens:  cfg.Tokens.Input,
			OutputTokens: cfg.Tokens.Output,
			TotalTokens:  cfg.Tokens.Total,
		}}
	default:
		return nil, fmt.Errorf("unknown tokens source %q", cfg.Tokens.Source)
	}

	return a, nil
}

// Reader exposes the underlying artifact reader.
func (a *Artifacts) Reader() *source.Reader { return a.reader }

// Names returns the configured artifact file names.
func (a *Artifacts) Names() config.ArtifactsConfig { return a.names }

// Location returns the display time zone.
func (a *Artifacts) Location() *time.Location { return a.loc }

// LoadConversations parses conversation.csv, reusing the in-memory result
// while the file's size and mtime are unchanged.
func (a *Artifacts) LoadConversations(ctx context.Context) (*LoadResult, error) {
	info, err := a.reader.Stat(a.names.Conversations)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.last != nil && a.last.Size == info.Size && a.last.ModTime.Equal(info.ModTime) {
		return a.last, nil
	}

	result, err := LoadWithCache(ctx, a.reader, a.names.Conversations, a.loc, a.cache)
	if err != nil {
		return nil, err
	}
	if result.ParseErrors > 0 {
		slog.Warn("skipped malformed conversation rows", "file", a.names.Conversations, "rows", result.ParseErrors)
	}
	a.last = result
	return result, nil
}

// Conversations implements ConversationLoader.
func (a *Artifacts) Conversations(ctx context.Context) ([]model.ConversationRecord, error) {
	result, err := a.LoadConversations(ctx)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// ConversationsCSV returns conversation.csv verbatim.
func (a *Artifacts) ConversationsCSV(ctx context.Context) (string, error) {
	return a.reader.ReadText(ctx, a.names.Conversations)
}

// ClusterSummariesJSON returns cluster_summaries.json compacted, key order kept.
func (a *Artifacts) ClusterSummariesJSON(ctx context.Context) ([]byte, error) {
	return a.reader.ReadJSON(ctx, a.names.ClusterSummaries)
}

// ClusterSummaries decodes cluster_summaries.json in display order.
func (a *Artifacts) ClusterSummaries(ctx context.Context) (model.ClusterSummaries, error) {
	data, err := a.reader.ReadBytes(ctx, a.names.ClusterSummaries)
	if err != nil {
		return nil, err
	}
	clusters, err := source.DecodeClusters(data)
	if err != nil {
		return nil, source.ParseError(a.names.ClusterSummaries, err)
	}
	return clusters, nil
}

// DurationStatsJSON returns duration_stats.json compacted.
func (a *Artifacts) DurationStatsJSON(ctx context.Context) ([]byte, error) {
	return a.reader.ReadJSON(ctx, a.names.DurationStats)
}

// DurationStats decodes duration_stats.json. When the file is missing the
// stats are computed from conversation.csv instead.
func (a *Artifacts) DurationStats(ctx context.Context) (model.DurationStats, error) {
	var ds model.DurationStats
	err := a.reader.DecodeJSON(ctx, a.names.DurationStats, &ds)
	if err == nil {
		return ds, nil
	}
	if !errors.Is(err, source.ErrNotFound) {
		return model.DurationStats{}, err
	}
	records, cerr := a.Conversations(ctx)
	if cerr != nil {
		return model.DurationStats{}, err
	}
	return ComputeDurationStats(records), nil
}

// TimePatterns implements PatternSource using the configured source.
func (a *Artifacts) TimePatterns(ctx context.Context) (model.TimePatterns, error) {
	return a.patterns.TimePatterns(ctx)
}

// TokenStats implements TokenSource using the configured source.
func (a *Artifacts) TokenStats(ctx context.Context) (model.TokenStats, error) {
	return a.tokens.TokenStats(ctx)
}

// Inventory stats every configured artifact. Missing files are reported with
// a zero ModTime.
func (a *Artifacts) Inventory() []source.FileInfo {
	names := []string{
		a.names.ClusterSummaries,
		a.names.DurationStats,
		a.names.Conversations,
		a.names.TimePatterns,
		a.names.TokenStats,
	}
	out := make([]source.FileInfo, 0, len(names))
	for _, name := range names {
		fi, err := a.reader.Stat(name)
		if err != nil {
			fi = source.FileInfo{Name: name}
		}
		out = append(out, fi)
	}
	return out
}
