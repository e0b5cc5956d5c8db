package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/theirongolddev/chatwrap/internal/config"
	"github.com/theirongolddev/chatwrap/internal/source"
	"github.com/theirongolddev/chatwrap/internal/store"
)

// LoadWithCache returns cached rows when the artifact's mtime and size match
// the tracked entry, and otherwise parses the file and refreshes the cache.
// Cache failures are logged and never fail the load.
func LoadWithCache(ctx context.Context, r *source.Reader, name string, loc *time.Location, cache *store.Cache) (*LoadResult, error) {
	if cache == nil {
		return Load(ctx, r, name, loc)
	}

	info, err := r.Stat(name)
	if err != nil {
		return nil, err
	}
	key, err := filepath.Abs(info.Path)
	if err != nil {
		key = info.Path
	}
	mtime := info.ModTime.UnixNano()

	tracked, ok, err := cache.TrackedFile(key)
	if err != nil {
		slog.Warn("reading conversation cache", "file", key, "err", err)
	}
	if ok && tracked.Matches(mtime, info.Size) {
		records, err := cache.LoadConversations(key)
		if err == nil {
			return &LoadResult{
				Records:     records,
				ParseErrors: tracked.ParseErrors,
				Size:        info.Size,
				ModTime:     info.ModTime,
				CacheHit:    true,
			}, nil
		}
		slog.Warn("loading cached conversations", "file", key, "err", err)
	}

	result, err := Load(ctx, r, name, loc)
	if err != nil {
		return nil, err
	}
	if err := cache.SaveConversations(key, result.Records, result.ParseErrors, result.ModTime.UnixNano(), result.Size); err != nil {
		slog.Warn("saving conversation cache", "file", key, "err", err)
	}
	return result, nil
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(config.CacheDir(), "conversations.db")
}
