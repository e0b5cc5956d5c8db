package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/source"
)

// LoadResult holds the parsed contents of conversation.csv.
type LoadResult struct {
	Records     []model.ConversationRecord
	ParseErrors int
	Size        int64
	ModTime     time.Time
	CacheHit    bool
}

// Load reads and parses the conversations artifact without the cache.
func Load(ctx context.Context, r *source.Reader, name string, loc *time.Location) (*LoadResult, error) {
	info, err := r.Stat(name)
	if err != nil {
		return nil, err
	}
	data, err := r.ReadBytes(ctx, name)
	if err != nil {
		return nil, err
	}

	parsed, err := source.ParseConversations(bytes.NewReader(data), loc)
	if err != nil {
		return nil, source.ParseError(name, err)
	}

	return &LoadResult{
		Records:     parsed.Records,
		ParseErrors: parsed.ParseErrors,
		Size:        info.Size,
		ModTime:     info.ModTime,
	}, nil
}
