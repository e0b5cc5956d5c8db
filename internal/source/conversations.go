package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/chatwrap/internal/model"
)

// Timestamp layouts seen in conversation.csv. pandas writes the first one;
// the fractional part is optional when parsing.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseResult holds the output of parsing conversation.csv.
type ParseResult struct {
	Records     []model.ConversationRecord
	ParseErrors int
}

// ParseConversations reads conversation.csv. Columns are matched by header
// name. Rows without a usable start_time are skipped and counted in
// ParseErrors; other malformed numeric fields default to zero. Timestamps
// without an offset are interpreted in loc.
func ParseConversations(r io.Reader, loc *time.Location) (ParseResult, error) {
	if loc == nil {
		loc = time.UTC
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ParseResult{}, fmt.Errorf("reading header: empty file")
		}
		return ParseResult{}, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := cols["start_time"]; !ok {
		return ParseResult{}, fmt.Errorf("missing start_time column")
	}

	var result ParseResult
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				result.ParseErrors++
				continue
			}
			return result, fmt.Errorf("reading row: %w", err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		start, ok := ParseTimestamp(field("start_time"), loc)
		if !ok {
			result.ParseErrors++
			continue
		}

		rec := model.ConversationRecord{
			UUID:      field("uuid"),
			Name:      field("name"),
			StartTime: start,
		}
		if end, ok := ParseTimestamp(field("end_time"), loc); ok {
			rec.EndTime = end
		}
		rec.DurationSecs, _ = strconv.ParseFloat(field("duration"), 64)
		rec.DialogueTurns = int(parseInt(field("dialogue_turns")))
		rec.InputTokens = parseInt(field("input_tokens"))
		rec.OutputTokens = parseInt(field("output_tokens"))

		result.Records = append(result.Records, rec)
	}
	return result, nil
}

// ParseTimestamp tries each known layout in turn.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseInt accepts integers and pandas float renderings like "12.0".
func parseInt(s string) int64 {
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
