package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/source"
)

type stubLoader struct {
	records []model.ConversationRecord
	err     error
}

func (s stubLoader) Conversations(context.Context) ([]model.ConversationRecord, error) {
	return s.records, s.err
}

func TestSyntheticPatterns_DeterministicPerSeed(t *testing.T) {
	ctx := context.Background()
	a, _ := SyntheticPatterns{Seed: 42}.TimePatterns(ctx)
	b, _ := SyntheticPatterns{Seed: 42}.TimePatterns(ctx)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different patterns")
	}
	if len(a.HourlyPattern) != 24 || len(a.SeasonalPattern) != 4 {
		t.Fatalf("sizes = %d/%d, want 24/4", len(a.HourlyPattern), len(a.SeasonalPattern))
	}
	for k, v := range a.HourlyPattern {
		if v < 0 || v >= 100 {
			t.Fatalf("hour %s = %d, want [0,100)", k, v)
		}
	}

	c, _ := SyntheticPatterns{Seed: 43}.TimePatterns(ctx)
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical patterns")
	}
}

func TestFilePatterns_NormalizesKeys(t *testing.T) {
	dir := t.TempDir()
	body := `{"hourly_pattern":{"0":3,"13":7,"99":1},"seasonal_pattern":{"1":4,"4":2,"x":9}}`
	if err := os.WriteFile(filepath.Join(dir, "time_patterns.json"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	tp, err := FilePatterns{Reader: source.NewReader(dir), Name: "time_patterns.json"}.TimePatterns(context.Background())
	if err != nil {
		t.Fatalf("TimePatterns: %v", err)
	}
	if tp.HourlyPattern["00"] != 3 || tp.HourlyPattern["13"] != 7 || tp.HourlyPattern["05"] != 0 {
		t.Fatalf("HourlyPattern = %v", tp.HourlyPattern)
	}
	if len(tp.HourlyPattern) != 24 {
		t.Fatalf("len(HourlyPattern) = %d, want 24", len(tp.HourlyPattern))
	}
	// Pipeline key 1 is winter and key 4 autumn.
	if tp.SeasonalPattern["4"] != 4 || tp.SeasonalPattern["3"] != 2 || tp.SeasonalPattern["1"] != 0 {
		t.Fatalf("SeasonalPattern = %v", tp.SeasonalPattern)
	}
}

func TestFilePatterns_SeasonsMatchConversations(t *testing.T) {
	records := []model.ConversationRecord{
		{StartTime: time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)},
		{StartTime: time.Date(2024, time.April, 2, 9, 0, 0, 0, time.UTC)},
		{StartTime: time.Date(2024, time.July, 2, 9, 0, 0, 0, time.UTC)},
		{StartTime: time.Date(2024, time.July, 3, 9, 0, 0, 0, time.UTC)},
		{StartTime: time.Date(2024, time.October, 2, 9, 0, 0, 0, time.UTC)},
	}
	ctx := context.Background()
	fromRecords, err := ConversationPatterns{Loader: stubLoader{records: records}, Loc: time.UTC}.TimePatterns(ctx)
	if err != nil {
		t.Fatalf("ConversationPatterns: %v", err)
	}

	// Same data keyed the way the pipeline writes it: month%12/3+1.
	seasonal := map[string]int{}
	for _, r := range records {
		seasonal[strconv.Itoa(int(r.StartTime.Month())%12/3+1)]++
	}
	body, err := json.Marshal(map[string]any{"hourly_pattern": map[string]int{"9": len(records)}, "seasonal_pattern": seasonal})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "time_patterns.json"), body, 0o600); err != nil {
		t.Fatal(err)
	}
	fromFile, err := FilePatterns{Reader: source.NewReader(dir), Name: "time_patterns.json"}.TimePatterns(ctx)
	if err != nil {
		t.Fatalf("FilePatterns: %v", err)
	}

	if !reflect.DeepEqual(fromFile.SeasonalPattern, fromRecords.SeasonalPattern) {
		t.Fatalf("file seasons = %v, conversation seasons = %v", fromFile.SeasonalPattern, fromRecords.SeasonalPattern)
	}
	if fromRecords.SeasonalPattern["4"] != 1 || fromRecords.SeasonalPattern["2"] != 2 {
		t.Fatalf("conversation seasons = %v, want winter 1 and summer 2", fromRecords.SeasonalPattern)
	}
}

func TestFilePatterns_Missing(t *testing.T) {
	_, err := FilePatterns{Reader: source.NewReader(t.TempDir()), Name: "time_patterns.json"}.TimePatterns(context.Background())
	if !errors.Is(err, source.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestConversationPatterns_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	_, err := ConversationPatterns{Loader: stubLoader{err: want}}.TimePatterns(context.Background())
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestStaticTokens_DefaultsTotal(t *testing.T) {
	ts, _ := StaticTokens{Stats: model.TokenStats{InputTokens: 1234567, OutputTokens: 2345678}}.TokenStats(context.Background())
	if ts.TotalTokens != 3580245 {
		t.Fatalf("TotalTokens = %d, want 3580245", ts.TotalTokens)
	}
}

func TestFileTokens_RejectsNegative(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "token_stats.json"), []byte(`{"input_tokens":-1}`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := FileTokens{Reader: source.NewReader(dir), Name: "token_stats.json"}.TokenStats(context.Background())
	if !errors.Is(err, source.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestConversationTokens(t *testing.T) {
	loader := stubLoader{records: []model.ConversationRecord{{InputTokens: 2, OutputTokens: 3}}}
	ts, err := ConversationTokens{Loader: loader}.TokenStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ts.TotalTokens != 5 {
		t.Fatalf("TotalTokens = %d, want 5", ts.TotalTokens)
	}
}
