package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/chatwrap/internal/model"
)

func conv(ts string) model.ConversationRecord {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return model.ConversationRecord{StartTime: t}
}

func TestBuildContributions_SameDay(t *testing.T) {
	records := []model.ConversationRecord{
		conv("2024-03-05T01:00:00Z"),
		conv("2024-03-05T08:00:00Z"),
		conv("2024-03-05T12:00:00Z"),
	}

	cells := BuildContributions(records, time.UTC)
	if len(cells) != 1 {
		t.Fatalf("len(cells) = %d, want 1", len(cells))
	}
	c := cells[0]
	if c.Month != 2 || c.Week != 0 || c.Day != 2 || c.Value != 3 || c.Count != 3 {
		t.Fatalf("cell = %+v, want month 2 week 0 day 2 value 3", c)
	}
	if c.Date != "2024-03-05" {
		t.Fatalf("Date = %q, want 2024-03-05", c.Date)
	}
}

func TestBuildContributions_ClampsValue(t *testing.T) {
	var records []model.ConversationRecord
	for i := 0; i < 9; i++ {
		records = append(records, conv("2024-06-20T10:00:00Z"))
	}
	cells := BuildContributions(records, time.UTC)
	if cells[0].Value != 4 {
		t.Fatalf("Value = %d, want 4", cells[0].Value)
	}
	if cells[0].Count != 9 {
		t.Fatalf("Count = %d, want 9", cells[0].Count)
	}
}

func TestBuildContributions_UsesLocationForDateBoundary(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	records := []model.ConversationRecord{conv("2024-03-04T17:00:00Z")}

	cells := BuildContributions(records, shanghai)
	if cells[0].Date != "2024-03-05" {
		t.Fatalf("Date = %q, want 2024-03-05 in +08:00", cells[0].Date)
	}
}

func TestBuildContributions_SortedAndSparse(t *testing.T) {
	records := []model.ConversationRecord{
		conv("2024-12-31T10:00:00Z"),
		conv("2024-01-01T10:00:00Z"),
		{},
	}
	cells := BuildContributions(records, time.UTC)
	if len(cells) != 2 {
		t.Fatalf("len(cells) = %d, want 2", len(cells))
	}
	if cells[0].Date != "2024-01-01" || cells[1].Date != "2024-12-31" {
		t.Fatalf("dates = %s,%s", cells[0].Date, cells[1].Date)
	}
	for _, c := range cells {
		if c.Value < 0 || c.Value > 4 || c.Day < 0 || c.Day > 6 || c.Month < 0 || c.Month > 11 {
			t.Fatalf("cell out of range: %+v", c)
		}
	}
}

func TestContributionYearAndFilter(t *testing.T) {
	cells := []model.ContributionCell{{Date: "2023-05-01"}, {Date: "2024-02-02"}, {Date: "2024-07-07"}}
	if y := ContributionYear(cells); y != 2024 {
		t.Fatalf("ContributionYear = %d, want 2024", y)
	}
	if got := CellsForYear(cells, 2024); len(got) != 2 {
		t.Fatalf("CellsForYear(2024) len = %d, want 2", len(got))
	}
}

func TestSeason(t *testing.T) {
	cases := map[time.Month]int{
		time.January: 4, time.March: 1, time.May: 1, time.June: 2,
		time.August: 2, time.September: 3, time.November: 3, time.December: 4,
	}
	for m, want := range cases {
		if got := Season(m); got != want {
			t.Errorf("Season(%s) = %d, want %d", m, got, want)
		}
	}
}

func TestAggregateHourlyAndSeasonal(t *testing.T) {
	records := []model.ConversationRecord{
		conv("2024-04-01T14:10:00Z"),
		conv("2024-04-02T14:50:00Z"),
		conv("2024-12-02T03:00:00Z"),
	}
	hours := AggregateHourly(records, time.UTC)
	if hours[14] != 2 || hours[3] != 1 {
		t.Fatalf("hours[14]=%d hours[3]=%d, want 2 and 1", hours[14], hours[3])
	}
	seasons := AggregateSeasonal(records, time.UTC)
	if seasons[0] != 2 || seasons[3] != 1 {
		t.Fatalf("seasons = %v, want spring 2 winter 1", seasons)
	}

	tp := PatternsFromCounts(hours, seasons)
	if len(tp.HourlyPattern) != 24 || tp.HourlyPattern["14"] != 2 || tp.HourlyPattern["03"] != 1 {
		t.Fatalf("HourlyPattern = %v", tp.HourlyPattern)
	}
	if tp.SeasonalPattern["1"] != 2 || tp.SeasonalPattern["4"] != 1 {
		t.Fatalf("SeasonalPattern = %v", tp.SeasonalPattern)
	}
}

func TestTokenTotals(t *testing.T) {
	records := []model.ConversationRecord{
		{InputTokens: 100, OutputTokens: 250},
		{InputTokens: 5, OutputTokens: 0},
	}
	ts := TokenTotals(records)
	if ts.InputTokens != 105 || ts.OutputTokens != 250 || ts.TotalTokens != 355 {
		t.Fatalf("TokenTotals = %+v", ts)
	}
}

func TestComputeDurationStats(t *testing.T) {
	records := []model.ConversationRecord{
		{Name: "short", DurationSecs: 1800, DialogueTurns: 2},
		{Name: "deep", DurationSecs: 5400, DialogueTurns: 9},
		{Name: "tie", DurationSecs: 100, DialogueTurns: 9},
	}
	ds := ComputeDurationStats(records)
	if ds.TotalDuration != "2.03 hrs" {
		t.Errorf("TotalDuration = %q, want 2.03 hrs", ds.TotalDuration)
	}
	if ds.LongestChat.Name != "deep" || ds.LongestChat.Duration != "1.50 hrs" {
		t.Errorf("LongestChat = %+v, want deep 1.50 hrs", ds.LongestChat)
	}
	if ds.AverageTurns == nil || *ds.AverageTurns != 20.0/3 {
		t.Errorf("AverageTurns = %v", ds.AverageTurns)
	}

	empty := ComputeDurationStats(nil)
	if empty.TotalDuration != "0.00 hrs" {
		t.Errorf("empty TotalDuration = %q", empty.TotalDuration)
	}
}
