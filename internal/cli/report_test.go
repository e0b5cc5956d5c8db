package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/model"
)

func sampleView() dashboard.View {
	hourly := dashboard.NormalizeHourly(map[string]int{"14": 12})
	seasonal := dashboard.NormalizeSeasonal(map[string]int{"3": 5})
	return dashboard.View{
		Year:          2024,
		Conversations: 1234,
		Summary:       dashboard.Summary{TotalHours: 12.5, LongestChatName: "Deep dive"},
		Tokens:        model.TokenStats{InputTokens: 1_500_000, OutputTokens: 999, TotalTokens: 1_500_999},
		Contributions: []model.ContributionCell{{Date: "2024-03-05", Value: 3, Count: 3}},
		Hourly:        hourly,
		MostActive:    dashboard.MostActiveHour(hourly),
		Seasonal:      seasonal,
		RichestSeason: dashboard.RichestSeason(seasonal),
		TopTopics: []model.TopicBar{
			{Name: "Go 并发", Value: 10, WidthPercent: 100},
			{Name: "SQL", Value: 5, WidthPercent: 50},
		},
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(sampleView())
	for _, want := range []string{"2024", "1,234", "12.5", "1.5M", "14:00", "午后时光", "秋·收获", "Deep dive"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTopics(t *testing.T) {
	out := RenderTopics(sampleView())
	if !strings.Contains(out, "Go 并发") || !strings.Contains(out, "10 次") {
		t.Fatalf("topics output:\n%s", out)
	}
	if strings.Index(out, "Go 并发") > strings.Index(out, "SQL") {
		t.Fatal("topics not in rank order")
	}
}

func TestRenderHeatmapHasSevenRows(t *testing.T) {
	out := RenderHeatmap(sampleView(), time.UTC)
	if !strings.Contains(out, "Mar") {
		t.Fatalf("heatmap missing month label:\n%s", out)
	}
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "■") && !strings.Contains(line, "少") {
			rows++
		}
	}
	if rows != 7 {
		t.Fatalf("heatmap rows = %d, want 7", rows)
	}
}

func TestRenderTableAlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{Rows: [][]string{{"总计", "1"}, {"ab", "22"}}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4:\n%s", len(lines), out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("truncate = %q, want abc…", got)
	}
	if got := truncate("ab", 4); got != "ab" {
		t.Fatalf("truncate = %q, want ab", got)
	}
}
