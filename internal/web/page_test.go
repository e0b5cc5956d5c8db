package web

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/theme"
)

func sampleView(t *testing.T) dashboard.View {
	t.Helper()
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2024, 3, 9, 22, 15, 0, 0, shanghai)
	turns := 6.5
	return dashboard.Derive(dashboard.Inputs{
		Records: []model.ConversationRecord{{UUID: "u1", Name: "重构", StartTime: start}},
		Clusters: model.ClusterSummaries{
			{ID: "0", Name: "Go 并发", Nums: 12},
			{ID: "-1", Name: "噪声", Nums: 99},
			{ID: "1", Name: "<script>", Nums: 3},
		},
		Duration: model.DurationStats{
			TotalDuration:   "12.50 hrs",
			AverageDuration: "0.40 hrs",
			AverageTurns:    &turns,
			LongestChat:     model.LongestChat{Duration: "3.00 hrs", Name: "长谈"},
		},
		Patterns: model.TimePatterns{
			HourlyPattern:   map[string]int{"22": 5, "09": 2},
			SeasonalPattern: map[string]int{"1": 4, "3": 1},
		},
		Tokens: model.TokenStats{InputTokens: 1500, OutputTokens: 500, TotalTokens: 2000},
	}, dashboard.Options{Loc: shanghai, Now: func() time.Time { return start }})
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Page{View: sampleView(t), Theme: theme.Dawn})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Claude 年度总结 · 2024",
		"12.5 小时",
		"长谈",
		"2.0K",
		"Go 并发",
		"春·新生",
		"22:00",
		"/api/export?format=png",
		"#F9FAFB",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(out, "噪声") {
		t.Error("noise cluster should not be rendered")
	}
	if strings.Contains(out, "<script>") {
		t.Error("topic names must be escaped")
	}
	if strings.Contains(out, "@import") {
		t.Error("live page should not inline the font import")
	}
}

func TestRender_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Page{View: sampleView(t), Theme: theme.Dawn, Export: true}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "@import url('"+FontURL+"')") {
		t.Error("export should import JetBrains Mono")
	}
	if strings.Contains(out, "/api/export") {
		t.Error("export should not contain interactive controls")
	}
}

func TestRender_EmptyView(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Page{}); err != nil {
		t.Fatalf("Render(empty): %v", err)
	}
	if !strings.Contains(buf.String(), "暂无话题") {
		t.Error("empty topic list should render a placeholder")
	}
}
