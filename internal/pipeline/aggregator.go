// Package pipeline loads pipeline artifacts and aggregates conversations into
// calendar, rhythm and token metrics.
package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/chatwrap/internal/model"
)

const dateLayout = "2006-01-02"

// BuildContributions groups conversation start times by calendar date in loc
// and emits one cell per date that has at least one conversation, sorted by
// date. Week is dayOfMonth/7, Day is the weekday, Value is the count capped
// at model.MaxContributionLevel.
func BuildContributions(records []model.ConversationRecord, loc *time.Location) []model.ContributionCell {
	if loc == nil {
		loc = time.UTC
	}

	counts := make(map[string]int)
	days := make(map[string]time.Time)
	for _, r := range records {
		if r.StartTime.IsZero() {
			continue
		}
		t := r.StartTime.In(loc)
		key := t.Format(dateLayout)
		counts[key]++
		if _, ok := days[key]; !ok {
			days[key] = t
		}
	}

	cells := make([]model.ContributionCell, 0, len(counts))
	for key, n := range counts {
		t := days[key]
		cells = append(cells, model.ContributionCell{
			Date:  key,
			Month: int(t.Month()) - 1,
			Week:  t.Day() / 7,
			Day:   int(t.Weekday()),
			Value: min(model.MaxContributionLevel, n),
			Count: n,
		})
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Date < cells[j].Date })
	return cells
}

// ContributionYear returns the latest year present in cells, or the current
// year when there are none.
func ContributionYear(cells []model.ContributionCell) int {
	year := 0
	for _, c := range cells {
		if t, err := time.Parse(dateLayout, c.Date); err == nil && t.Year() > year {
			year = t.Year()
		}
	}
	if year == 0 {
		return time.Now().Year()
	}
	return year
}

// CellsForYear keeps the cells dated within year.
func CellsForYear(cells []model.ContributionCell, year int) []model.ContributionCell {
	prefix := fmt.Sprintf("%04d-", year)
	var out []model.ContributionCell
	for _, c := range cells {
		if len(c.Date) >= 5 && c.Date[:5] == prefix {
			out = append(out, c)
		}
	}
	return out
}

// Season maps a month to its season key: 1 spring (Mar-May), 2 summer,
// 3 autumn, 4 winter (Dec-Feb).
func Season(m time.Month) int {
	switch m {
	case time.March, time.April, time.May:
		return 1
	case time.June, time.July, time.August:
		return 2
	case time.September, time.October, time.November:
		return 3
	default:
		return 4
	}
}

// AggregateHourly counts conversation starts per hour of day in loc.
func AggregateHourly(records []model.ConversationRecord, loc *time.Location) [24]int {
	if loc == nil {
		loc = time.UTC
	}
	var hours [24]int
	for _, r := range records {
		if r.StartTime.IsZero() {
			continue
		}
		hours[r.StartTime.In(loc).Hour()]++
	}
	return hours
}

// AggregateSeasonal counts conversation starts per season in loc. Index 0 is
// season key 1.
func AggregateSeasonal(records []model.ConversationRecord, loc *time.Location) [4]int {
	if loc == nil {
		loc = time.UTC
	}
	var seasons [4]int
	for _, r := range records {
		if r.StartTime.IsZero() {
			continue
		}
		seasons[Season(r.StartTime.In(loc).Month())-1]++
	}
	return seasons
}

// PatternsFromCounts renders hourly and seasonal counts in wire shape.
func PatternsFromCounts(hours [24]int, seasons [4]int) model.TimePatterns {
	tp := model.TimePatterns{
		HourlyPattern:   make(map[string]int, 24),
		SeasonalPattern: make(map[string]int, 4),
	}
	for h, n := range hours {
		tp.HourlyPattern[fmt.Sprintf("%02d", h)] = n
	}
	for i, n := range seasons {
		tp.SeasonalPattern[fmt.Sprintf("%d", i+1)] = n
	}
	return tp
}

// TokenTotals sums token counts across conversations.
func TokenTotals(records []model.ConversationRecord) model.TokenStats {
	var ts model.TokenStats
	for _, r := range records {
		ts.InputTokens += r.InputTokens
		ts.OutputTokens += r.OutputTokens
	}
	ts.TotalTokens = ts.InputTokens + ts.OutputTokens
	return ts
}

// ComputeDurationStats derives duration_stats.json contents from the
// conversation rows. The longest chat is the one with the most dialogue
// turns, first occurrence on ties.
func ComputeDurationStats(records []model.ConversationRecord) model.DurationStats {
	hrs := func(secs float64) string { return fmt.Sprintf("%.2f hrs", secs/3600) }

	if len(records) == 0 {
		return model.DurationStats{
			TotalDuration:   hrs(0),
			AverageDuration: hrs(0),
			LongestChat:     model.LongestChat{Duration: hrs(0)},
		}
	}

	var total float64
	var turns int
	longest := 0
	for i, r := range records {
		total += r.DurationSecs
		turns += r.DialogueTurns
		if r.DialogueTurns > records[longest].DialogueTurns {
			longest = i
		}
	}
	n := float64(len(records))
	avgTurns := float64(turns) / n
	return model.DurationStats{
		TotalDuration:   hrs(total),
		AverageDuration: hrs(total / n),
		AverageTurns:    &avgTurns,
		LongestChat: model.LongestChat{
			Duration: hrs(records[longest].DurationSecs),
			Name:     records[longest].Name,
		},
	}
}
