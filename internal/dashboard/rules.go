package dashboard

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/theirongolddev/chatwrap/internal/model"
)

// HourHighlight describes the busiest hour of the day.
type HourHighlight struct {
	Hour   int    `json:"hour"`
	Label  string `json:"label"`
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// HourLabel renders an hour as "HH:00".
func HourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// NormalizeHourly turns a sparse hour->count mapping into 24 buckets in hour
// order. Keys may be "0".."23" or "00".."23"; anything else is ignored.
func NormalizeHourly(pattern map[string]int) []model.HourlyBucket {
	var counts [24]int
	for k, v := range pattern {
		if h, err := strconv.Atoi(k); err == nil && h >= 0 && h < 24 {
			counts[h] = v
		}
	}
	buckets := make([]model.HourlyBucket, 24)
	for h := range buckets {
		buckets[h] = model.HourlyBucket{Hour: HourLabel(h), Count: counts[h]}
	}
	return buckets
}

// NormalizeSeasonal turns a season key->count mapping into four labelled
// buckets, spring first.
func NormalizeSeasonal(pattern map[string]int) []model.SeasonalBucket {
	buckets := make([]model.SeasonalBucket, 4)
	for i := range buckets {
		buckets[i] = model.SeasonalBucket{Name: model.SeasonNames[i], Value: pattern[strconv.Itoa(i+1)]}
	}
	return buckets
}

// MostActiveHour picks the bucket with the highest count. Ties go to the
// earliest bucket; with no buckets the result is hour 0 with count 0.
func MostActiveHour(buckets []model.HourlyBucket) HourHighlight {
	best := -1
	maxCount := 0
	for i, b := range buckets {
		if best < 0 || b.Count > buckets[best].Count {
			best = i
		}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	hour := 0
	if best >= 0 {
		if h, err := strconv.Atoi(buckets[best].Hour[:min(2, len(buckets[best].Hour))]); err == nil {
			hour = h
		}
	}
	return HourHighlight{
		Hour:   hour,
		Label:  HourLabel(hour),
		Phrase: HourPhrase(hour),
		Count:  maxCount,
	}
}

// HourPhrase names the part of day an hour falls in.
func HourPhrase(h int) string {
	switch {
	case h >= 5 && h < 12:
		return "晨光熹微"
	case h >= 12 && h < 14:
		return "正午时分"
	case h >= 14 && h < 18:
		return "午后时光"
	case h >= 18 && h < 22:
		return "日暮时分"
	default:
		return "深夜时分"
	}
}

// TopTopics drops the noise cluster, orders the rest by size (stable, so
// equal sizes keep document order) and returns the first n as bars sized
// relative to the largest.
func TopTopics(clusters model.ClusterSummaries, n int) []model.TopicBar {
	var kept []model.Cluster
	for _, c := range clusters {
		if c.ID == model.NoiseClusterID {
			continue
		}
		kept = append(kept, c)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Nums > kept[j].Nums })
	if len(kept) > n {
		kept = kept[:n]
	}

	bars := make([]model.TopicBar, len(kept))
	for i, c := range kept {
		width := 0.0
		if top := kept[0].Nums; top > 0 {
			width = float64(c.Nums) / float64(top) * 100
		}
		bars[i] = model.TopicBar{ID: c.ID, Name: c.Name, Value: c.Nums, WidthPercent: width}
	}
	return bars
}

// RichestSeason returns the season with the largest value. Only strictly
// positive values qualify, so all-zero input yields an empty bucket.
func RichestSeason(buckets []model.SeasonalBucket) model.SeasonalBucket {
	var best model.SeasonalBucket
	for _, b := range buckets {
		if b.Value > best.Value {
			best = b
		}
	}
	return best
}

var hoursPattern = regexp.MustCompile(`(\d+(\.\d+)?)`)

// ParseHours extracts the first decimal number from strings like "12.50 hrs".
// Anything without a number parses as 0.
func ParseHours(s string) float64 {
	m := hoursPattern.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// NumberDisplay prints whole numbers without decimals and everything else
// with one: 12 -> "12", 12.57 -> "12.6".
func NumberDisplay(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}
