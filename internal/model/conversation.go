// Package model defines domain types for chatwrap artifacts and derived views.
package model

import "time"

// ConversationRecord is one row of conversation.csv as written by the pipeline.
type ConversationRecord struct {
	UUID          string
	Name          string
	StartTime     time.Time
	EndTime       time.Time
	DurationSecs  float64
	DialogueTurns int
	InputTokens   int64
	OutputTokens  int64
}

// Cluster is one entry of cluster_summaries.json.
type Cluster struct {
	ID   string `json:"id"`
	Name string `json:"cluster"`
	Nums int    `json:"nums"`
}

// NoiseClusterID marks conversations the clustering step could not assign.
const NoiseClusterID = "-1"

// ClusterSummaries keeps clusters in the key order of the source document.
type ClusterSummaries []Cluster

// LongestChat names the single longest conversation.
type LongestChat struct {
	Duration string `json:"duration"`
	Name     string `json:"name"`
}

// DurationStats mirrors duration_stats.json. Durations are strings like "12.50 hrs".
type DurationStats struct {
	TotalDuration   string      `json:"total_duration"`
	AverageDuration string      `json:"average_duration"`
	AverageTurns    *float64    `json:"average_turns,omitempty"`
	LongestChat     LongestChat `json:"longest_chat"`
}

// TokenStats holds lifetime token totals.
type TokenStats struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// TimePatterns is the wire shape of /api/time-patterns.
// Hourly keys are "00".."23", seasonal keys "1".."4".
type TimePatterns struct {
	HourlyPattern   map[string]int `json:"hourly_pattern"`
	SeasonalPattern map[string]int `json:"seasonal_pattern"`
}
