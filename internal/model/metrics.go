package model

// ContributionCell is one day of the contribution calendar.
// Month is 0-based, Week is dayOfMonth/7, Day is the weekday (0=Sunday).
type ContributionCell struct {
	Date  string `json:"date"`
	Month int    `json:"month"`
	Week  int    `json:"week"`
	Day   int    `json:"day"`
	Value int    `json:"value"`
	Count int    `json:"count"`
}

// MaxContributionLevel caps ContributionCell.Value.
const MaxContributionLevel = 4

// HourlyBucket counts conversations started in one hour of the day.
type HourlyBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// SeasonalBucket counts conversations in one season.
type SeasonalBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SeasonNames holds display labels indexed by season key minus one.
var SeasonNames = [4]string{"春·新生", "夏·蝉鸣", "秋·收获", "冬·沉思"}

// TopicBar is one ranked cluster ready for display.
type TopicBar struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Value        int     `json:"value"`
	WidthPercent float64 `json:"width_percent"`
}
