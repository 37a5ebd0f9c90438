package models

// WeeklyBucket summarises one trailing seven day window
type WeeklyBucket struct {
	Week      string  `json:"week"`
	Start     string  `json:"start"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// DailyPoint is one day of the trend series
type DailyPoint struct {
	Date      string  `json:"date"`
	Day       string  `json:"day"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// AnalyticsSummary is derived from the last 30 days of daily logs
type AnalyticsSummary struct {
	TotalAttempted    int            `json:"total_attempted"`
	TotalCorrect      int            `json:"total_correct"`
	Accuracy          float64        `json:"accuracy"`
	ActiveDays        int            `json:"active_days"`
	CurrentStreak     int            `json:"current_streak"`
	LongestStreak     int            `json:"longest_streak"`
	ProductivityScore float64        `json:"productivity_score"`
	Weekly            []WeeklyBucket `json:"weekly"`
	DailyTrend        []DailyPoint   `json:"daily_trend"`
}

// WeekDay is one entry of the dashboard's seven day chart
type WeekDay struct {
	Day       string `json:"day"`
	Date      string `json:"date"`
	Attempted int    `json:"attempted"`
	Correct   int    `json:"correct"`
}

// DashboardStats is the dashboard overview for a user
type DashboardStats struct {
	CurrentStreak int            `json:"current_streak"`
	LongestStreak int            `json:"longest_streak"`
	Accuracy      float64        `json:"accuracy"`
	Heatmap       map[string]int `json:"heatmap"`
	Weekly        []WeekDay      `json:"weekly"`
	IsPro         bool           `json:"is_pro"`
}
