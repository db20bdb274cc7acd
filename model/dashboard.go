package model

// DashboardStats is the payload of GET /dashboard/stats.
type DashboardStats struct {
	TotalSongs         int64          `json:"total_songs"`
	TotalPracticeLogs  int64          `json:"total_practice_logs"`
	StatusCounts       map[string]int `json:"status_counts"`
	RecentPracticeLogs []PracticeLog  `json:"recent_practice_logs"`
}
