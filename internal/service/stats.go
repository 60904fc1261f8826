package service

import "time"

const defaultStatsDays = 30

// statsWindow 统计窗口天数及起始时间
func statsWindow(days int) (int, time.Time) {
	if days <= 0 {
		days = defaultStatsDays
	}
	return days, time.Now().AddDate(0, 0, -days)
}
