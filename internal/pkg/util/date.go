package util

import "time"

// DateKeyLayout 日历日期键格式，连续贡献判定以此为准
const DateKeyLayout = "2006-01-02"

// DateKey 返回 t 在 loc 时区下的日历日期键
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateKeyLayout)
}

// ShiftDateKey 在 loc 时区下对 t 偏移 days 天后取日期键
func ShiftDateKey(t time.Time, days int, loc *time.Location) string {
	return t.In(loc).AddDate(0, 0, days).Format(DateKeyLayout)
}

// Midnight 返回 t 在 loc 时区下当天零点
func Midnight(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// WeekStart 返回 t 所在周的起点：最近一个周日零点（含当天）
func WeekStart(t time.Time, loc *time.Location) time.Time {
	midnight := Midnight(t, loc)
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// MonthStart 返回 t 所在月的 1 号零点
func MonthStart(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
}
