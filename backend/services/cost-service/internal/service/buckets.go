package service

import (
	"fmt"
	"time"

	"energytrack/backend/services/cost-service/internal/models"
)

// BucketBounds returns the calendar bucket [start, end) of period that contains now, in now's
// location. Weeks start on Sunday.
func BucketBounds(period models.Period, now time.Time) (time.Time, time.Time, error) {
	y, m, d := now.Date()
	loc := now.Location()

	switch period {
	case models.PeriodDaily:
		start := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1), nil
	case models.PeriodWeekly:
		start := time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 7), nil
	case models.PeriodMonthly:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}
