package dimensions

import (
	"log/slog"
	"time"

	"starmart/internal/schema"
	"starmart/internal/source"
)

const isoDate = "2006-01-02"

// BuildTimeSlots produces one dim_time row per distinct (date, hour) pair.
// Events without a date or hour carry no time slot and are skipped here; the
// detail fact stores a NULL time key for them.
func BuildTimeSlots(events []source.RawEvent, logger *slog.Logger) []schema.DimTime {
	now := time.Now().UTC()
	seen := make(map[schema.TimeKey]bool)
	var rows []schema.DimTime

	for _, event := range events {
		if event.Date == nil || event.Hour == nil {
			continue
		}
		key := schema.TimeKey{Date: *event.Date, Hour: *event.Hour}
		if seen[key] {
			continue
		}
		seen[key] = true

		date, err := time.Parse(isoDate, key.Date)
		if err != nil {
			logger.Warn("Skipping time slot with malformed date",
				slog.String("date", key.Date), slog.Any("error", err))
			continue
		}

		rows = append(rows, timeSlotRow(key, date, now))
	}

	logger.Info("Built time dimension", slog.Int("rows", len(rows)))
	return rows
}

// timeSlotRow derives every dim_time column from the (date, hour) pair.
func timeSlotRow(key schema.TimeKey, date time.Time, createdAt time.Time) schema.DimTime {
	weekday := mondayIndexed(date.Weekday())
	weekStart := date.AddDate(0, 0, -weekday)
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)

	return schema.DimTime{
		TimeKey:    key.String(),
		Date:       key.Date,
		Year:       date.Year(),
		Month:      int(date.Month()),
		Day:        date.Day(),
		Hour:       key.Hour,
		DayOfWeek:  weekday,
		DayName:    date.Weekday().String(),
		MonthName:  date.Month().String(),
		Quarter:    (int(date.Month())-1)/3 + 1,
		IsWeekend:  weekday >= 5,
		DateLabel:  date.Format("Jan 02, 2006"),
		WeekStart:  weekStart.Format(isoDate),
		MonthStart: monthStart.Format(isoDate),
		CreatedAt:  createdAt,
	}
}

// mondayIndexed converts Go's Sunday-first weekday to the Monday=0 indexing
// the dashboard groups by.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}
