package analysis

import (
	"math"
	"sort"
	"time"
)

// Default lengths of the trend series
const (
	DefaultTrendWeeks  = 12
	DefaultTrendMonths = 12
)

// WeekSummary aggregates one Monday-to-Sunday week
type WeekSummary struct {
	Label      string    `json:"week"`
	WeekStart  time.Time `json:"weekStart"`
	Distance   float64   `json:"distance"`
	Time       int       `json:"time"`
	Activities int       `json:"activities"`
	AvgPace    float64   `json:"avgPace"` // runs only, seconds per km
	AvgHR      float64   `json:"avgHR"`   // runs with heart rate only
	Elevation  float64   `json:"elevation"`
	TSS        float64   `json:"tss"`
}

// MonthSummary aggregates one calendar month
type MonthSummary struct {
	Label      string    `json:"month"`
	MonthStart time.Time `json:"monthStart"`
	Distance   float64   `json:"distance"`
	Time       int       `json:"time"`
	Activities int       `json:"activities"`
	AvgPace    float64   `json:"avgPace"`
	Elevation  float64   `json:"elevation"`
}

// StartOfWeek returns midnight of the Monday on or before t
func StartOfWeek(t time.Time) time.Time {
	d := civilDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// within reports whether a started in [from, to), comparing wall-clock dates
func within(a Activity, from, to time.Time) bool {
	wall := time.Date(a.StartDate.Year(), a.StartDate.Month(), a.StartDate.Day(),
		a.StartDate.Hour(), a.StartDate.Minute(), a.StartDate.Second(), 0, time.UTC)
	return !wall.Before(from) && wall.Before(to)
}

// filterRange returns the activities that started in [from, to)
func filterRange(activities []Activity, from, to time.Time) []Activity {
	var out []Activity
	for _, a := range activities {
		if within(a, from, to) {
			out = append(out, a)
		}
	}
	return out
}

// WeeklyTrends summarizes the last n weeks including the current one,
// oldest first
func WeeklyTrends(activities []Activity, zones HRZones, weeks int, now time.Time) []WeekSummary {
	current := StartOfWeek(now)
	out := make([]WeekSummary, 0, weeks)

	for i := weeks - 1; i >= 0; i-- {
		start := current.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 7)
		week := filterRange(activities, start, end)

		s := WeekSummary{
			Label:      start.Format("02/01"),
			WeekStart:  start,
			Activities: len(week),
		}
		for _, a := range week {
			s.Distance += a.Distance
			s.Time += a.MovingTime
			s.Elevation += a.TotalElevationGain
			if tss, ok := ActivityTSS(a, zones); ok {
				s.TSS += tss
			}
		}
		s.AvgPace = averagePace(week)
		s.AvgHR = averageRunHR(week)

		out = append(out, s)
	}

	return out
}

// MonthlyTrends summarizes the last n calendar months including the
// current one, oldest first
func MonthlyTrends(activities []Activity, months int, now time.Time) []MonthSummary {
	current := StartOfMonth(now)
	out := make([]MonthSummary, 0, months)

	for i := months - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		month := filterRange(activities, start, end)

		s := MonthSummary{
			Label:      start.Format("Jan 06"),
			MonthStart: start,
			Activities: len(month),
		}
		for _, a := range month {
			s.Distance += a.Distance
			s.Time += a.MovingTime
			s.Elevation += a.TotalElevationGain
		}
		s.AvgPace = averagePace(month)

		out = append(out, s)
	}

	return out
}

// averagePace is total run time over total run distance, in seconds per km
func averagePace(activities []Activity) float64 {
	var t, d float64
	for _, a := range activities {
		if a.IsRun() && a.Distance > 0 {
			t += float64(a.MovingTime)
			d += a.Distance
		}
	}
	if d == 0 {
		return 0
	}
	return t / (d / 1000)
}

func averageRunHR(activities []Activity) float64 {
	var sum float64
	var n int
	for _, a := range activities {
		if hr, ok := a.HeartRate(); ok && a.IsRun() {
			sum += hr
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// PeriodTotals are the summed totals of a period
type PeriodTotals struct {
	Distance   float64 `json:"distance"`
	Time       int     `json:"time"`
	Activities int     `json:"activities"`
	Elevation  float64 `json:"elevation"`
}

// PeriodComparison compares two periods. Changes are whole percentages and
// are 0 when the previous period is empty.
type PeriodComparison struct {
	Current          PeriodTotals `json:"current"`
	Previous         PeriodTotals `json:"previous"`
	DistanceChange   int          `json:"distanceChange"`
	TimeChange       int          `json:"timeChange"`
	ActivitiesChange int          `json:"activitiesChange"`
}

func totals(activities []Activity) PeriodTotals {
	t := PeriodTotals{Activities: len(activities)}
	for _, a := range activities {
		t.Distance += a.Distance
		t.Time += a.MovingTime
		t.Elevation += a.TotalElevationGain
	}
	return t
}

func percentChange(current, previous float64) int {
	if previous <= 0 {
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

// ComparePeriods compares the totals of two activity sets
func ComparePeriods(current, previous []Activity) PeriodComparison {
	c, p := totals(current), totals(previous)
	return PeriodComparison{
		Current:          c,
		Previous:         p,
		DistanceChange:   percentChange(c.Distance, p.Distance),
		TimeChange:       percentChange(float64(c.Time), float64(p.Time)),
		ActivitiesChange: percentChange(float64(c.Activities), float64(p.Activities)),
	}
}

// MonthOverMonth compares the current calendar month so far with the
// previous one
func MonthOverMonth(activities []Activity, now time.Time) PeriodComparison {
	thisMonth := StartOfMonth(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	return ComparePeriods(
		filterRange(activities, thisMonth, thisMonth.AddDate(0, 1, 0)),
		filterRange(activities, lastMonth, thisMonth),
	)
}

// DayOfWeekStat aggregates activities by weekday
type DayOfWeekStat struct {
	Day      time.Weekday `json:"day"`
	DayName  string       `json:"dayName"`
	Count    int          `json:"count"`
	Distance float64      `json:"distance"`
	AvgPace  float64      `json:"avgPace"`
}

// DayOfWeekBreakdown aggregates activities by weekday, Monday first.
// AvgPace averages the pace of runs on that weekday.
func DayOfWeekBreakdown(activities []Activity) []DayOfWeekStat {
	order := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}

	byDay := make(map[time.Weekday]*DayOfWeekStat, 7)
	runs := make(map[time.Weekday]int, 7)
	for _, d := range order {
		byDay[d] = &DayOfWeekStat{Day: d, DayName: d.String()[:3]}
	}

	for _, a := range activities {
		s := byDay[a.StartDate.Weekday()]
		s.Count++
		s.Distance += a.Distance
		if a.IsRun() && a.Distance > 0 {
			s.AvgPace += float64(a.MovingTime) / (a.Distance / 1000)
			runs[s.Day]++
		}
	}

	out := make([]DayOfWeekStat, 0, 7)
	for _, d := range order {
		s := byDay[d]
		if n := runs[d]; n > 0 {
			s.AvgPace /= float64(n)
		}
		out = append(out, *s)
	}
	return out
}

// HourStat aggregates runs by the hour of day they started
type HourStat struct {
	Hour    int     `json:"hour"`
	Count   int     `json:"count"`
	AvgPace float64 `json:"avgPace"`
	AvgHR   float64 `json:"avgHR"`
}

// TimeOfDayBreakdown aggregates runs by starting hour; hours without runs
// are omitted
func TimeOfDayBreakdown(activities []Activity) []HourStat {
	type acc struct {
		count, hrCount int
		pace, hr       float64
	}
	byHour := make(map[int]*acc)

	for _, a := range activities {
		if !a.IsRun() || a.Distance <= 0 {
			continue
		}
		h := a.StartDate.Hour()
		e, ok := byHour[h]
		if !ok {
			e = &acc{}
			byHour[h] = e
		}
		e.count++
		e.pace += float64(a.MovingTime) / (a.Distance / 1000)
		if hr, ok := a.HeartRate(); ok {
			e.hr += hr
			e.hrCount++
		}
	}

	out := make([]HourStat, 0, len(byHour))
	for h, e := range byHour {
		s := HourStat{Hour: h, Count: e.count, AvgPace: e.pace / float64(e.count)}
		if e.hrCount > 0 {
			s.AvgHR = e.hr / float64(e.hrCount)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}
