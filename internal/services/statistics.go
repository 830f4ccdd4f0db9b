package services

import (
	"sort"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/timefmt"
)

// Aggregate summarises tasks. Unknown durations count as zero, tasks without a project are
// left out of the breakdown, and the breakdown keeps first-seen project order.
func Aggregate(tasks []domain.Task) domain.Statistics {
	stats := domain.Statistics{
		TotalTasks:       len(tasks),
		ProjectBreakdown: []domain.ProjectDuration{},
	}
	index := make(map[int64]int)

	for _, task := range tasks {
		minutes := task.DurationMinutes()

		if task.IsCompleted() {
			stats.CompletedTasks++
		}
		stats.TotalDuration += minutes

		switch task.Type {
		case domain.TaskTypeWork:
			stats.WorkDuration += minutes
		case domain.TaskTypePersonal:
			stats.PersonalDuration += minutes
		}

		if task.ProjectID == nil {
			continue
		}
		i, ok := index[*task.ProjectID]
		if !ok {
			i = len(stats.ProjectBreakdown)
			index[*task.ProjectID] = i
			stats.ProjectBreakdown = append(stats.ProjectBreakdown, domain.ProjectDuration{ProjectID: *task.ProjectID})
		}
		stats.ProjectBreakdown[i].Minutes += minutes
	}

	return stats
}

// summariseDays groups tasks by calendar day, ascending.
func summariseDays(tasks []domain.Task) []DaySummary {
	byDay := make(map[string]*DaySummary)
	var keys []string

	for _, task := range tasks {
		key := timefmt.FormatISODate(task.Date)
		day, ok := byDay[key]
		if !ok {
			day = &DaySummary{Date: timefmt.StartOfDay(task.Date)}
			byDay[key] = day
			keys = append(keys, key)
		}
		day.add(task)
	}

	sort.Strings(keys)
	days := make([]DaySummary, len(keys))
	for i, key := range keys {
		days[i] = *byDay[key]
	}
	return days
}

// summariseWeek returns one summary per day of the week starting at monday, empty days included.
func summariseWeek(monday time.Time, tasks []domain.Task) []DaySummary {
	days := make([]DaySummary, 7)
	for i, date := range timefmt.DaysInWeek(monday) {
		days[i].Date = date
	}
	for _, task := range tasks {
		for i := range days {
			if timefmt.SameDay(days[i].Date, task.Date) {
				days[i].add(task)
				break
			}
		}
	}
	return days
}

func (d *DaySummary) add(task domain.Task) {
	minutes := task.DurationMinutes()
	d.Tasks = append(d.Tasks, task)
	d.TaskCount++
	if task.IsCompleted() {
		d.CompletedCount++
	}
	d.TotalDuration += minutes
	switch task.Type {
	case domain.TaskTypeWork:
		d.WorkDuration += minutes
	case domain.TaskTypePersonal:
		d.PersonalDuration += minutes
	}
}
