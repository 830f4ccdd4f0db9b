package domain

import "math"

// ProjectDuration is the summed duration of one project's tasks.
type ProjectDuration struct {
	ProjectID int64
	Minutes   int
}

// Statistics summarises a set of tasks. Durations are in minutes.
// ProjectBreakdown lists projects in the order they were first seen.
type Statistics struct {
	TotalTasks       int
	CompletedTasks   int
	TotalDuration    int
	WorkDuration     int
	PersonalDuration int
	ProjectBreakdown []ProjectDuration
}

// CompletionRate is the rounded percentage of completed tasks, 0 when there are none.
func (s Statistics) CompletionRate() int {
	if s.TotalTasks == 0 {
		return 0
	}
	return int(math.Round(float64(s.CompletedTasks) / float64(s.TotalTasks) * 100))
}
