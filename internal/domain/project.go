package domain

import (
	"strings"
	"time"
)

// Project groups tasks of a single type.
type Project struct {
	ID        int64
	Name      string
	Type      TaskType
	Color     string
	CreatedAt time.Time
}

// Matches reports whether the project has the given name (case-insensitive) and type.
func (p Project) Matches(name string, taskType TaskType) bool {
	return strings.EqualFold(p.Name, name) && p.Type == taskType
}

// String returns the project name for display purposes.
func (p Project) String() string {
	return p.Name
}
