package validation

import (
	"context"
	"strings"
	"testing"
	"time"

	"timesheet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver hands out sequential IDs for any non-empty name and records every call.
type stubResolver struct {
	fail  bool
	calls []string
	next  int64
}

func (s *stubResolver) Resolve(_ context.Context, name string, taskType domain.TaskType) (int64, bool) {
	s.calls = append(s.calls, name+"/"+string(taskType))
	if s.fail || name == "" || name == "No Project" || name == "N/A" {
		return 0, false
	}
	s.next++
	return s.next, true
}

func fullRow() Row {
	return Row{
		ColumnTitle:       "Write report",
		ColumnDescription: "Q1 numbers",
		ColumnType:        "Work",
		ColumnProject:     "Alpha",
		ColumnDate:        "01/02/2024",
		ColumnStartTime:   "09:00",
		ColumnEndTime:     "10:30",
		ColumnDuration:    "01:30",
		ColumnStatus:      "Completed",
	}
}

func TestRowValidator_ValidRow(t *testing.T) {
	resolver := &stubResolver{}
	validator := NewRowValidator(resolver)

	draft, err := validator.Validate(context.Background(), fullRow(), 2)
	require.NoError(t, err)

	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Write report", draft.Title)
	assert.Equal(t, "Q1 numbers", draft.Description)
	assert.Equal(t, domain.TaskTypeWork, draft.Type)
	require.NotNil(t, draft.ProjectID)
	assert.Equal(t, int64(1), *draft.ProjectID)
	assert.True(t, date.Equal(draft.Date))
	require.NotNil(t, draft.StartTime)
	assert.True(t, date.Add(9*time.Hour).Equal(*draft.StartTime))
	require.NotNil(t, draft.EndTime)
	assert.True(t, date.Add(10*time.Hour+30*time.Minute).Equal(*draft.EndTime))
	require.NotNil(t, draft.Duration)
	assert.Equal(t, 90, *draft.Duration)
	assert.Equal(t, domain.TaskStatusCompleted, draft.Status)
	assert.Equal(t, []string{"Alpha/work"}, resolver.calls)
}

func TestRowValidator_RequiredFieldOrder(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r Row)
		expected string
	}{
		{"missing title", func(r Row) { delete(r, ColumnTitle) }, "Row 5: Task title is required"},
		{"blank title", func(r Row) { r[ColumnTitle] = "   " }, "Row 5: Task title is required"},
		{"title checked before type", func(r Row) { r[ColumnTitle] = ""; r[ColumnType] = "" }, "Row 5: Task title is required"},
		{"missing type", func(r Row) { r[ColumnType] = "" }, "Row 5: Type is required"},
		{"type checked before date", func(r Row) { r[ColumnType] = ""; r[ColumnDate] = "" }, "Row 5: Type is required"},
		{"missing date", func(r Row) { r[ColumnDate] = "" }, "Row 5: Date is required"},
		{"bad date", func(r Row) { r[ColumnDate] = "Jan 2nd" }, "Row 5: Invalid date format"},
		{"date checked before project", func(r Row) { r[ColumnDate] = "99/99/2024"; r[ColumnProject] = "" }, "Row 5: Invalid date format"},
		{"no project", func(r Row) { r[ColumnProject] = "" }, "Row 5: Project is required but could not be created"},
		{"placeholder project", func(r Row) { r[ColumnProject] = "No Project" }, "Row 5: Project is required but could not be created"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := fullRow()
			tt.mutate(row)

			draft, err := NewRowValidator(&stubResolver{}).Validate(context.Background(), row, 5)
			assert.Nil(t, draft)
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())

			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, 5, rowErr.Row)
		})
	}
}

func TestRowValidator_ResolverNotCalledForInvalidRows(t *testing.T) {
	resolver := &stubResolver{}
	row := fullRow()
	row[ColumnDate] = "not a date"

	_, err := NewRowValidator(resolver).Validate(context.Background(), row, 2)
	require.Error(t, err)
	assert.Empty(t, resolver.calls)
}

func TestRowValidator_ResolverFailure(t *testing.T) {
	_, err := NewRowValidator(&stubResolver{fail: true}).Validate(context.Background(), fullRow(), 3)
	require.Error(t, err)
	assert.Equal(t, "Row 3: "+MsgProjectUnavailable, err.Error())
}

func TestRowValidator_TypeDefaulting(t *testing.T) {
	tests := []struct {
		raw      string
		expected domain.TaskType
	}{
		{"work", domain.TaskTypeWork},
		{"WORK", domain.TaskTypeWork},
		{"Personal", domain.TaskTypePersonal},
		{"Hobby", domain.TaskTypePersonal},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			resolver := &stubResolver{}
			row := fullRow()
			row[ColumnType] = tt.raw

			draft, err := NewRowValidator(resolver).Validate(context.Background(), row, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, draft.Type)
			assert.Equal(t, "Alpha/"+string(tt.expected), resolver.calls[0], "project lookup uses the parsed type")
		})
	}
}

func TestRowValidator_StrictTypes(t *testing.T) {
	validator := NewRowValidator(&stubResolver{}, WithStrictTypes(true))

	row := fullRow()
	row[ColumnType] = "Hobby"
	_, err := validator.Validate(context.Background(), row, 4)
	require.Error(t, err)
	assert.Equal(t, "Row 4: Type must be Work or Personal", err.Error())

	row[ColumnType] = "personal"
	draft, err := validator.Validate(context.Background(), row, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskTypePersonal, draft.Type)
}

func TestRowValidator_SoftOptionalFields(t *testing.T) {
	row := fullRow()
	row[ColumnStartTime] = "-"
	row[ColumnEndTime] = "half past"
	row[ColumnDuration] = "ninety"
	row[ColumnStatus] = "In progress"
	delete(row, ColumnDescription)

	draft, err := NewRowValidator(&stubResolver{}).Validate(context.Background(), row, 2)
	require.NoError(t, err)
	assert.Nil(t, draft.StartTime)
	assert.Nil(t, draft.EndTime)
	assert.Nil(t, draft.Duration)
	assert.Equal(t, domain.TaskStatusPending, draft.Status)
	assert.Equal(t, "", draft.Description)
}

func TestRowValidator_DurationNotDerivedFromTimes(t *testing.T) {
	row := fullRow()
	row[ColumnDuration] = ""

	draft, err := NewRowValidator(&stubResolver{}).Validate(context.Background(), row, 2)
	require.NoError(t, err)
	assert.NotNil(t, draft.StartTime)
	assert.NotNil(t, draft.EndTime)
	assert.Nil(t, draft.Duration)
}

func TestRowValidator_ISODateFallback(t *testing.T) {
	row := fullRow()
	row[ColumnDate] = "2024-03-15"

	draft, err := NewRowValidator(&stubResolver{}).Validate(context.Background(), row, 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", draft.Date.Format("2006-01-02"))
}

func TestRow(t *testing.T) {
	row := Row{ColumnTitle: "  padded  ", ColumnType: ""}
	assert.Equal(t, "padded", row.Get(ColumnTitle))
	assert.Equal(t, "", row.Get(ColumnProject))
	assert.False(t, row.IsBlank())
	assert.True(t, Row{ColumnTitle: " ", ColumnDate: ""}.IsBlank())
	assert.True(t, Row{}.IsBlank())
}

func TestColumns(t *testing.T) {
	assert.Equal(t,
		"Task Title,Description,Type,Project,Date,Start Time,End Time,Duration (HH:MM),Status",
		strings.Join(Columns, ","))
}
