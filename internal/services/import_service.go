package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/logging"
	"timesheet/internal/repository/sqlite"
	"timesheet/internal/spreadsheet"
	"timesheet/internal/validation"

	"github.com/google/uuid"
)

// MsgNoTasksFound is reported when a spreadsheet has a header but no data rows.
const MsgNoTasksFound = "No tasks found in the spreadsheet"

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	repo          sqlite.Repository
	colors        ColorPicker
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	rowOpts       []validation.RowValidatorOption
}

// NewImportService creates a new ImportService instance
func NewImportService(repo sqlite.Repository, colors ColorPicker, rowOpts ...validation.RowValidatorOption) ImportService {
	return NewImportServiceWithValidator(repo, colors, validation.NewTaskValidator(), rowOpts...)
}

// NewImportServiceWithValidator creates an ImportService that holds imported drafts to the
// same limits as manually created tasks
func NewImportServiceWithValidator(repo sqlite.Repository, colors ColorPicker, validator *validation.TaskValidator, rowOpts ...validation.RowValidatorOption) ImportService {
	return &importServiceImpl{
		repo:          repo,
		colors:        colors,
		mapper:        domain.NewMapper(),
		taskValidator: validator,
		rowOpts:       rowOpts,
	}
}

// ImportFromReader reads the whole file and imports it
func (s *importServiceImpl) ImportFromReader(ctx context.Context, filename string, r io.Reader) (*domain.ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return s.batchFailure(uuid.NewString(), errors.GetUserMessage(errors.NewImportError(filename, err))), nil
	}
	return s.ImportFromSpreadsheet(ctx, filename, data)
}

// ImportFromSpreadsheet imports every data row of the first sheet in file order. Rows that
// fail validation or cannot be stored are reported and skipped; the rest are kept.
// An unreadable or empty file fails the whole batch with a single error.
func (s *importServiceImpl) ImportFromSpreadsheet(ctx context.Context, filename string, data []byte) (*domain.ImportResult, error) {
	runID := uuid.NewString()
	logging.Debugf("import %s: reading %q (%d bytes)", runID, filename, len(data))

	records, err := spreadsheet.ReadRecords(filename, data)
	if err != nil {
		logging.Debugf("import %s: %v", runID, err)
		return s.batchFailure(runID, errors.GetUserMessage(errors.NewImportError(filename, err))), nil
	}
	if len(records) == 0 {
		return s.batchFailure(runID, MsgNoTasksFound), nil
	}

	dbProjects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	resolver := NewProjectResolver(s.repo, s.colors, s.mapper.Project.FromDatabaseSlice(dbProjects))
	validator := validation.NewRowValidator(resolver, s.rowOpts...)

	result := &domain.ImportResult{
		RunID:           runID,
		Errors:          []string{},
		CreatedProjects: []string{},
	}

	for i, record := range records {
		rowNumber := i + 2

		draft, err := validator.Validate(ctx, validation.Row(record), rowNumber)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			result.FailedCount++
			continue
		}
		if err := s.taskValidator.ValidateDraft(*draft); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNumber, draftMessage(err)))
			result.FailedCount++
			continue
		}

		dbTask := s.mapper.Task.ToDatabase(draft.ToTask())
		if err := s.repo.CreateTask(ctx, &dbTask); err != nil {
			logging.Debugf("import %s: row %d not stored: %v", runID, rowNumber, err)
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNumber, errors.GetUserMessage(err)))
			result.FailedCount++
			continue
		}
		result.ImportedCount++
	}

	result.CreatedProjects = resolver.CreatedProjects()
	result.Success = result.ImportedCount > 0
	logging.Debugf("import %s: %d imported, %d failed, %d projects created",
		runID, result.ImportedCount, result.FailedCount, len(result.CreatedProjects))

	return result, nil
}

// draftMessage flattens field errors onto the single line of a row error
func draftMessage(err error) string {
	var validationErr *validation.ValidationError
	if !stderrors.As(err, &validationErr) || len(validationErr.Errors) == 0 {
		return err.Error()
	}
	messages := make([]string, len(validationErr.Errors))
	for i, fieldErr := range validationErr.Errors {
		messages[i] = fieldErr.Message
	}
	return strings.Join(messages, "; ")
}

func (s *importServiceImpl) batchFailure(runID, message string) *domain.ImportResult {
	return &domain.ImportResult{
		RunID:           runID,
		Success:         false,
		Errors:          []string{message},
		CreatedProjects: []string{},
	}
}
