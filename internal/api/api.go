package api

import (
	"timesheet/internal/config"
	"timesheet/internal/repository/sqlite"
	"timesheet/internal/services"
	"timesheet/internal/validation"
)

// NewServiceContainer wires every service over repo using the limits and import options in cfg.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config) *services.ServiceContainer {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	colors := services.NewTimeSeededColorPicker()
	if cfg.Import.ColorSeed != 0 {
		colors = services.NewRandomColorPicker(cfg.Import.ColorSeed)
	}

	timeService := services.NewTimeService()
	return &services.ServiceContainer{
		TimeService:         timeService,
		TaskService:         services.NewTaskServiceWithValidator(repo, timeService, validation.NewTaskValidatorWithConfig(cfg)),
		ProjectService:      services.NewProjectServiceWithValidator(repo, colors, validation.NewProjectValidatorWithConfig(cfg)),
		SearchService:       services.NewSearchService(repo),
		ReportingService:    services.NewReportingService(repo, timeService),
		ImportService:       services.NewImportServiceWithValidator(repo, colors, validation.NewTaskValidatorWithConfig(cfg), validation.WithStrictTypes(cfg.Import.StrictTypes)),
		ExportService:       services.NewExportService(repo),
		NotificationService: services.NewNotificationService(repo),
	}
}
