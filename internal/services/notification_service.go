package services

import (
	"context"
	"fmt"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlite"
	"timesheet/internal/timefmt"
)

// notificationServiceImpl implements the NotificationService interface
type notificationServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(repo sqlite.Repository) NotificationService {
	return &notificationServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

// GetSettings returns the stored reminder settings
func (n *notificationServiceImpl) GetSettings(ctx context.Context) (*domain.NotificationSettings, error) {
	dbSettings, err := n.repo.GetNotificationSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings := n.mapper.NotificationSettings.FromDatabase(*dbSettings)
	return &settings, nil
}

// SaveSettings validates and stores the reminder settings. The time is normalised to HH:MM.
func (n *notificationServiceImpl) SaveSettings(ctx context.Context, settings domain.NotificationSettings) (*domain.NotificationSettings, error) {
	hour, minute, ok := timefmt.ParseTimeOfDay(settings.Time)
	if !ok {
		return nil, errors.NewInvalidInputError("time", settings.Time, "expected HH:MM")
	}
	settings.Time = fmt.Sprintf("%02d:%02d", hour, minute)

	dbSettings := n.mapper.NotificationSettings.ToDatabase(settings)
	if err := n.repo.SaveNotificationSettings(ctx, &dbSettings); err != nil {
		return nil, err
	}
	return &settings, nil
}
