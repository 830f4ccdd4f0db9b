package main

import (
	"context"
	"io"
	"os"

	"timesheet/internal/api"
	"timesheet/internal/config"
	"timesheet/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository creates a repository instance based on the current environment.
// Development keeps ts.db in the working directory, testing uses an in-memory database
// and production uses the configured location.
func (rf *RepositoryFactory) CreateRepository(ctx context.Context, cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		dev := *cfg
		dev.Database.Dir = "."
		return config.CreateRepository(ctx, &dev)
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(ctx, cfg)
	}
}

// getEnvironment reads TS_ENV, defaulting to production
func getEnvironment() Environment {
	switch Environment(os.Getenv("TS_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// connect opens the repository for the final configuration and wires the BusinessAPI over it
func connect(ctx context.Context, cfg *config.Config) (api.BusinessAPI, io.Closer, error) {
	repo, err := NewRepositoryFactory(getEnvironment()).CreateRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return api.NewBusinessAPI(repo, cfg), repo, nil
}
