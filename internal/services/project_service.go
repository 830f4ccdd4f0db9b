package services

import (
	"context"
	"strings"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/repository/sqlite"
	"timesheet/internal/validation"
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	repo             sqlite.Repository
	colors           ColorPicker
	mapper           *domain.Mapper
	projectValidator *validation.ProjectValidator
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(repo sqlite.Repository, colors ColorPicker) ProjectService {
	return NewProjectServiceWithValidator(repo, colors, validation.NewProjectValidator())
}

// NewProjectServiceWithValidator creates a ProjectService using the given validator
func NewProjectServiceWithValidator(repo sqlite.Repository, colors ColorPicker, validator *validation.ProjectValidator) ProjectService {
	return &projectServiceImpl{
		repo:             repo,
		colors:           colors,
		mapper:           domain.NewMapper(),
		projectValidator: validator,
	}
}

// CreateProject stores a new project. An empty colour is taken from the palette.
func (p *projectServiceImpl) CreateProject(ctx context.Context, name string, taskType domain.TaskType, color string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	if err := p.projectValidator.ValidateProject(name, taskType, color); err != nil {
		return nil, errors.NewValidationError("invalid project", err)
	}
	if color == "" {
		color = p.colors.Pick()
	}

	dbProject := p.mapper.Project.ToDatabase(domain.Project{Name: name, Type: taskType, Color: color})
	if err := p.repo.CreateProject(ctx, &dbProject); err != nil {
		return nil, err
	}

	project := p.mapper.Project.FromDatabase(dbProject)
	return &project, nil
}

// GetProject retrieves a project by its ID
func (p *projectServiceImpl) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	if err := p.projectValidator.ValidateProjectID(id); err != nil {
		return nil, errors.NewValidationError("invalid project ID", err)
	}

	dbProject, err := p.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	project := p.mapper.Project.FromDatabase(*dbProject)
	return &project, nil
}

// ListProjects returns projects in creation order, optionally only those of one type
func (p *projectServiceImpl) ListProjects(ctx context.Context, taskType domain.TaskType) ([]domain.Project, error) {
	dbProjects, err := p.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	projects := p.mapper.Project.FromDatabaseSlice(dbProjects)
	if taskType == "" {
		return projects, nil
	}

	filtered := make([]domain.Project, 0, len(projects))
	for _, project := range projects {
		if project.Type == taskType {
			filtered = append(filtered, project)
		}
	}
	return filtered, nil
}

// RenameProject changes a project's name
func (p *projectServiceImpl) RenameProject(ctx context.Context, id int64, name string) (*domain.Project, error) {
	project, err := p.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := p.projectValidator.ValidateProject(name, project.Type, project.Color); err != nil {
		return nil, errors.NewValidationError("invalid project name", err)
	}

	project.Name = name
	return p.update(ctx, project)
}

// RecolorProject changes a project's colour
func (p *projectServiceImpl) RecolorProject(ctx context.Context, id int64, color string) (*domain.Project, error) {
	project, err := p.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	color = strings.TrimSpace(color)
	if color == "" {
		return nil, errors.NewInvalidInputError("color", color, "must be #RRGGBB")
	}
	if err := p.projectValidator.ValidateProject(project.Name, project.Type, color); err != nil {
		return nil, errors.NewValidationError("invalid project colour", err)
	}

	project.Color = color
	return p.update(ctx, project)
}

func (p *projectServiceImpl) update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	dbProject := p.mapper.Project.ToDatabase(*project)
	if err := p.repo.UpdateProject(ctx, &dbProject); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project. Its tasks are kept without a project.
func (p *projectServiceImpl) DeleteProject(ctx context.Context, id int64) error {
	if err := p.projectValidator.ValidateProjectID(id); err != nil {
		return errors.NewValidationError("invalid project ID", err)
	}
	return p.repo.DeleteProject(ctx, id)
}
