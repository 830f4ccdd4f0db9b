package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
)

// ProjectAddCommand handles the project add command
type ProjectAddCommand struct {
	app          *App
	errorHandler *ErrorHandler
	taskType     string
	color        string
}

// NewProjectAddCommand creates a new project add command handler
func NewProjectAddCommand(app *App) *ProjectAddCommand {
	return &ProjectAddCommand{app: app, errorHandler: NewErrorHandler(), taskType: string(domain.TaskTypeWork)}
}

// BindFlags registers the project add flags
func (c *ProjectAddCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.taskType, "type", string(domain.TaskTypeWork), "Project type: work or personal")
	flags.StringVar(&c.color, "color", "", "Hex colour such as #FF6B6B (picked from the palette when omitted)")
}

// Execute runs the project add command
func (c *ProjectAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "project add", "usage: ts project add <name> --type T [--color HEX]")
	}
	taskType, err := parseTypeFlag(c.taskType)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	project, err := c.app.businessAPI.CreateProject(ctx, strings.Join(args, " "), taskType, c.color)
	if err != nil {
		return c.errorHandler.Handle("add project", err)
	}

	c.app.printf("Added project %d: %s %s (%s)\n", project.ID, swatch(project.Color), project.Name, project.Type.Display())
	return nil
}

// ProjectListCommand handles the project list command
type ProjectListCommand struct {
	app          *App
	errorHandler *ErrorHandler
	taskType     string
}

// NewProjectListCommand creates a new project list command handler
func NewProjectListCommand(app *App) *ProjectListCommand {
	return &ProjectListCommand{app: app, errorHandler: NewErrorHandler()}
}

// BindFlags registers the project list flags
func (c *ProjectListCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.taskType, "type", "", "Only work or personal projects")
}

// Execute runs the project list command
func (c *ProjectListCommand) Execute(ctx context.Context, args []string) error {
	taskType, err := parseTypeFlag(c.taskType)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	projects, err := c.app.businessAPI.ListProjects(ctx, taskType)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}

	if len(projects) == 0 {
		c.app.printf("No projects found\n")
		return nil
	}

	rows := make([][]string, len(projects))
	for i, project := range projects {
		rows[i] = []string{fmt.Sprint(project.ID), swatch(project.Color) + " " + project.Color, project.Type.Display(), project.Name}
	}
	return table(c.app.out, []string{"ID", "Color", "Type", "Name"}, rows)
}

// ProjectRenameCommand handles the project rename command
type ProjectRenameCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectRenameCommand creates a new project rename command handler
func NewProjectRenameCommand(app *App) *ProjectRenameCommand {
	return &ProjectRenameCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the project rename command
func (c *ProjectRenameCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "project rename", "usage: ts project rename <id> <name>")
	}
	id, err := parseID("project ID", args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	project, err := c.app.businessAPI.RenameProject(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.Handle("rename project", err)
	}

	c.app.printf("Renamed project %d to %s\n", project.ID, project.Name)
	return nil
}

// ProjectRecolorCommand handles the project recolor command
type ProjectRecolorCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectRecolorCommand creates a new project recolor command handler
func NewProjectRecolorCommand(app *App) *ProjectRecolorCommand {
	return &ProjectRecolorCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the project recolor command
func (c *ProjectRecolorCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "project recolor", "usage: ts project recolor <id> <#RRGGBB>")
	}
	id, err := parseID("project ID", args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	project, err := c.app.businessAPI.RecolorProject(ctx, id, args[1])
	if err != nil {
		return c.errorHandler.Handle("recolor project", err)
	}

	c.app.printf("Project %d is now %s %s\n", project.ID, swatch(project.Color), project.Color)
	return nil
}

// ProjectDeleteCommand handles the project delete command
type ProjectDeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectDeleteCommand creates a new project delete command handler
func NewProjectDeleteCommand(app *App) *ProjectDeleteCommand {
	return &ProjectDeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the project delete command. Tasks of the project are kept without a project.
func (c *ProjectDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "project delete", "usage: ts project delete <id>")
	}
	id, err := parseID("project ID", args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.app.businessAPI.DeleteProject(ctx, id); err != nil {
		return c.errorHandler.Handle("delete project", err)
	}

	c.app.printf("Deleted project %d\n", id)
	return nil
}
