package services

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/logging"
	"timesheet/internal/repository/sqlite"
)

// ProjectPalette is the fixed set of colours given to new projects.
var ProjectPalette = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#FFA07A",
	"#98D8C8",
	"#F7DC6F",
	"#BB8FCE",
	"#85C1E2",
	"#F8B88B",
	"#52B788",
}

// Placeholder project names that mean "no project".
const (
	NoProjectName     = "No Project"
	NotApplicableName = "N/A"
)

// ColorPicker chooses the colour of a newly created project.
type ColorPicker interface {
	Pick() string
}

type randomColorPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomColorPicker picks uniformly from ProjectPalette. The same seed yields the same sequence.
func NewRandomColorPicker(seed int64) ColorPicker {
	return &randomColorPicker{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
	}
}

// NewTimeSeededColorPicker returns a picker seeded from the clock.
func NewTimeSeededColorPicker() ColorPicker {
	return NewRandomColorPicker(time.Now().UnixNano())
}

func (p *randomColorPicker) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProjectPalette[p.rng.IntN(len(ProjectPalette))]
}

// ProjectCreator persists a new project and assigns its ID.
type ProjectCreator interface {
	CreateProject(ctx context.Context, project *sqlite.Project) error
}

// ProjectResolver maps spreadsheet project names to project IDs for one import batch,
// creating missing projects on first use.
type ProjectResolver struct {
	creator  ProjectCreator
	colors   ColorPicker
	mapper   *domain.ProjectMapper
	projects []domain.Project
	created  []string
	seen     map[string]bool
}

// NewProjectResolver starts a batch over the already stored projects, in their stored order.
func NewProjectResolver(creator ProjectCreator, colors ColorPicker, existing []domain.Project) *ProjectResolver {
	projects := make([]domain.Project, len(existing))
	copy(projects, existing)
	return &ProjectResolver{
		creator:  creator,
		colors:   colors,
		mapper:   domain.NewProjectMapper(),
		projects: projects,
		seen:     make(map[string]bool),
	}
}

// Resolve returns the ID of the project called name with the given type. Names compare
// case-insensitively and the first match wins. Placeholder names resolve to nothing.
func (r *ProjectResolver) Resolve(ctx context.Context, name string, taskType domain.TaskType) (int64, bool) {
	name = strings.TrimSpace(name)
	if name == "" || name == NoProjectName || name == NotApplicableName {
		return 0, false
	}

	for _, p := range r.projects {
		if p.Matches(name, taskType) {
			return p.ID, true
		}
	}

	project := domain.Project{
		Name:  name,
		Type:  taskType,
		Color: r.colors.Pick(),
	}
	dbProject := r.mapper.ToDatabase(project)
	if err := r.creator.CreateProject(ctx, &dbProject); err != nil {
		logging.Debugf("project %q could not be created: %v", name, err)
		return 0, false
	}

	created := r.mapper.FromDatabase(dbProject)
	r.projects = append(r.projects, created)
	if !r.seen[created.Name] {
		r.seen[created.Name] = true
		r.created = append(r.created, created.Name)
	}
	logging.Debugf("created project %d %q (%s, %s)", created.ID, created.Name, created.Type, created.Color)

	return created.ID, true
}

// CreatedProjects lists the names of projects created during the batch, in creation order.
func (r *ProjectResolver) CreatedProjects() []string {
	names := make([]string, len(r.created))
	copy(names, r.created)
	return names
}
