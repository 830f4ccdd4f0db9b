package domain

// ImportOutcome classifies how an import batch ended.
type ImportOutcome int

const (
	ImportFailed ImportOutcome = iota
	ImportPartial
	ImportSucceeded
)

// ImportResult reports one spreadsheet import run.
type ImportResult struct {
	RunID           string
	Success         bool
	ImportedCount   int
	FailedCount     int
	Errors          []string
	CreatedProjects []string
}

// Outcome distinguishes a fully failed, partially successful and fully successful run.
func (r ImportResult) Outcome() ImportOutcome {
	switch {
	case r.ImportedCount == 0:
		return ImportFailed
	case r.FailedCount > 0:
		return ImportPartial
	default:
		return ImportSucceeded
	}
}
