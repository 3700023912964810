package ports

import "github.com/maw3193/bft/internal/domain"

// RunStore persists run artifacts for later inspection.
type RunStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
	ListRuns(limit int) ([]domain.RunRef, error)
	LoadRun(id string) (domain.RunArtifact, error)
	// LoadRunRaw returns the stored artifact bytes as written, for queries
	// over the raw document.
	LoadRunRaw(id string) ([]byte, error)
}
