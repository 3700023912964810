package ports

import "github.com/maw3193/bft/internal/domain"

// ProgramLoader reads a program from a source (e.g., filesystem).
type ProgramLoader interface {
	Load(path string) (domain.Program, error)
}
