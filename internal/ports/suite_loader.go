package ports

import "github.com/maw3193/bft/internal/domain"

// SuiteLoader loads test suites from a source (e.g., filesystem).
type SuiteLoader interface {
	LoadSuite(path string) (domain.Suite, error)
}
