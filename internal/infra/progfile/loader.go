package progfile

import (
	"os"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/ports"
)

// Loader reads programs from the filesystem.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.ProgramLoader = (*Loader)(nil)

// Load parses the file at path into a program named after the path as given.
func (l *Loader) Load(path string) (domain.Program, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Program{}, &domain.OpError{
			Op:   "progfile.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return domain.Parse(path, string(b)), nil
}
