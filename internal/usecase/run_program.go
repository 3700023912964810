package usecase

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/interp"
	"github.com/maw3193/bft/internal/ports"
)

type RunProgram struct {
	programs ports.ProgramLoader
	store    ports.RunStore
}

// NewRunProgram builds the run usecase. store may be nil, in which case no
// artifact is persisted.
func NewRunProgram(pl ports.ProgramLoader, store ports.RunStore) *RunProgram {
	return &RunProgram{programs: pl, store: store}
}

// Execute interprets the program at path against spec, wiring in as program
// input and out as program output. The returned artifact always carries
// timestamps and a status; it is persisted (and its id returned) only when
// the machine actually ran and a store is configured.
func (uc *RunProgram) Execute(ctx context.Context, path string, spec domain.MachineSpec, in io.Reader, out io.Writer) (domain.RunArtifact, string, error) {
	art := domain.RunArtifact{
		ProgramName: programStem(path),
		ProgramPath: path,
		StartedAt:   time.Now().UTC(),
		Width:       effectiveWidth(spec.Width),
		Extensible:  spec.Extensible,
	}

	if err := ctx.Err(); err != nil {
		return uc.fail(art, err), "", err
	}

	prog, err := uc.programs.Load(path)
	if err != nil {
		return uc.fail(art, err), "", err
	}

	dec, err := domain.Decorate(prog)
	if err != nil {
		return uc.fail(art, err), "", err
	}

	runner := interp.NewRunner(dec, spec)
	counting := &countingWriter{w: out}

	runErr := runner.Run(ctx, in, counting)

	art.FinishedAt = time.Now().UTC()
	art.Steps = runner.Steps()
	art.OutputBytes = counting.n
	art.TapeCells = runner.TapeCells()
	art.Profile = runner.Profile()
	if runErr != nil {
		art.Status = domain.RunError
		art.Error = runErr.Error()
	} else {
		art.Status = domain.RunOK
	}

	var id string
	if uc.store != nil {
		savedID, saveErr := uc.store.SaveRun(art)
		if saveErr != nil && runErr == nil {
			// The run itself was fine; surface the persistence failure.
			return art, "", saveErr
		}
		id = savedID
	}

	return art, id, runErr
}

func (uc *RunProgram) fail(art domain.RunArtifact, err error) domain.RunArtifact {
	art.FinishedAt = time.Now().UTC()
	art.Status = domain.RunError
	art.Error = err.Error()
	return art
}

func effectiveWidth(w domain.CellWidth) domain.CellWidth {
	if w == 0 {
		return domain.Width8
	}
	return w
}

func programStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
