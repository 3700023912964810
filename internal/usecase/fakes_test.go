package usecase

import (
	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/ports"
)

// fakeProgramLoader parses programs from an in-memory source map.
type fakeProgramLoader struct {
	sources map[string]string
	calls   int
}

func (f *fakeProgramLoader) Load(path string) (domain.Program, error) {
	f.calls++
	src, ok := f.sources[path]
	if !ok {
		return domain.Program{}, &domain.OpError{
			Op:   "fake.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  domain.ErrNotFound,
		}
	}
	return domain.Parse(path, src), nil
}

var _ ports.ProgramLoader = (*fakeProgramLoader)(nil)

// recordingStore captures saved artifacts.
type recordingStore struct {
	saved []domain.RunArtifact
	id    string
	err   error
}

func (s *recordingStore) SaveRun(run domain.RunArtifact) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, run)
	return s.id, nil
}

func (s *recordingStore) ListRuns(int) ([]domain.RunRef, error) { return nil, nil }

func (s *recordingStore) LoadRun(string) (domain.RunArtifact, error) {
	return domain.RunArtifact{}, domain.ErrNotFound
}

func (s *recordingStore) LoadRunRaw(string) ([]byte, error) { return nil, domain.ErrNotFound }

var _ ports.RunStore = (*recordingStore)(nil)

// fakeSuiteLoader returns a fixed suite.
type fakeSuiteLoader struct {
	suite domain.Suite
	err   error
}

func (f fakeSuiteLoader) LoadSuite(string) (domain.Suite, error) {
	if f.err != nil {
		return domain.Suite{}, f.err
	}
	return f.suite, nil
}

var _ ports.SuiteLoader = fakeSuiteLoader{}
