package runstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maw3193/bft/internal/domain"
	"github.com/maw3193/bft/internal/ports"
)

const defaultRunsDir = "runs"

type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	now         func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		writeIndex:  false,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.RunStore = (*JSONStore)(nil)

func (s *JSONStore) SaveRun(run domain.RunArtifact) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := run.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := run
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	namePart := run.ProgramName
	if strings.TrimSpace(namePart) == "" {
		namePart = strings.TrimSuffix(filepath.Base(run.ProgramPath), filepath.Ext(run.ProgramPath))
	}
	slug := slugify(namePart)
	if slug == "" {
		slug = "run"
	}

	// Consecutive runs of the same program can land in the same second, so
	// bump a counter instead of overwriting.
	stamp := ts.Format("20060102T150405Z")
	filename := fmt.Sprintf("%s_%s.json", stamp, slug)
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, filename)); os.IsNotExist(err) {
			break
		}
		filename = fmt.Sprintf("%s_%s_%d.json", stamp, slug, n)
	}
	id := strings.TrimSuffix(filename, ".json")
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, toSave)
	}

	return id, nil
}

// ListRuns returns stored runs newest first. It prefers the JSONL index and
// falls back to scanning the runs directory when no index exists.
func (s *JSONStore) ListRuns(limit int) ([]domain.RunRef, error) {
	refs, err := s.readIndex()
	if err != nil {
		refs, err = s.scanDir()
		if err != nil {
			return nil, err
		}
	}

	// Timestamped ids sort chronologically.
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID > refs[j].ID })
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}
	return refs, nil
}

func (s *JSONStore) LoadRun(id string) (domain.RunArtifact, error) {
	b, err := s.LoadRunRaw(id)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	var run domain.RunArtifact
	if err := json.Unmarshal(b, &run); err != nil {
		return domain.RunArtifact{}, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindExecution,
			Path: id,
			Err:  err,
		}
	}
	return run, nil
}

func (s *JSONStore) LoadRunRaw(id string) ([]byte, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindInvalidConfig,
			Path: id,
			Err:  errors.New("invalid run id"),
		}
	}

	path := filepath.Join(s.dir(), id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return b, nil
}

func (s *JSONStore) dir() string {
	return filepath.Join(s.rootDir, s.runsDirName)
}

type idxLine struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Program   string    `json:"program"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

func (s *JSONStore) appendIndex(dir, id, filename string, run domain.RunArtifact) error {
	line, err := json.Marshal(idxLine{
		ID:        id,
		File:      filename,
		Program:   run.ProgramName,
		Status:    string(run.Status),
		StartedAt: run.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

func (s *JSONStore) readIndex() ([]domain.RunRef, error) {
	f, err := os.Open(filepath.Join(s.dir(), "index.jsonl"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var refs []domain.RunRef
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e idxLine
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			// Skip corrupt lines rather than losing the whole listing.
			continue
		}
		refs = append(refs, domain.RunRef{
			ID:        e.ID,
			Program:   e.Program,
			Status:    domain.RunStatus(e.Status),
			StartedAt: e.StartedAt,
		})
	}
	return refs, sc.Err()
}

func (s *JSONStore) scanDir() ([]domain.RunRef, error) {
	dir := s.dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// No runs yet.
			return nil, nil
		}
		return nil, &domain.OpError{
			Op:   "runstore.list",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.RunRef
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		run, err := s.LoadRun(id)
		if err != nil {
			continue
		}
		refs = append(refs, domain.RunRef{
			ID:        id,
			Program:   run.ProgramName,
			Status:    run.Status,
			StartedAt: run.StartedAt,
		})
	}
	return refs, nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '_' || r == '-' || r == '.':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		default:
			// any other char -> dash
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	out = strings.ReplaceAll(out, "--", "-")
	return out
}
