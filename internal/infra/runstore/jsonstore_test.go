package runstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/maw3193/bft/internal/domain"
)

func sampleArtifact(ts time.Time) domain.RunArtifact {
	return domain.RunArtifact{
		ProgramName: "hello",
		ProgramPath: "programs/hello.bf",
		StartedAt:   ts,
		FinishedAt:  ts.Add(12 * time.Millisecond),
		Status:      domain.RunOK,
		Steps:       906,
		OutputBytes: 13,
		Width:       domain.Width8,
		TapeCells:   30000,
		Profile:     map[string]uint64{"+": 400, ">": 200},
	}
}

func TestSaveRun_WritesArtifactFile(t *testing.T) {
	root := t.TempDir()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewJSONStore(root, domain.DefaultConfig(), WithNow(func() time.Time { return fixed }))

	id, err := s.SaveRun(sampleArtifact(fixed))
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if id != "20240102T030405Z_hello" {
		t.Errorf("id = %q, want %q", id, "20240102T030405Z_hello")
	}

	path := filepath.Join(root, "runs", id+".json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected artifact file at %s: %v", path, err)
	}
}

func TestSaveRun_StampsStartedAt(t *testing.T) {
	root := t.TempDir()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewJSONStore(root, domain.DefaultConfig(), WithNow(func() time.Time { return fixed }))

	art := sampleArtifact(fixed)
	art.StartedAt = time.Time{}

	id, err := s.SaveRun(art)
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	got, err := s.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun error: %v", err)
	}
	if !got.StartedAt.Equal(fixed) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, fixed)
	}
}

func TestSaveRun_AvoidsCollisionWithinSameSecond(t *testing.T) {
	root := t.TempDir()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewJSONStore(root, domain.DefaultConfig(), WithNow(func() time.Time { return fixed }))

	first, err := s.SaveRun(sampleArtifact(fixed))
	if err != nil {
		t.Fatalf("first SaveRun error: %v", err)
	}
	second, err := s.SaveRun(sampleArtifact(fixed))
	if err != nil {
		t.Fatalf("second SaveRun error: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct ids, both %q", first)
	}
	if second != first+"_2" {
		t.Errorf("second id = %q, want %q", second, first+"_2")
	}
}

func TestLoadRun_RoundTrip(t *testing.T) {
	root := t.TempDir()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewJSONStore(root, domain.DefaultConfig(), WithNow(func() time.Time { return fixed }))

	want := sampleArtifact(fixed)
	id, err := s.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	got, err := s.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun error: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRun_MissingID(t *testing.T) {
	s := NewJSONStore(t.TempDir(), domain.DefaultConfig())

	_, err := s.LoadRun("20240101T000000Z_nope")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestLoadRunRaw_RejectsPathSeparators(t *testing.T) {
	s := NewJSONStore(t.TempDir(), domain.DefaultConfig())

	for _, id := range []string{"", "../escape", `a\b`} {
		_, err := s.LoadRunRaw(id)
		if err == nil {
			t.Fatalf("expected error for id %q", id)
		}
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("expected KindInvalidConfig for id %q, got: %v", id, err)
		}
	}
}

func TestListRuns_UsesIndexNewestFirst(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewJSONStore(root, domain.DefaultConfig(),
		WithIndex(true),
		WithNow(func() time.Time { return now }),
	)

	var ids []string
	for i := 0; i < 3; i++ {
		art := sampleArtifact(now.Add(time.Duration(i) * time.Second))
		id, err := s.SaveRun(art)
		if err != nil {
			t.Fatalf("SaveRun %d error: %v", i, err)
		}
		ids = append(ids, id)
	}

	if _, err := os.Stat(filepath.Join(root, "runs", "index.jsonl")); err != nil {
		t.Fatalf("expected index file: %v", err)
	}

	refs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns error: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 refs, got %d", len(refs))
	}
	if refs[0].ID != ids[2] || refs[2].ID != ids[0] {
		t.Errorf("expected newest first, got %q, %q, %q", refs[0].ID, refs[1].ID, refs[2].ID)
	}
	if refs[0].Program != "hello" || refs[0].Status != domain.RunOK {
		t.Errorf("ref not populated: %+v", refs[0])
	}

	limited, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns(2) error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 refs with limit, got %d", len(limited))
	}
}

func TestListRuns_FallsBackToDirectoryScan(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewJSONStore(root, domain.DefaultConfig(), WithNow(func() time.Time { return now }))

	if _, err := s.SaveRun(sampleArtifact(now)); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if _, err := s.SaveRun(sampleArtifact(now.Add(time.Second))); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	refs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].Program != "hello" {
		t.Errorf("ref not populated from artifact: %+v", refs[0])
	}
}

func TestListRuns_EmptyWorkspace(t *testing.T) {
	s := NewJSONStore(t.TempDir(), domain.DefaultConfig())

	refs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns error: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected no refs, got %d", len(refs))
	}
}
