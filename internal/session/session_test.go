package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
	"github.com/KaRthiK15789/tablechat-cli/internal/query"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := New(query.NewEngine(nil))
	ds, err := dataset.New("people", []string{"Age", "Department"}, [][]string{
		{"34", "Engineering"},
		{"29", "Sales"},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	s.SetDataset(ds)
	return s
}

func TestAskRecordsHistory(t *testing.T) {
	s := newTestSession(t)
	env := s.Ask(context.Background(), "what is the average age?")
	if env == nil {
		t.Fatal("Ask returned nil envelope")
	}
	h := s.History()
	if len(h) != 1 {
		t.Fatalf("history length = %d, want 1", len(h))
	}
	if h[0].Question != "what is the average age?" {
		t.Errorf("recorded question = %q", h[0].Question)
	}
	if h[0].Response != env {
		t.Error("recorded response is not the returned envelope")
	}
	if h[0].ID == "" {
		t.Error("entry ID is empty")
	}
}

func TestLoadFileKeepsDatasetOnError(t *testing.T) {
	s := newTestSession(t)
	before := s.Dataset()
	if err := s.LoadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error loading missing file")
	}
	if s.Dataset() != before {
		t.Error("failed load replaced the active dataset")
	}
}

func TestLoadFileReplacesDataset(t *testing.T) {
	s := newTestSession(t)
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("Name,Score\nAda,91\nGrace,88\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := s.Dataset().Name; got != "data" {
		t.Errorf("dataset name = %q, want data", got)
	}
	if got := s.Dataset().Rows(); got != 2 {
		t.Errorf("rows = %d, want 2", got)
	}
}

func TestExportWritesTranscript(t *testing.T) {
	s := newTestSession(t)
	s.Ask(context.Background(), "average age")
	s.Ask(context.Background(), "pie chart of department")

	path := filepath.Join(t.TempDir(), "transcript.json")
	if err := s.Export(path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var tr Transcript
	if err := json.Unmarshal(b, &tr); err != nil {
		t.Fatalf("transcript is not valid JSON: %v", err)
	}
	if tr.Dataset != "people" {
		t.Errorf("transcript dataset = %q, want people", tr.Dataset)
	}
	if len(tr.Entries) != 2 {
		t.Errorf("transcript entries = %d, want 2", len(tr.Entries))
	}
}

func TestExportEmptySessionFails(t *testing.T) {
	s := newTestSession(t)
	if err := s.Export(filepath.Join(t.TempDir(), "t.json")); err == nil {
		t.Fatal("expected error exporting empty session")
	}
}
