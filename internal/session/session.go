// Package session owns the mutable state of one interactive run: the loaded
// dataset and the question/answer transcript.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
	"github.com/KaRthiK15789/tablechat-cli/internal/query"
	"github.com/KaRthiK15789/tablechat-cli/internal/utils"
)

// Entry is one recorded question/answer exchange.
type Entry struct {
	ID       string          `json:"id"`
	Question string          `json:"question"`
	Response *query.Envelope `json:"response"`
	AskedAt  time.Time       `json:"asked_at"`
}

// Transcript is the serialized form of a session, written by Export.
type Transcript struct {
	ID         string    `json:"id"`
	Dataset    string    `json:"dataset"`
	Rows       int       `json:"rows"`
	StartedAt  time.Time `json:"started_at"`
	ExportedAt time.Time `json:"exported_at"`
	Entries    []Entry   `json:"entries"`
}

// Session pairs a dataset with a query engine and records every exchange.
type Session struct {
	id        string
	engine    *query.Engine
	ds        *dataset.Dataset
	startedAt time.Time
	entries   []Entry
}

// New starts an empty session around the given engine.
func New(engine *query.Engine) *Session {
	return &Session{
		id:        uuid.NewString(),
		engine:    engine,
		startedAt: time.Now(),
	}
}

// LoadFile parses a tabular file and installs it as the active dataset. The
// previous dataset stays in place when loading fails, so a typo'd path never
// drops working state.
func (s *Session) LoadFile(path string) error {
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	s.ds = ds
	return nil
}

// SetDataset installs an already-built dataset (used by tests and by the
// sample generator).
func (s *Session) SetDataset(ds *dataset.Dataset) { s.ds = ds }

// Dataset returns the active dataset, or nil when none is loaded.
func (s *Session) Dataset() *dataset.Dataset { return s.ds }

// Ask runs one question through the engine and records the exchange.
func (s *Session) Ask(ctx context.Context, question string) *query.Envelope {
	env := s.engine.Answer(ctx, question, s.ds)
	s.entries = append(s.entries, Entry{
		ID:       uuid.NewString(),
		Question: question,
		Response: env,
		AskedAt:  time.Now(),
	})
	return env
}

// History returns the recorded exchanges in ask order.
func (s *Session) History() []Entry { return s.entries }

// Export writes the transcript as indented JSON using an atomic rename, so a
// crash mid-write never leaves a truncated file.
func (s *Session) Export(path string) error {
	if len(s.entries) == 0 {
		return errors.New("nothing to export: no questions asked yet")
	}
	t := Transcript{
		ID:         s.id,
		StartedAt:  s.startedAt,
		ExportedAt: time.Now(),
		Entries:    s.entries,
	}
	if s.ds != nil {
		t.Dataset = s.ds.Name
		t.Rows = s.ds.Rows()
	}
	data, err := utils.PrettyJSON(t)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, data)
}
