package query

import (
	"fmt"

	"github.com/KaRthiK15789/tablechat-cli/internal/chart"
)

// Kind tags a response envelope variant.
type Kind string

const (
	KindText      Kind = "text"
	KindTable     Kind = "table"
	KindChart     Kind = "chart"
	KindComposite Kind = "composite"
	KindError     Kind = "error"
)

// Table is tabular response data with display column names.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Envelope is the tagged result of one query execution. Exactly the fields
// implied by Kind are set; renderers must handle every variant, including
// composite with any subset of text/table/chart present.
type Envelope struct {
	Kind  Kind        `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Table *Table      `json:"table,omitempty"`
	Chart *chart.Spec `json:"chart,omitempty"`
	Err   string      `json:"error,omitempty"`
}

func textEnvelope(format string, args ...any) *Envelope {
	return &Envelope{Kind: KindText, Text: fmt.Sprintf(format, args...)}
}

func errorEnvelope(format string, args ...any) *Envelope {
	return &Envelope{Kind: KindError, Err: fmt.Sprintf(format, args...)}
}

func composite(text string, t *Table, c *chart.Spec) *Envelope {
	return &Envelope{Kind: KindComposite, Text: text, Table: t, Chart: c}
}

func chartEnvelope(text string, c *chart.Spec) *Envelope {
	return &Envelope{Kind: KindChart, Text: text, Chart: c}
}
