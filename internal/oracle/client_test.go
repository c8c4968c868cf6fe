package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
	"github.com/KaRthiK15789/tablechat-cli/internal/query"
)

type ipv4Server struct {
	URL string
	srv *http.Server
	ln  net.Listener
}

func newIPv4Server(t *testing.T, handler http.Handler) *ipv4Server {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) {
			t.Skipf("skipping test: cannot open local listener (%v)", err)
		}
		t.Fatalf("listen tcp4: %v", err)
	}
	srv := &http.Server{Handler: handler}
	s := &ipv4Server{
		URL: "http://" + ln.Addr().String(),
		srv: srv,
		ln:  ln,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(fmt.Sprintf("test server serve: %v", err))
		}
	}()
	return s
}

func (s *ipv4Server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
}

func chatServer(t *testing.T, status int, content string) *ipv4Server {
	t.Helper()
	return newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if status < 200 || status >= 300 {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "nope"}})
			return
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("people", []string{"Age", "Department"}, [][]string{
		{"34", "Engineering"},
		{"29", "Sales"},
		{"41", "Engineering"},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds
}

func TestClassifyIntentParsesStructuredReply(t *testing.T) {
	reply := `{"type": "summary_statistics", "columns": ["age"], "operations": ["average"], "conditions": [], "chart_type": ""}`
	srv := chatServer(t, http.StatusOK, reply)
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "test-model", 5*time.Second, srv.URL)
	in, err := c.ClassifyIntent(context.Background(), "what is the average age?", testDataset(t))
	if err != nil {
		t.Fatalf("ClassifyIntent: %v", err)
	}
	if in.Category != query.CategorySummary {
		t.Errorf("category = %q, want %q", in.Category, query.CategorySummary)
	}
	if len(in.Columns) != 1 || in.Columns[0] != "age" {
		t.Errorf("columns = %v, want [age]", in.Columns)
	}
	if len(in.Operations) != 1 || in.Operations[0] != "average" {
		t.Errorf("operations = %v, want [average]", in.Operations)
	}
}

func TestClassifyIntentStripsFencedJSON(t *testing.T) {
	reply := "```json\n{\"type\": \"visualization\", \"columns\": [\"department\"], \"chart_type\": \"pie\"}\n```"
	srv := chatServer(t, http.StatusOK, reply)
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "test-model", 5*time.Second, srv.URL)
	in, err := c.ClassifyIntent(context.Background(), "pie chart of departments", testDataset(t))
	if err != nil {
		t.Fatalf("ClassifyIntent: %v", err)
	}
	if in.Category != query.CategoryVisualization {
		t.Errorf("category = %q, want %q", in.Category, query.CategoryVisualization)
	}
	if in.ChartKind != "pie" {
		t.Errorf("chart kind = %q, want pie", in.ChartKind)
	}
}

func TestClassifyIntentNumericConditionValue(t *testing.T) {
	reply := `{"type": "filtered_query", "columns": ["age"], "conditions": [{"column": "age", "operator": "<", "value": 30}]}`
	srv := chatServer(t, http.StatusOK, reply)
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "test-model", 5*time.Second, srv.URL)
	in, err := c.ClassifyIntent(context.Background(), "people under 30", testDataset(t))
	if err != nil {
		t.Fatalf("ClassifyIntent: %v", err)
	}
	if len(in.Conditions) != 1 {
		t.Fatalf("conditions = %v, want one", in.Conditions)
	}
	cond := in.Conditions[0]
	if cond.Column != "age" || cond.Operator != "<" || cond.Value != "30" {
		t.Errorf("condition = %+v, want age < 30", cond)
	}
}

func TestClassifyIntentRejectsUnknownType(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"type": "prophecy"}`)
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "test-model", 5*time.Second, srv.URL)
	if _, err := c.ClassifyIntent(context.Background(), "tell my fortune", testDataset(t)); err == nil {
		t.Fatal("expected error for unknown intent type")
	}
}

func TestClassifyIntentRejectsNonJSONReply(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "Sure! The average age is 34.7.")
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "test-model", 5*time.Second, srv.URL)
	if _, err := c.ClassifyIntent(context.Background(), "average age", testDataset(t)); err == nil {
		t.Fatal("expected error for prose reply")
	}
}

func TestClassifyIntentAuthError(t *testing.T) {
	srv := chatServer(t, http.StatusUnauthorized, "")
	defer srv.Close()

	c := NewClientWithBaseURL("bad-key", "test-model", 5*time.Second, srv.URL)
	_, err := c.ClassifyIntent(context.Background(), "average age", testDataset(t))
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want AuthError", err)
	}
}

func TestClassifyIntentRateLimitError(t *testing.T) {
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "slow down"}})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "test-model", 5*time.Second, srv.URL)
	_, err := c.ClassifyIntent(context.Background(), "average age", testDataset(t))
	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("error = %v, want RateLimitError", err)
	}
	if rlErr.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", rlErr.RetryAfter)
	}
}

func TestClassifyIntentSingleAttempt(t *testing.T) {
	var calls int
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "boom"}})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "test-model", 5*time.Second, srv.URL)
	_, err := c.ClassifyIntent(context.Background(), "average age", testDataset(t))
	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("error = %v, want ServerError", err)
	}
	if calls != 1 {
		t.Errorf("server called %d times, want exactly 1", calls)
	}
}

func TestClassifyIntentMissingKey(t *testing.T) {
	c := NewClient("", "test-model", time.Second)
	if _, err := c.ClassifyIntent(context.Background(), "anything", testDataset(t)); err == nil {
		t.Fatal("expected error with empty api key")
	}
}

func TestSystemPromptListsColumns(t *testing.T) {
	p := systemPrompt(testDataset(t))
	for _, want := range []string{"age", "department", "Engineering"} {
		if !strings.Contains(p, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
