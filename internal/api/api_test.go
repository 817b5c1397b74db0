package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/genomap/genomap/pkg/pipeline"
)

const testRecord = `LOCUS       pAPI                      50 bp    DNA     circular SYN 01-JAN-2024
DEFINITION  api test construct.
FEATURES             Location/Qualifiers
     CDS             3..30
                     /gene="apiA"
ORIGIN
        1 acgtgaattc acgtacgtac gtacgtacgt acgtacgtac gtacgtacgt
//
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	t.Cleanup(func() { runner.Close() })
	srv := NewServer("", runner, logger)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response should carry X-Request-ID")
	}
}

func TestEnzymes(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/enzymes")
	if err != nil {
		t.Fatalf("GET /enzymes: %v", err)
	}
	defer resp.Body.Close()

	var enzymes []struct {
		Name string `json:"Name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&enzymes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(enzymes) == 0 {
		t.Fatal("enzyme list should not be empty")
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"content": testRecord,
		"formats": []string{"svg"},
	})
	resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}

	var got struct {
		RequestID string            `json:"request_id"`
		Layout    struct{ View string `json:"view"` } `json:"layout"`
		Artifacts map[string][]byte `json:"artifacts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RequestID == "" {
		t.Error("request_id should be set")
	}
	if got.Layout.View != "circular" {
		t.Errorf("view = %q, want circular", got.Layout.View)
	}
	if !strings.Contains(string(got.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact should contain an <svg> element")
	}
}

func TestRenderRejectsSourcePath(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"source": "/etc/passwd"})
	resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderInvalidRecord(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"content": "not a genbank record"})
	resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var got struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Code == "" {
		t.Error("error response should carry a code")
	}
}
