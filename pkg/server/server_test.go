package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridsep/pkg/cache"
	"github.com/matzehuels/gridsep/pkg/io"
	"github.com/matzehuels/gridsep/pkg/observability"
	"github.com/matzehuels/gridsep/pkg/pipeline"
)

// conflictJSON is two cells in one row with evidence both ways and a point
// required in the left cell.
const conflictJSON = `{
  "obstructions": [
    {"patt": [0, 1], "pos": [[0, 0], [1, 0]]},
    {"patt": [1, 0], "pos": [[0, 0], [1, 0]]}
  ],
  "requirements": [[{"patt": [0], "pos": [[0, 0]]}]]
}`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	logger := log.New(&bytes.Buffer{})
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(New(pipeline.NewRunner(fc, nil, logger), logger, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body healthBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("body = %+v", body)
	}
	if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
		t.Errorf("%s = %q: %v", HeaderRequestID, resp.Header.Get(HeaderRequestID), err)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("%s = %q, want %q", HeaderRequestID, got, id)
	}

	req.Header.Set(HeaderRequestID, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got == "not-a-uuid" || got == "" {
		t.Errorf("malformed request ID kept: %q", got)
	}
}

func TestSeparate(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/separate", conflictJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
	}

	var res io.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if !res.Separable || res.Passes != 1 {
		t.Errorf("Separable = %v, Passes = %d", res.Separable, res.Passes)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("RunID = %q", res.RunID)
	}
	want := []io.CellMapping{
		{From: [2]int{0, 0}, To: [2]int{0, 1}},
		{From: [2]int{1, 0}, To: [2]int{1, 0}},
	}
	if len(res.CellMap) != len(want) || res.CellMap[0] != want[0] || res.CellMap[1] != want[1] {
		t.Errorf("CellMap = %v, want %v", res.CellMap, want)
	}
}

func TestOrders(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/orders?dim=cols", conflictJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var res pipeline.Orders
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if len(res.Cols) != 1 || res.Rows != nil {
		t.Errorf("Rows = %v, Cols = %v", res.Rows, res.Cols)
	}
}

func TestGraphDOT(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/graph?format=dot", conflictJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !strings.HasPrefix(buf.String(), "digraph OrderGraph") {
		t.Errorf("body = %q", buf.String())
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, WithMaxBodyBytes(512))
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", "/v1/separate", "{", http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown field", "/v1/separate", `{"obs": []}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad pattern", "/v1/separate", `{"obstructions": [{"patt": [0, 0], "pos": [[0,0],[0,0]]}]}`, http.StatusBadRequest, "INVALID_TILING"},
		{"grid too large", "/v1/separate", `{"obstructions": [{"patt": [0, 1], "pos": [[1024,1024],[1024,1024]]}]}`, http.StatusBadRequest, "INVALID_TILING"},
		{"bad dimension", "/v1/orders?dim=diagonal", conflictJSON, http.StatusBadRequest, "INVALID_DIMENSION"},
		{"bad bool", "/v1/separate?transitive=maybe", conflictJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", "/v1/graph?format=png", conflictJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"too large", "/v1/separate", `{"obstructions": [` + strings.Repeat(" ", 1024) + `]}`, http.StatusRequestEntityTooLarge, "INVALID_INPUT"},
		{"no route", "/v1/nothing", "{}", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if body := decodeError(t, resp); string(body.Code) != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Message)
			}
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	srv := newTestServer(t, WithRequestTimeout(time.Nanosecond))
	resp := post(t, srv.URL+"/v1/separate?refresh=true", conflictJSON)
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusGatewayTimeout)
	}
	if body := decodeError(t, resp); body.Code != "TIMEOUT" {
		t.Errorf("code = %q, want TIMEOUT", body.Code)
	}
}

type httpCounts struct {
	mu       sync.Mutex
	requests int
	statuses []int
}

func (h *httpCounts) OnRequest(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *httpCounts) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHooks(t *testing.T) {
	defer observability.Reset()
	counts := &httpCounts{}
	observability.SetHTTPHooks(counts)

	srv := newTestServer(t)
	post(t, srv.URL+"/v1/separate", conflictJSON)
	post(t, srv.URL+"/v1/separate", "{")
	srv.Close() // waits for the handlers, and so the hooks, to finish

	counts.mu.Lock()
	defer counts.mu.Unlock()
	if counts.requests != 2 {
		t.Errorf("requests = %d, want 2", counts.requests)
	}
	if len(counts.statuses) != 2 || counts.statuses[0] != http.StatusOK || counts.statuses[1] != http.StatusBadRequest {
		t.Errorf("statuses = %v", counts.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.New(&bytes.Buffer{})
	s := New(pipeline.NewRunner(nil, nil, logger), logger)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0", time.Second) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
