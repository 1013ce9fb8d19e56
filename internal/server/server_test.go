package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/thrackle/pkg/cache"
	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/history"
	"github.com/matzehuels/thrackle/pkg/thrackle"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

const crossedPair = `{
	"vertices": [
		{"id": "a", "x": 0, "y": 0},
		{"id": "b", "x": 10, "y": 10},
		{"id": "c", "x": 0, "y": 10},
		{"id": "d", "x": 10, "y": 0}
	],
	"edges": [{"v1": "a", "v2": "b"}, {"v1": "c", "v2": "d"}]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return New(Options{
		GraphOpts: thrackle.DefaultOptions(),
		Cache:     fc,
		CacheTTL:  time.Hour,
		Store:     history.NewMemoryStore(),
	})
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got map[string]string
	decodeBody(t, rec, &got)
	if got["status"] != "ok" {
		t.Errorf("status = %q, want ok", got["status"])
	}
	if got["version"] == "" || got["commit"] == "" {
		t.Errorf("build info missing from %v", got)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestSynthesize(t *testing.T) {
	s := newTestServer(t)

	for i, wantCached := range []bool{false, true} {
		rec := do(t, s, http.MethodPost, "/synthesize", `{"shape":"cycle","n":5,"k":5}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, body %s", i, rec.Code, rec.Body)
		}
		var got synthesizeResponse
		decodeBody(t, rec, &got)
		if got.Cached != wantCached {
			t.Errorf("request %d: cached = %v, want %v", i, got.Cached, wantCached)
		}
		if got.Request.Variant != "circle" {
			t.Errorf("variant = %q, want circle", got.Request.Variant)
		}
		if len(got.Drawing.Vertices) != 5 || len(got.Drawing.Edges) != 5 {
			t.Errorf("drawing has %d vertices, %d edges, want 5, 5", len(got.Drawing.Vertices), len(got.Drawing.Edges))
		}
		if got.Summary.Total != 5 || got.Summary.ThrackleNumber != 5 {
			t.Errorf("summary = %+v, want 5 of 5 crossings", got.Summary)
		}
		if got.Summary.Categories.Legal != 5 {
			t.Errorf("legal = %d, want 5", got.Summary.Categories.Legal)
		}
	}
}

func TestSynthesizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed", `{"shape":`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"shape":"path","n":3,"colour":"red"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown shape", `{"shape":"tree","n":3}`, http.StatusBadRequest, errors.ErrCodeInvalidShape},
		{"unknown variant", `{"shape":"path","n":3,"variant":"star"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unrealizable", `{"shape":"cycle","n":4,"k":2}`, http.StatusUnprocessableEntity, errors.ErrCodeUnrealizable},
		{"too many crossings", `{"shape":"path","n":4,"k":9}`, http.StatusUnprocessableEntity, errors.ErrCodeCrossingsOutOfRange},
		{"too many vertices", `{"shape":"path","n":100000,"k":0}`, http.StatusBadRequest, errors.ErrCodeTooManyVertices},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/synthesize", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			var got errorResponse
			decodeBody(t, rec, &got)
			if got.Code != tt.code {
				t.Errorf("code = %s, want %s", got.Code, tt.code)
			}
			if got.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestStatusOfCancelledSynthesis(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := synth.New(synth.DefaultOptions()).Synthesize(ctx, synth.Request{Shape: "cycle", N: 7, K: 9}, thrackle.DefaultOptions())
	if err == nil {
		t.Fatal("Synthesize with cancelled context succeeded")
	}
	if got := statusOf(err); got != http.StatusServiceUnavailable {
		t.Errorf("statusOf(%v) = %d, want %d", err, got, http.StatusServiceUnavailable)
	}
}

func TestCrossings(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/crossings", crossedPair)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got summary
	decodeBody(t, rec, &got)
	if got.Total != 1 || len(got.Crossings) != 1 {
		t.Fatalf("summary = %+v, want one crossing", got)
	}
	c := got.Crossings[0]
	if !c.Legal || c.SelfCrossing || c.MoreThanOnce {
		t.Errorf("crossing = %+v, want a single legal crossing", c)
	}
	if c.At != [2]float64{5, 5} {
		t.Errorf("at = %v, want [5 5]", c.At)
	}
	if got.ThrackleNumber != 1 {
		t.Errorf("thrackle number = %d, want 1", got.ThrackleNumber)
	}
}

func TestCrossingsRejectsBadDrawing(t *testing.T) {
	body := `{"vertices":[{"id":"a","x":0,"y":0}],"edges":[{"v1":"a","v2":"z"}]}`
	rec := do(t, newTestServer(t), http.MethodPost, "/crossings", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRenderDOT(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/render?format=dot&labels=false", crossedPair)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	out := rec.Body.String()
	if !strings.HasPrefix(out, "graph") || !strings.Contains(out, "crossing:") {
		t.Errorf("unexpected DOT output:\n%s", out)
	}

	again := do(t, s, http.MethodPost, "/render?format=dot&labels=false", crossedPair)
	if !bytes.Equal(again.Body.Bytes(), rec.Body.Bytes()) {
		t.Error("cached render differs from the first one")
	}
}

func TestRenderRejectsOptions(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{"/render?format=gif", "/render?format=dot&scale=-1", "/render?scale=big"} {
		rec := do(t, s, http.MethodPost, target, crossedPair)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestSnapshots(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/snapshots", `{"label":"crossed","drawing":`+crossedPair+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body)
	}
	var saved history.Snapshot
	decodeBody(t, rec, &saved)
	if saved.ID == "" || saved.Crossings != 1 || saved.Label != "crossed" {
		t.Fatalf("saved = %+v", saved)
	}

	rec = do(t, s, http.MethodGet, "/snapshots", "")
	var list []history.Snapshot
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Fatalf("list = %+v, want the saved snapshot", list)
	}

	rec = do(t, s, http.MethodGet, "/snapshots/"+saved.ID, "")
	var loaded history.Snapshot
	decodeBody(t, rec, &loaded)
	if len(loaded.Drawing.Vertices) != 4 {
		t.Errorf("loaded drawing has %d vertices, want 4", len(loaded.Drawing.Vertices))
	}

	rec = do(t, s, http.MethodDelete, "/snapshots/"+saved.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	rec = do(t, s, http.MethodGet, "/snapshots/"+saved.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSnapshotRoutesNeedStore(t *testing.T) {
	s := New(Options{})
	rec := do(t, s, http.MethodGet, "/snapshots", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen: %v", err)
	}
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l, time.Second) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
