package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/penpath/pkg/jobs"
)

const doc = "SP1;PU0,0;PD10,0;PU;PU500,500;PD510,500;PU;PU12,0;PD20,0;PU;"

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New(nil, jobs.NewMemoryStore(), nil, Config{})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestOptimize(t *testing.T) {
	_, ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/optimize", doc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(HeaderJobID) == "" {
		t.Error("missing job id header")
	}
	if got := resp.Header.Get(HeaderCache); got != "miss" {
		t.Errorf("%s = %q, want miss", HeaderCache, got)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "SP1;\nPU;\nPA0,0;") || !strings.HasSuffix(buf.String(), "SP0;\n") {
		t.Errorf("body =\n%s", buf.String())
	}
}

func TestOptimizeFormat(t *testing.T) {
	_, ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/optimize?format=svg", doc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}

	resp = post(t, ts.URL+"/v1/optimize?format=bmp", doc)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad format status = %d, want 400", resp.StatusCode)
	}
	if e := decode[ErrorResponse](t, resp); e.Code != "INVALID_FORMAT" {
		t.Errorf("code = %q, want INVALID_FORMAT", e.Code)
	}
}

func TestOptimizeParseError(t *testing.T) {
	_, ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/optimize", "PU0,0;XX;PD1;")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	e := decode[ErrorResponse](t, resp)
	if e.Code != "INVALID_COMMAND" {
		t.Errorf("code = %q, want INVALID_COMMAND", e.Code)
	}
	if strings.Join(e.Fragments, "|") != "XX|PD1" {
		t.Errorf("fragments = %v, want [XX PD1]", e.Fragments)
	}
}

func TestOptimizeUnsupported(t *testing.T) {
	tests := []struct {
		doc  string
		code string
	}{
		{"PU0,0;PR5,5;", "UNSUPPORTED_INPUT"},
		{"PU0,0;IN;", "MALFORMED_DOCUMENT"},
	}
	_, ts := newTestServer(t)
	for _, tt := range tests {
		resp := post(t, ts.URL+"/v1/optimize", tt.doc)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("POST %q status = %d, want 422", tt.doc, resp.StatusCode)
		}
		if e := decode[ErrorResponse](t, resp); e.Code != tt.code {
			t.Errorf("POST %q code = %q, want %s", tt.doc, e.Code, tt.code)
		}
	}
}

func TestOptimizeBadQuery(t *testing.T) {
	_, ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/optimize?collapse=maybe", doc)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestJobs(t *testing.T) {
	_, ts := newTestServer(t)

	ok := post(t, ts.URL+"/v1/optimize?collapse=true", doc)
	okID := ok.Header.Get(HeaderJobID)
	bad := post(t, ts.URL+"/v1/optimize", "PR1,1;")
	badID := bad.Header.Get(HeaderJobID)

	resp, err := http.Get(ts.URL + "/v1/jobs/" + okID)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	job := decode[jobs.Job](t, resp)
	if job.Status != jobs.StatusDone || job.Stats == nil || job.Stats.Shapes != 3 || job.Output == "" {
		t.Errorf("done job = %+v", job)
	}

	resp, err = http.Get(ts.URL + "/v1/jobs/" + badID)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	job = decode[jobs.Job](t, resp)
	if job.Status != jobs.StatusFailed || job.ErrorCode != "UNSUPPORTED_INPUT" {
		t.Errorf("failed job = %+v", job)
	}

	resp, err = http.Get(ts.URL + "/v1/jobs/00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown job status = %d, want 404", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/v1/jobs?limit=1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if list := decode[[]jobs.Job](t, resp); len(list) != 1 {
		t.Errorf("list len = %d, want 1", len(list))
	}

	resp, err = http.Get(ts.URL + "/v1/jobs?limit=zero")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	h := decode[map[string]string](t, resp)
	if h["status"] != "ok" || h["version"] == "" {
		t.Errorf("healthz = %v", h)
	}
}

func TestWebsocket(t *testing.T) {
	_, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(doc)); err != nil {
		t.Fatal(err)
	}
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(msg), "SP1;") {
		t.Errorf("reply = %q", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("XX;")); err != nil {
		t.Fatal(err)
	}
	_, msg, err = conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var e ErrorResponse
	if err := json.Unmarshal(msg, &e); err != nil || e.Code != "INVALID_COMMAND" {
		t.Errorf("error reply = %q (%v)", msg, err)
	}
}

func TestServeShutdown(t *testing.T) {
	s := New(nil, nil, nil, Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	if c.Addr != DefaultAddr || c.MaxBodyBytes != DefaultMaxBodyBytes || c.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("SetDefaults() = %+v", c)
	}
}
