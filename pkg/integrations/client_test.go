package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/penpath/pkg/cache"
)

func newTestClient(t *testing.T, headers map[string]string) *Client {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return NewClient(c, "test", time.Hour, headers)
}

func TestNewClient(t *testing.T) {
	client := newTestClient(t, map[string]string{"User-Agent": "penpath/test"})
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.headers["User-Agent"] != "penpath/test" {
		t.Error("NewClient() headers not set correctly")
	}

	if NewClient(nil, "x", 0, nil).cache == nil {
		t.Error("NewClient(nil cache) should fall back to a null cache")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := newTestClient(t, nil)
	client.http = server.Client()

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var receivedHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedHeader = r.Header.Get("X-Override")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := newTestClient(t, map[string]string{"X-Override": "default"})
	client.http = server.Client()

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if receivedHeader != "overridden" {
		t.Errorf("header = %q, want %q", receivedHeader, "overridden")
	}
}

func TestClientGetText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<osm/>"))
	}))
	defer server.Close()

	client := newTestClient(t, nil)
	client.http = server.Client()

	text, err := client.GetText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetText() error: %v", err)
	}
	if text != "<osm/>" {
		t.Errorf("GetText() = %q, want %q", text, "<osm/>")
	}
}

func TestClientGet404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, nil)
	client.http = server.Client()

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientGet500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, nil)
	client.http = server.Client()

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	var retryErr *cache.RetryableError
	if !errors.As(err, &retryErr) {
		t.Errorf("Get() error should be RetryableError, got %T", err)
	}
}

func TestClientCached(t *testing.T) {
	client := newTestClient(t, nil)

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	var value testData
	fetch := func() error {
		fetchCount++
		value = testData{Value: "fetched"}
		return nil
	}

	for range 2 {
		if err := client.Cached(context.Background(), "key", false, &value, fetch); err != nil {
			t.Fatalf("Cached() error: %v", err)
		}
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if value.Value != "fetched" {
		t.Errorf("value = %+v", value)
	}

	if err := client.Cached(context.Background(), "key", true, &value, fetch); err != nil {
		t.Fatalf("Cached(refresh) error: %v", err)
	}
	if fetchCount != 2 {
		t.Errorf("fetch count after refresh = %d, want 2", fetchCount)
	}
}

func TestClientCachedBytes(t *testing.T) {
	client := newTestClient(t, nil)

	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte("<osm/>"), nil
	}
	for range 3 {
		data, err := client.CachedBytes(context.Background(), "bbox", false, fetch)
		if err != nil || string(data) != "<osm/>" {
			t.Fatalf("CachedBytes() = %q, %v", data, err)
		}
	}
	if calls != 1 {
		t.Errorf("fetch calls = %d, want 1", calls)
	}

	_, err := client.CachedBytes(context.Background(), "missing", false, func() ([]byte, error) {
		return nil, ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("CachedBytes() error = %v, want ErrNotFound", err)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{name: "200 OK", code: 200},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "429 Too Many Requests", code: 429, wantErr: true, isRetryErr: true},
		{name: "500 Internal Server Error", code: 500, wantErr: true, isRetryErr: true},
		{name: "509 Bandwidth Limit Exceeded", code: 509, wantErr: true, isRetryErr: true},
		{name: "400 Bad Request", code: 400, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			var retryErr *cache.RetryableError
			if got := errors.As(err, &retryErr); got != tt.isRetryErr {
				t.Errorf("checkStatus() retryable = %v, want %v", got, tt.isRetryErr)
			}
		})
	}
}
