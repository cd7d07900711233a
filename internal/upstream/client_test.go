package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/builddeck/builddeck-mcp/internal/common"
)

func testClient(baseURL string) *Client {
	cfg := &common.Config{
		Upstream: common.UpstreamConfig{
			BaseURL:   baseURL,
			Timeout:   "5s",
			PageLimit: 5,
		},
	}
	return NewClient(cfg, common.NewSilentLogger())
}

func TestClient_Do_URLConstruction(t *testing.T) {
	var gotPath string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)

	// Leading slash supplied by the caller
	res := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/clients"})
	if res.IsError() {
		t.Fatalf("Unexpected error: %s", res.Text())
	}
	if gotPath != "/api/v1/clients" {
		t.Errorf("Expected /api/v1/clients, got %s", gotPath)
	}

	// Leading slash missing: must be prepended, not doubled
	res = client.Do(context.Background(), Request{Method: http.MethodGet, Path: "clients"})
	if res.IsError() {
		t.Fatalf("Unexpected error: %s", res.Text())
	}
	if gotPath != "/api/v1/clients" {
		t.Errorf("Expected /api/v1/clients for bare path, got %s", gotPath)
	}
}

func TestClient_Do_QueryEncoding(t *testing.T) {
	var gotQuery string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	res := client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/clients",
		Query: map[string]any{
			"page":    1,
			"limit":   5,
			"skipped": nil,
		},
	})
	if res.IsError() {
		t.Fatalf("Unexpected error: %s", res.Text())
	}

	if strings.Contains(gotQuery, "skipped") {
		t.Errorf("Nil-valued query key must be omitted, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "page=1") || !strings.Contains(gotQuery, "limit=5") {
		t.Errorf("Expected page=1 and limit=5 in query, got %q", gotQuery)
	}
}

func TestClient_Do_GetDeleteNeverCarryBody(t *testing.T) {
	var gotMethod string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		body, _ := io.ReadAll(r.Body)
		if len(body) != 0 {
			t.Errorf("%s request must not carry a body, got %q", r.Method, string(body))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		res := client.Do(context.Background(), Request{
			Method: method,
			Path:   "/clients",
			Body:   map[string]string{"ignored": "yes"},
		})
		if res.IsError() {
			t.Fatalf("Unexpected error for %s: %s", method, res.Text())
		}
		if gotMethod != method {
			t.Errorf("Expected method %s on the wire, got %s", method, gotMethod)
		}
	}
}

func TestClient_Do_PostBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("Request body is not valid JSON: %v", err)
		}
		if req["name"] != "Acme Builders" {
			t.Errorf("Expected name=Acme Builders, got %v", req["name"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "c-1"})
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	res := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/clients",
		Body:   map[string]string{"name": "Acme Builders"},
	})
	if res.IsError() {
		t.Fatalf("Unexpected error: %s", res.Text())
	}
}

func TestClient_Do_SuccessPrettyPrintRoundTrip(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc"}`))
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	res := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/clients/abc"})
	if res.IsError() {
		t.Fatalf("Unexpected error: %s", res.Text())
	}

	expected := "{\n  \"id\": \"abc\"\n}"
	if res.Text() != expected {
		t.Errorf("Expected %q, got %q", expected, res.Text())
	}

	// Re-parsing the rendered text must reproduce the original value
	var roundTrip map[string]string
	if err := json.Unmarshal([]byte(res.Text()), &roundTrip); err != nil {
		t.Fatalf("Rendered text is not valid JSON: %v", err)
	}
	if roundTrip["id"] != "abc" {
		t.Errorf("Round trip lost data: %v", roundTrip)
	}
}

func TestClient_Do_IdenticalURLsAcrossCalls(t *testing.T) {
	var uris []string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uris = append(uris, r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	req := Request{
		Method: http.MethodGet,
		Path:   "/proposals",
		Query:  map[string]any{"limit": 10, "page": 2},
	}
	client.Do(context.Background(), req)
	client.Do(context.Background(), req)

	if len(uris) != 2 {
		t.Fatalf("Expected 2 calls, got %d", len(uris))
	}
	if uris[0] != uris[1] {
		t.Errorf("Identical requests produced different URLs: %q vs %q", uris[0], uris[1])
	}
}

func TestClient_Do_HTTPError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	res := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/clients/missing"})

	if !res.IsError() {
		t.Fatal("Expected error result for 404 response")
	}
	if res.Kind != KindHTTPError {
		t.Errorf("Expected KindHTTPError, got %v", res.Kind)
	}
	if !strings.HasPrefix(res.Text(), "API Error 404:") {
		t.Errorf("Expected text starting with 'API Error 404:', got %q", res.Text())
	}
	if !strings.Contains(res.Text(), "\"error\": \"not found\"") {
		t.Errorf("Expected pretty-printed error body, got %q", res.Text())
	}
}

func TestClient_Do_HTTPError_NonJSONBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	res := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/clients"})

	if res.Kind != KindHTTPError {
		t.Fatalf("Expected KindHTTPError, got %v", res.Kind)
	}
	if res.Text() != "API Error 500: internal server error" {
		t.Errorf("Expected raw body fallback, got %q", res.Text())
	}
}

func TestClient_Do_NetworkError(t *testing.T) {
	client := testClient("http://localhost:1")
	res := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/clients"})

	if res.Kind != KindNetworkError {
		t.Fatalf("Expected KindNetworkError, got %v", res.Kind)
	}
	if !strings.HasPrefix(res.Text(), "Network Error:") {
		t.Errorf("Expected text starting with 'Network Error:', got %q", res.Text())
	}
}

func TestClient_Do_InvalidJSONResponse(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	res := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/clients"})

	if res.Kind != KindNetworkError {
		t.Fatalf("Expected KindNetworkError for non-JSON success body, got %v", res.Kind)
	}
	if !strings.HasPrefix(res.Text(), "Network Error:") {
		t.Errorf("Expected 'Network Error:' prefix, got %q", res.Text())
	}
}

func TestClient_Do_ContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer mockServer.Close()

	client := testClient(mockServer.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := client.Do(ctx, Request{Method: http.MethodGet, Path: "/clients"})
	if res.Kind != KindNetworkError {
		t.Errorf("Expected KindNetworkError for cancelled context, got %v", res.Kind)
	}
}
