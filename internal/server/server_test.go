package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/threatforge/threatforge/pkg/cache"
	"github.com/threatforge/threatforge/pkg/model"
	"github.com/threatforge/threatforge/pkg/store"
	"github.com/threatforge/threatforge/pkg/tmx"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(log.New(io.Discard), cache.NewNullCache(), store.NewMemoryStore())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func testGraph() model.Graph {
	return model.Graph{
		Metadata: model.Metadata{Name: "Service Model"},
		Nodes: []model.Node{
			{ID: "web", Kind: model.KindProcess, Name: "Web App", Position: model.Position{X: 10, Y: 20}},
			{ID: "db", Kind: model.KindStore, Name: "Accounts DB", Position: model.Position{X: 200, Y: 20}},
		},
		Edges: []model.Edge{
			{ID: "q", Kind: model.KindFlow, Source: "web", Targets: []string{"db"}, Properties: model.Properties{"Name": "query"}},
		},
	}
}

func postJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestConvertEndpoint(t *testing.T) {
	ts := newTestServer(t)

	doc, err := tmx.Encode(testGraph())
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	resp, err := http.Post(ts.URL+"/api/convert", "application/xml", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Graph model.Graph `json:"graph"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Graph.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(out.Graph.Nodes))
	}
	if len(out.Graph.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(out.Graph.Edges))
	}
}

func TestConvertEndpointRejectsGarbage(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/convert", "application/xml", strings.NewReader("<Broken>"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Kind != "SYNTAX_FAILURE" {
		t.Fatalf("kind = %q, want SYNTAX_FAILURE", body.Kind)
	}
}

func TestExportEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/export", testGraph())
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/xml" {
		t.Fatalf("content type = %q, want application/xml", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if _, err := tmx.Decode(string(data)); err != nil {
		t.Fatalf("exported document does not parse: %v", err)
	}
}

func TestModelLifecycle(t *testing.T) {
	ts := newTestServer(t)
	client := &http.Client{}

	body, _ := json.Marshal(testGraph())
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/models/m1", bytes.NewReader(body))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/models/m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var got model.Graph
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode model: %v", err)
	}
	resp.Body.Close()
	if got.Metadata.Name != "Service Model" {
		t.Fatalf("name = %q, want %q", got.Metadata.Name, "Service Model")
	}

	resp, err = http.Get(ts.URL + "/api/models/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var summaries []store.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	resp.Body.Close()
	if len(summaries) != 1 || summaries[0].ID != "m1" {
		t.Fatalf("summaries = %+v, want one entry with id m1", summaries)
	}

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/models/m1", nil)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/models/m1")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestConvertCachesResult(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("file cache: %v", err)
	}
	srv := New(log.New(io.Discard), fc, store.NewMemoryStore())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	doc, err := tmx.Encode(testGraph())
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	for range 2 {
		resp, err := http.Post(ts.URL+"/api/convert", "application/xml", strings.NewReader(doc))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
	}
}
