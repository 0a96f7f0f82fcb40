package server

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/vecscope/vecscope/internal/adapter"
	"github.com/vecscope/vecscope/internal/history"
	"github.com/vecscope/vecscope/internal/vectordata"
)

const fixtureJSON = `{
  "type": "faiss",
  "count": 1,
  "dimension": 2,
  "vectors": [{"id": "0", "vector": [0.5, 0.5], "text": "hello", "source": "a.md", "metadata": {}}]
}`

// newTestServer wires a server to a fake /bin/sh adapter and an in-memory
// history store, returning the server and a loadable database path.
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake adapters use /bin/sh")
	}

	adapterDir := t.TempDir()
	script := "#!/bin/sh\ncat <<'EOF'\n" + fixtureJSON + "\nEOF\n"
	if err := os.WriteFile(filepath.Join(adapterDir, "faiss_adapter.py"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	dbDir := t.TempDir()
	dbPath := filepath.Join(dbDir, "index.faiss")
	if err := os.WriteFile(dbPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := history.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	loader := &adapter.Loader{Python: "/bin/sh", AdapterDir: adapterDir}
	srv := New(Config{Port: 0}, loader, history.NewStore(db))
	return srv, dbPath
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDetect_MissingPathParam(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/api/detect")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDetect_OK(t *testing.T) {
	srv, dbPath := newTestServer(t)

	rec := get(t, srv, "/api/detect?path="+filepath.Dir(dbPath))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp detectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Type != vectordata.TypeFAISS || resp.ResolvedPath != dbPath {
		t.Errorf("response = %+v", resp)
	}
}

func TestDetect_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/api/detect?path=/no/such/path")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestLoad_OK(t *testing.T) {
	srv, dbPath := newTestServer(t)

	rec := get(t, srv, "/api/load?path="+dbPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var data vectordata.VectorData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Count != 1 || len(data.Vectors) != 1 || data.Vectors[0].Text != "hello" {
		t.Errorf("payload = %+v", data)
	}
}

func TestLoad_RecordsHistory(t *testing.T) {
	srv, dbPath := newTestServer(t)

	get(t, srv, "/api/load?path="+dbPath)
	get(t, srv, "/api/load?path=/no/such/path")

	rec := get(t, srv, "/api/recent")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Loads []history.Entry `json:"loads"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Loads) != 2 {
		t.Fatalf("got %d history entries, want 2", len(resp.Loads))
	}

	statuses := map[string]bool{}
	for _, e := range resp.Loads {
		statuses[e.Status] = true
	}
	if !statuses["ok"] || !statuses["error"] {
		t.Errorf("history should hold one ok and one error entry: %+v", resp.Loads)
	}
}

func TestLoad_StrictQueryParam(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake adapters use /bin/sh")
	}

	// The adapter declares count 5 but ships one record.
	adapterDir := t.TempDir()
	bad := `{"type":"faiss","count":5,"dimension":2,"vectors":[{"id":"0","vector":[1,2]}]}`
	script := "#!/bin/sh\ncat <<'EOF'\n" + bad + "\nEOF\n"
	if err := os.WriteFile(filepath.Join(adapterDir, "faiss_adapter.py"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(t.TempDir(), "index.faiss")
	if err := os.WriteFile(dbPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &adapter.Loader{Python: "/bin/sh", AdapterDir: adapterDir}
	srv := New(Config{}, loader, nil)

	if rec := get(t, srv, "/api/load?path="+dbPath); rec.Code != http.StatusOK {
		t.Fatalf("lenient load status = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := get(t, srv, "/api/load?path="+dbPath+"&strict=1"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("strict load status = %d, want 422", rec.Code)
	}
}

func TestLoad_AdapterFailureIsBadGateway(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake adapters use /bin/sh")
	}

	adapterDir := t.TempDir()
	script := "#!/bin/sh\nprintf '{\"error\":\"no module named faiss\"}'\n"
	if err := os.WriteFile(filepath.Join(adapterDir, "faiss_adapter.py"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(t.TempDir(), "index.faiss")
	if err := os.WriteFile(dbPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &adapter.Loader{Python: "/bin/sh", AdapterDir: adapterDir}
	srv := New(Config{}, loader, nil)

	rec := get(t, srv, "/api/load?path="+dbPath)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "no module named faiss") {
		t.Errorf("body should carry the adapter message: %s", rec.Body.String())
	}
}

func TestExport_CSVAttachment(t *testing.T) {
	srv, dbPath := newTestServer(t)

	rec := get(t, srv, "/api/export?path="+dbPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content-type = %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "index.csv") {
		t.Errorf("content-disposition = %s", cd)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("body is not CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want header + 1 record", len(rows))
	}
}

func TestRecent_NilHistory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake adapters use /bin/sh")
	}

	srv := New(Config{}, &adapter.Loader{Python: "/bin/sh"}, nil)

	rec := get(t, srv, "/api/recent")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"loads":[]`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRender_Markdown(t *testing.T) {
	srv, _ := newTestServer(t)

	body := strings.NewReader(`{"text": "# Title\n\nsome **bold** text"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/render", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.HTML, "<h1") || !strings.Contains(resp.HTML, "<strong>") {
		t.Errorf("html = %s", resp.HTML)
	}
}

func TestIndex_ServesDashboard(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<html") {
		t.Errorf("index does not look like HTML")
	}
}
