package detect

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/vecscope/vecscope/internal/vectordata"
)

// writeFile creates an empty file at the given path, creating parents.
func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDetect_FAISSFileByExtension(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"index.faiss", "embeddings.index", "UPPER.FAISS"} {
		path := filepath.Join(dir, name)
		writeFile(t, path)

		det, err := Detect(path)
		if err != nil {
			t.Fatalf("Detect(%s) error: %v", name, err)
		}
		if det.Type != vectordata.TypeFAISS {
			t.Errorf("Detect(%s) type = %s, want faiss", name, det.Type)
		}
		if det.Path != path {
			t.Errorf("Detect(%s) resolved = %s, want input path", name, det.Path)
		}
	}
}

func TestDetect_FileWithUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")
	writeFile(t, path)

	_, err := Detect(path)
	if !errors.Is(err, ErrDetectionFailed) {
		t.Fatalf("expected ErrDetectionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the input path: %v", err)
	}
	if !strings.Contains(err.Error(), "file") {
		t.Errorf("error should say the input was a file: %v", err)
	}
}

func TestDetect_ChromaSentinelDirectly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ChromaSentinel))

	det, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if det.Type != vectordata.TypeChroma {
		t.Errorf("type = %s, want chroma", det.Type)
	}
	if det.Path != dir {
		t.Errorf("resolved = %s, want the directory itself", det.Path)
	}
}

func TestDetect_DefaultIndexNameDirectly(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, DefaultIndexName)
	writeFile(t, indexPath)

	det, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if det.Type != vectordata.TypeFAISS {
		t.Errorf("type = %s, want faiss", det.Type)
	}
	if det.Path != indexPath {
		t.Errorf("resolved = %s, want %s", det.Path, indexPath)
	}
}

func TestDetect_SentinelWinsOverNestedIndex(t *testing.T) {
	// The sentinel directly inside the directory beats any nested search.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ChromaSentinel))
	writeFile(t, filepath.Join(dir, "sub", "vectors.faiss"))

	det, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if det.Type != vectordata.TypeChroma {
		t.Errorf("type = %s, want chroma", det.Type)
	}
}

func TestDetect_NestedFAISSWithinDepth(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "store.faiss")
	writeFile(t, nested)

	det, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if det.Type != vectordata.TypeFAISS {
		t.Errorf("type = %s, want faiss", det.Type)
	}
	if det.Path != nested {
		t.Errorf("resolved = %s, want %s", det.Path, nested)
	}
}

func TestDetect_NestedBeyondDepthFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "b", "c", "d", "store.faiss"))

	_, err := Detect(dir)
	if !errors.Is(err, ErrDetectionFailed) {
		t.Fatalf("expected ErrDetectionFailed beyond max depth, got %v", err)
	}
}

func TestDetect_NestedChromaResolvesContainingDir(t *testing.T) {
	dir := t.TempDir()
	chromaDir := filepath.Join(dir, "stores", "chroma_db")
	writeFile(t, filepath.Join(chromaDir, ChromaSentinel))

	det, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if det.Type != vectordata.TypeChroma {
		t.Errorf("type = %s, want chroma", det.Type)
	}
	if det.Path != chromaDir {
		t.Errorf("resolved = %s, want %s", det.Path, chromaDir)
	}
}

func TestDetect_FAISSSearchRunsBeforeChromaSearch(t *testing.T) {
	// Both exist nested; the FAISS pass completes first.
	dir := t.TempDir()
	faissPath := filepath.Join(dir, "zz", "store.faiss")
	writeFile(t, faissPath)
	writeFile(t, filepath.Join(dir, "aa", ChromaSentinel))

	det, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if det.Type != vectordata.TypeFAISS {
		t.Errorf("type = %s, want faiss (FAISS search runs first)", det.Type)
	}
	if det.Path != faissPath {
		t.Errorf("resolved = %s, want %s", det.Path, faissPath)
	}
}

func TestDetect_DenylistedDirsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".git", "store.faiss"))
	writeFile(t, filepath.Join(dir, "node_modules", "store.index"))

	_, err := Detect(dir)
	if !errors.Is(err, ErrDetectionFailed) {
		t.Fatalf("expected denylisted directories to be ignored, got %v", err)
	}
}

func TestDetect_ExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "backup-2024", "store.faiss"))

	_, err := DetectWithOptions(dir, Options{Exclude: []string{"backup-*"}})
	if !errors.Is(err, ErrDetectionFailed) {
		t.Fatalf("expected excluded directory to be ignored, got %v", err)
	}

	det, err := Detect(dir)
	if err != nil {
		t.Fatalf("without excludes Detect() error: %v", err)
	}
	if det.Type != vectordata.TypeFAISS {
		t.Errorf("type = %s, want faiss", det.Type)
	}
}

func TestDetect_SymlinkLoopDoesNotHang(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	// sub/loop -> dir creates a cycle if links were followed.
	if err := os.Symlink(dir, filepath.Join(sub, "loop")); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	_, err := Detect(dir)
	if !errors.Is(err, ErrDetectionFailed) {
		t.Fatalf("expected clean failure on empty looped tree, got %v", err)
	}
}

func TestDetect_PathNotFound(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound, got %v", err)
	}
}

func TestDetect_FailureListsDirectoryContents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.txt"))
	writeFile(t, filepath.Join(dir, "data.bin"))

	_, err := Detect(dir)
	if !errors.Is(err, ErrDetectionFailed) {
		t.Fatalf("expected ErrDetectionFailed, got %v", err)
	}
	for _, want := range []string{"readme.txt", "data.bin", dir} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q: %v", want, err)
		}
	}
}

func TestDetect_FailureListingIsTruncated(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 25; i++ {
		writeFile(t, filepath.Join(dir, strings.Repeat("f", 3)+string(rune('a'+i))+".txt"))
	}

	_, err := Detect(dir)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "more") {
		t.Errorf("long listings should be truncated with a 'more' marker: %v", err)
	}
}
