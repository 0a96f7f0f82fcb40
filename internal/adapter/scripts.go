package adapter

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vecscope/vecscope/internal/vectordata"
)

//go:embed scripts/faiss_adapter.py scripts/chroma_adapter.py
var embeddedScripts embed.FS

// scriptNames maps a database type to its adapter script filename.
var scriptNames = map[vectordata.DBType]string{
	vectordata.TypeFAISS:  "faiss_adapter.py",
	vectordata.TypeChroma: "chroma_adapter.py",
}

// resolveScript returns the on-disk path of the adapter for the given type.
//
// With an explicit adapter directory the script must already exist there;
// users point this at patched copies. Otherwise the embedded script is
// materialized under the user cache dir, rewritten whenever the embedded
// content changes (e.g. after an upgrade).
func resolveScript(dbType vectordata.DBType, adapterDir string) (string, error) {
	name, ok := scriptNames[dbType]
	if !ok {
		return "", fmt.Errorf("no adapter for database type %q", dbType)
	}

	if adapterDir != "" {
		path := filepath.Join(adapterDir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: %s", ErrAdapterMissing, path)
			}
			return "", fmt.Errorf("inspecting adapter %s: %w", path, err)
		}
		return path, nil
	}

	embedded, err := embeddedScripts.ReadFile("scripts/" + name)
	if err != nil {
		return "", fmt.Errorf("%w: embedded %s", ErrAdapterMissing, name)
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	dir := filepath.Join(cacheDir, "vecscope", "adapters")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating adapter cache dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, embedded) {
		return path, nil
	}
	if err := os.WriteFile(path, embedded, 0o644); err != nil {
		return "", fmt.Errorf("materializing adapter %s: %w", path, err)
	}
	return path, nil
}
