// Package detect classifies filesystem paths as FAISS or Chroma vector
// databases and resolves the concrete artifact to hand to the adapter.
package detect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vecscope/vecscope/internal/vectordata"
)

// Sentinel errors for classification failures. Messages carry the full
// diagnostic context; use errors.Is to branch on the kind.
var (
	// ErrPathNotFound means the input path does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrDetectionFailed means the path exists but matches neither
	// database type after the bounded search.
	ErrDetectionFailed = errors.New("not a recognized vector database")
)

// faissExtensions are the recognized FAISS index file suffixes (lowercase).
var faissExtensions = map[string]bool{
	".faiss": true,
	".index": true,
}

// ChromaSentinel is the file that marks a directory as a Chroma database.
const ChromaSentinel = "chroma.sqlite3"

// DefaultIndexName is the conventional FAISS index filename inside a
// database directory (the LangChain layout).
const DefaultIndexName = "index.faiss"

// DefaultMaxDepth bounds the recursive search below a directory.
const DefaultMaxDepth = 3

// denylist holds directory names never descended into during search.
var denylist = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	".idea":        true,
	".vscode":      true,
	".tox":         true,
}

// listingLimit caps how many directory entries a failure message shows.
const listingLimit = 10

// Detection is the result of classifying a path: the database type and the
// concrete file (FAISS) or directory (Chroma) to pass to the adapter,
// which may differ from the input when the input was a parent directory.
type Detection struct {
	Type vectordata.DBType
	Path string
}

// Options tune the directory search.
type Options struct {
	// MaxDepth bounds the recursive search. 0 means DefaultMaxDepth.
	MaxDepth int
	// Exclude lists extra glob patterns for directory names to skip,
	// on top of the built-in denylist.
	Exclude []string
}

// Detect classifies the given path with default options.
func Detect(path string) (Detection, error) {
	return DetectWithOptions(path, Options{})
}

// DetectWithOptions classifies the given path.
//
// Files are matched on extension. For directories the Chroma sentinel and
// the default index name are checked directly first; only then does a
// bounded depth-first search run, FAISS extensions before the sentinel.
func DetectWithOptions(path string, opts Options) (Detection, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Detection{}, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return Detection{}, fmt.Errorf("inspecting %s: %w", path, err)
	}

	if !info.IsDir() {
		if isFAISSFile(path) {
			return Detection{Type: vectordata.TypeFAISS, Path: path}, nil
		}
		return Detection{}, fmt.Errorf(
			"%w: %s is a file but has no recognized index extension (.faiss, .index)",
			ErrDetectionFailed, path)
	}

	// Direct hits inside the directory itself.
	if fileExists(filepath.Join(path, ChromaSentinel)) {
		return Detection{Type: vectordata.TypeChroma, Path: path}, nil
	}
	if candidate := filepath.Join(path, DefaultIndexName); fileExists(candidate) {
		return Detection{Type: vectordata.TypeFAISS, Path: candidate}, nil
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	// Bounded search: FAISS files first, then the Chroma sentinel.
	if found := search(path, maxDepth, opts.Exclude, func(p string) bool {
		return isFAISSFile(p)
	}); found != "" {
		return Detection{Type: vectordata.TypeFAISS, Path: found}, nil
	}
	if found := search(path, maxDepth, opts.Exclude, func(p string) bool {
		return filepath.Base(p) == ChromaSentinel
	}); found != "" {
		return Detection{Type: vectordata.TypeChroma, Path: filepath.Dir(found)}, nil
	}

	return Detection{}, fmt.Errorf(
		"%w: %s is a directory without %s, %s, or any nested index within depth %d (contains: %s)",
		ErrDetectionFailed, path, ChromaSentinel, DefaultIndexName, maxDepth, listDir(path))
}

// search walks the tree below root with an explicit worklist, visiting all
// files of a directory before recursing into its subdirectories in listing
// order. It skips denylisted and excluded directories, never follows
// symbolic links, and guards against revisiting the same resolved
// directory. Returns the first path accepted by match, or "".
func search(root string, maxDepth int, exclude []string, match func(string) bool) string {
	type item struct {
		path  string
		depth int
	}

	visited := make(map[string]bool)
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		visited[resolved] = true
	}

	stack := []item{{path: root, depth: 0}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(cur.path)
		if err != nil {
			continue // unreadable directories are not fatal
		}

		var subdirs []string
		for _, entry := range entries {
			name := entry.Name()
			full := filepath.Join(cur.path, name)

			if entry.Type()&os.ModeSymlink != 0 {
				continue
			}
			if entry.IsDir() {
				if !denylist[name] && !matchesExclude(name, exclude) {
					subdirs = append(subdirs, full)
				}
				continue
			}
			if match(full) {
				return full
			}
		}

		if cur.depth+1 > maxDepth {
			continue
		}

		// Push in reverse so the first subdirectory in listing order is
		// searched first (depth-first).
		for i := len(subdirs) - 1; i >= 0; i-- {
			sub := subdirs[i]
			resolved, err := filepath.EvalSymlinks(sub)
			if err != nil {
				continue
			}
			if visited[resolved] {
				continue
			}
			visited[resolved] = true
			stack = append(stack, item{path: sub, depth: cur.depth + 1})
		}
	}

	return ""
}

func isFAISSFile(path string) bool {
	return faissExtensions[strings.ToLower(filepath.Ext(path))]
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// listDir returns a truncated, sorted listing of a directory's immediate
// contents for failure diagnostics.
func listDir(path string) string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "unreadable"
	}
	if len(entries) == 0 {
		return "empty"
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > listingLimit {
		extra := len(names) - listingLimit
		names = append(names[:listingLimit], fmt.Sprintf("... %d more", extra))
	}
	return strings.Join(names, ", ")
}
