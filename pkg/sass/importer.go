package sass

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-sass/sass/internal/env"
)

// fileImporter is the default Importer (spec §6.1's filesystem resolution
// for compile_file, and the --load-path CLI flag): it resolves a @use/
// @forward/@import target against the requesting file's directory, then
// each configured load path in order, trying the partial-file and
// extension rules Sass defines. Its two-step shape (loadAsFile then
// loadAsIndex) mirrors the teacher's own resolver
// (evanw-esbuild/internal/resolver/resolver.go's loadAsFile/loadAsIndex),
// scaled down to the handful of rules Sass's loader actually needs.
type fileImporter struct {
	loadPaths []string
}

// NewFileImporter builds the default load-path filesystem Importer.
func NewFileImporter(loadPaths []string) env.Importer {
	return &fileImporter{loadPaths: loadPaths}
}

var extensionOrder = []string{".scss", ".sass", ".css"}

func (f *fileImporter) Canonicalize(url, containingURL string) (string, bool) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return "", false
	}
	dirs := f.searchDirs(containingURL)
	for _, dir := range dirs {
		if resolved, ok := resolveInDir(dir, url); ok {
			return resolved, true
		}
	}
	return "", false
}

func (f *fileImporter) Load(canonicalURL string) (env.LoadResult, error) {
	contents, err := os.ReadFile(canonicalURL)
	if err != nil {
		return env.LoadResult{}, fmt.Errorf("sass: could not read %q: %w", canonicalURL, err)
	}
	return env.LoadResult{Contents: string(contents), Syntax: syntaxForExt(canonicalURL)}, nil
}

func (f *fileImporter) searchDirs(containingURL string) []string {
	dirs := make([]string, 0, len(f.loadPaths)+1)
	if containingURL != "" {
		dirs = append(dirs, filepath.Dir(containingURL))
	}
	dirs = append(dirs, f.loadPaths...)
	return dirs
}

// resolveInDir applies Sass's file-loading rules for one candidate
// directory: an explicit extension is tried as-is and as a partial; an
// extensionless request tries every extension in extensionOrder, each as
// a plain file and as a partial, then falls back to an _index file inside
// a same-named directory.
func resolveInDir(dir, url string) (string, bool) {
	base := filepath.Join(dir, filepath.FromSlash(url))
	if ext := path.Ext(url); ext == ".scss" || ext == ".sass" || ext == ".css" {
		if p, ok := tryFileAndPartial(base); ok {
			return p, true
		}
		return "", false
	}
	for _, ext := range extensionOrder {
		if p, ok := tryFileAndPartial(base + ext); ok {
			return p, true
		}
	}
	return loadAsIndex(base)
}

func tryFileAndPartial(full string) (string, bool) {
	if fileExists(full) {
		return full, true
	}
	dir, name := filepath.Split(full)
	partial := filepath.Join(dir, "_"+name)
	if fileExists(partial) {
		return partial, true
	}
	return "", false
}

func loadAsIndex(dir string) (string, bool) {
	for _, ext := range extensionOrder {
		candidate := filepath.Join(dir, "_index"+ext)
		if fileExists(candidate) {
			return candidate, true
		}
		candidate = filepath.Join(dir, "index"+ext)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
