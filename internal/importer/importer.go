// Package importer resolves `import`/`importstr`/`importbin` paths against
// the real filesystem, implementing internal/eval.Importer. Relative-path
// handling is grounded on gix's Evaluator.resolvePath
// (_examples/conneroisu-gix/pkg/eval/evaluator.go): absolute paths pass
// through unchanged, relative ones are joined against a base directory —
// generalized here from gix's single fixed baseDir to spec.md §6's
// "importer's directory, then each search path in order, first hit wins".
package importer

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileResolver reads import contents from disk. SearchPaths are tried, in
// order, after the importing file's own directory; the first candidate
// that exists wins, matching the `-J/--jpath` flag's documented semantics.
type FileResolver struct {
	SearchPaths []string
}

// NewFileResolver builds a resolver with the given search path list
// (typically collected from repeated `-J` flags, in the order given).
func NewFileResolver(searchPaths ...string) *FileResolver {
	return &FileResolver{SearchPaths: searchPaths}
}

// Resolve implements internal/eval.Importer. canonical is the cleaned
// absolute path of whichever candidate was found, used as the cache key
// so re-importing the same file by two different relative spellings still
// shares one evaluated Thunk.
func (r *FileResolver) Resolve(fromFile, path string) (contents, canonical string, err error) {
	for _, candidate := range r.candidates(fromFile, path) {
		data, readErr := os.ReadFile(candidate)
		if readErr != nil {
			if os.IsNotExist(readErr) {
				continue
			}

			return "", "", readErr
		}

		abs, absErr := filepath.Abs(candidate)
		if absErr != nil {
			abs = candidate
		}

		return string(data), filepath.Clean(abs), nil
	}

	return "", "", fmt.Errorf("couldn't open import %q: no match locally or in search paths", path)
}

// candidates lists, in try order, every path Resolve should attempt: the
// importer's own directory first (empty fromFile, e.g. from a REPL
// one-liner, resolves against the process's working directory), then each
// configured search path, unless path is already absolute.
func (r *FileResolver) candidates(fromFile, path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}

	out := make([]string, 0, 1+len(r.SearchPaths))
	out = append(out, filepath.Join(filepath.Dir(fromFile), path))

	for _, sp := range r.SearchPaths {
		out = append(out, filepath.Join(sp, path))
	}

	return out
}
