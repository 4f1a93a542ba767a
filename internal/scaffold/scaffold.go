// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/exemd/exemd/internal/issue"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// ErrEmptyBaseDir is returned when a Scaffolder has no base directory.
var ErrEmptyBaseDir = errors.New("scaffold: base directory is empty")

// Scaffolder derives project roots under BaseDir and writes project files.
// It holds no mutable state and is safe to share.
type Scaffolder struct {
	baseDir string
}

// New returns a Scaffolder rooted at baseDir.
func New(baseDir string) *Scaffolder {
	return &Scaffolder{baseDir: baseDir}
}

// BaseDir returns the base output directory.
func (s *Scaffolder) BaseDir() string {
	return s.baseDir
}

// RootDir derives the project root for lang and project without touching disk.
func (s *Scaffolder) RootDir(lang, project string) string {
	if project == "" {
		return filepath.Join(s.baseDir, lang)
	}
	return filepath.Join(s.baseDir, lang, project)
}

// CreateLayout creates the project root for lang and project together with the
// optional nested subpath (e.g. "src", "main", "java", "<project>") and returns
// the root. Existing directories are left in place.
func (s *Scaffolder) CreateLayout(lang, project string, subpath ...string) (string, error) {
	if s.baseDir == "" {
		return "", ErrEmptyBaseDir
	}

	root := s.RootDir(lang, project)
	dir := filepath.Join(append([]string{root}, subpath...)...)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("create project layout").
			WithResource(dir).
			WithSuggestion("Check that the output directory is writable").
			WithSuggestion("Set a different output directory with --out-dir or output_dir in the config").
			Wrap(err).
			BuildError()
	}

	return root, nil
}

// WriteFile writes content to path, replacing any existing file, and returns
// the path written. Missing parent directories are created.
func (s *Scaffolder) WriteFile(content, path string) (string, error) {
	return WriteFile(content, path)
}

// WriteFile is the Scaffolder-independent form of (*Scaffolder).WriteFile.
func WriteFile(content, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", issue.WrapWithContext(err, "create parent directory", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("write file").
			WithResource(path).
			WithSuggestion("Check file permissions and free disk space").
			Wrap(err).
			BuildError()
	}
	return path, nil
}
