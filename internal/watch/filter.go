// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultIgnores cover VCS metadata, editor swap files and the build outputs
// the language toolchains write next to generated sources.
var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
	"**/build/**",
	"**/.gradle/**",
	"**/target/**",
	"**/__pycache__/**",
	"**/.deps/**",
}

// filter applies watch and ignore globs to slash-separated relative paths.
type filter struct {
	patterns []string
	ignores  []string
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

// newFilter validates every glob eagerly so a typo fails at construction
// instead of silently never matching.
func newFilter(patterns, ignore []string) (filter, error) {
	if err := validatePatterns(patterns, "watch"); err != nil {
		return filter{}, err
	}
	if err := validatePatterns(ignore, "ignore"); err != nil {
		return filter{}, err
	}
	return filter{
		patterns: slices.Clone(patterns),
		ignores:  slices.Concat(defaultIgnores, ignore),
	}, nil
}

func (f filter) ignored(rel string) bool {
	return matchAny(f.ignores, filepath.ToSlash(rel))
}

// ignoredDir also tries the directory with a trailing slash so "dir/**"
// patterns exclude the directory itself.
func (f filter) ignoredDir(rel string) bool {
	return f.ignored(rel) || f.ignored(rel+"/")
}

func (f filter) matches(rel string) bool {
	if len(f.patterns) == 0 {
		return true
	}
	return matchAny(f.patterns, filepath.ToSlash(rel))
}

func matchAny(patterns []string, path string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, path); err == nil && ok {
			return true
		}
	}
	return false
}

func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if pat == "" || !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q", label, pat)
		}
	}
	return nil
}

// escapeMeta quotes glob metacharacters so a file name matches literally.
func escapeMeta(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`*?[]{}\`, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
