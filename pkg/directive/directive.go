// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"errors"
	"fmt"
)

const (
	// Prefix marks a comment line as an exemd directive.
	Prefix = "exemd-"

	// KeyName sets the logical package or namespace of the snippet.
	KeyName Key = "name"
	// KeyFilename sets the base name of the emitted source file.
	KeyFilename Key = "filename"
	// KeyDeps declares a single third-party dependency. It may repeat.
	KeyDeps Key = "deps"

	// DefaultFilename is used when no filename directive is present.
	DefaultFilename = "main"

	// versionAttr is the attribute carrying the version inside a deps value.
	versionAttr = "version"
	// attrSeparator separates the coordinate from its attributes.
	attrSeparator = ";"
)

var (
	// ErrMalformedDirective is the sentinel error wrapped by MalformedDirectiveError.
	ErrMalformedDirective = errors.New("malformed directive")
	// ErrUnknownDirective is returned for exemd-prefixed keys this parser does not know.
	ErrUnknownDirective = errors.New("unknown directive")

	// commentMarkers are the line comment tokens recognized at the start of a line.
	// Longer markers come first so "//" is never shadowed by a shorter token.
	commentMarkers = []string{"//", "--", "#"}
)

type (
	// Key identifies a directive (the part between the prefix and the colon).
	Key string

	// Dependency is a declared third-party library. Both fields are opaque tokens.
	Dependency struct {
		// Name is the package coordinate without the version (e.g., "group:artifact").
		Name string
		// Version is passed through to the build tool unvalidated.
		Version string
	}

	// Descriptor is the structured metadata of one snippet.
	Descriptor struct {
		// Name is the package/namespace. Empty means the default (unnamed) package.
		Name string
		// Filename is the source file base name. Empty means DefaultFilename;
		// see EntryFilename.
		Filename string
		// Dependencies keeps declaration order; duplicates are preserved.
		Dependencies []Dependency
	}

	// MalformedDirectiveError reports a directive line that could not be applied.
	// It wraps ErrMalformedDirective for errors.Is() compatibility.
	MalformedDirectiveError struct {
		// Line is the 1-based line number of the directive.
		Line int
		// Key is the directive key.
		Key Key
		// Value is the raw directive value.
		Value string
		// Reason describes what is wrong with the value.
		Reason string
	}

	// UnknownDirectiveError reports an exemd-prefixed key that is not recognized.
	UnknownDirectiveError struct {
		Line int
		Key  Key
	}
)

// String returns the dependency in build-tool coordinate form ("name:version").
func (d Dependency) String() string {
	return d.Name + ":" + d.Version
}

// IsNamed reports whether the snippet declared a package name.
func (d Descriptor) IsNamed() bool {
	return d.Name != ""
}

// EntryFilename returns the declared filename or DefaultFilename.
func (d Descriptor) EntryFilename() string {
	if d.Filename == "" {
		return DefaultFilename
	}
	return d.Filename
}

// HasDependencies reports whether at least one dependency was declared.
func (d Descriptor) HasDependencies() bool {
	return len(d.Dependencies) > 0
}

// Error implements the error interface.
func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("line %d: malformed %s%s directive %q: %s", e.Line, Prefix, e.Key, e.Value, e.Reason)
}

// Unwrap returns ErrMalformedDirective so callers can use errors.Is for programmatic detection.
func (e *MalformedDirectiveError) Unwrap() error { return ErrMalformedDirective }

// Error implements the error interface.
func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("line %d: unknown directive %s%s", e.Line, Prefix, e.Key)
}

// Unwrap returns ErrUnknownDirective so callers can use errors.Is for programmatic detection.
func (e *UnknownDirectiveError) Unwrap() error { return ErrUnknownDirective }
