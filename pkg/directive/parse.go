// SPDX-License-Identifier: MPL-2.0

package directive

import (
	"bufio"
	"strings"
)

// Parse extracts the Descriptor from the leading comment block of source.
// Malformed directives are skipped silently; use ParseWithDiagnostics to see them.
func Parse(source string) Descriptor {
	desc, _ := ParseWithDiagnostics(source)
	return desc
}

// ParseWithDiagnostics is Parse that also returns one error per directive that
// was skipped. The returned errors never mean the parse failed.
func ParseWithDiagnostics(source string) (Descriptor, []error) {
	var (
		desc  Descriptor
		diags []error
	)

	scanner := bufio.NewScanner(strings.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		body, ok := stripComment(line)
		if !ok {
			break
		}

		key, value, ok := splitDirective(body)
		if !ok {
			continue
		}

		switch key {
		case KeyName:
			desc.Name = value
		case KeyFilename:
			desc.Filename = value
		case KeyDeps:
			dep, err := parseDependency(lineNo, value)
			if err != nil {
				diags = append(diags, err)
				continue
			}
			desc.Dependencies = append(desc.Dependencies, dep)
		default:
			diags = append(diags, &UnknownDirectiveError{Line: lineNo, Key: key})
		}
	}

	return desc, diags
}

// stripComment returns the text after a leading comment marker.
func stripComment(line string) (string, bool) {
	for _, marker := range commentMarkers {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// splitDirective splits "exemd-<key>: <value>". It reports false for comment
// text that is not a directive at all.
func splitDirective(body string) (Key, string, bool) {
	rest, ok := strings.CutPrefix(body, Prefix)
	if !ok {
		return "", "", false
	}
	key, value, ok := strings.Cut(rest, ":")
	if !ok || key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return Key(key), strings.TrimSpace(value), true
}

// parseDependency splits "<coordinate>;version=<version>[;attr=value...]".
// The structural separator is split first, then the version attribute is
// looked up among the remaining attributes.
func parseDependency(lineNo int, value string) (Dependency, error) {
	malformed := func(reason string) error {
		return &MalformedDirectiveError{Line: lineNo, Key: KeyDeps, Value: value, Reason: reason}
	}

	coordinate, attrs, ok := strings.Cut(value, attrSeparator)
	if !ok {
		return Dependency{}, malformed("missing \";version=\" attribute")
	}
	coordinate = strings.TrimSpace(coordinate)
	if coordinate == "" {
		return Dependency{}, malformed("empty coordinate")
	}

	for attr := range strings.SplitSeq(attrs, attrSeparator) {
		k, v, found := strings.Cut(attr, "=")
		if !found || strings.TrimSpace(k) != versionAttr {
			continue
		}
		version := strings.TrimSpace(v)
		if version == "" {
			return Dependency{}, malformed("empty version")
		}
		return Dependency{Name: coordinate, Version: version}, nil
	}

	return Dependency{}, malformed("missing \"version\" attribute")
}
