// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"

	"github.com/exemd/exemd/pkg/directive"
)

const (
	// GradleFilename is the Gradle build script name.
	GradleFilename = "build.gradle"
	// GoModFilename is the Go module manifest name.
	GoModFilename = "go.mod"
	// CargoFilename is the Cargo manifest name.
	CargoFilename = "Cargo.toml"
	// RequirementsFilename is the pip requirements file name.
	RequirementsFilename = "requirements.txt"

	// GoVersion is the language version declared in generated go.mod files.
	GoVersion = "1.21"

	gradleSkeleton = `apply plugin: 'java'
apply plugin: 'application'

repositories {
    mavenCentral()
}

dependencies {
{{.Dependencies}}
}

{{.EntryPoint}}
`

	goModSkeleton = `module {{.EntryPoint}}

go ` + GoVersion + `
{{if .HasDependencies}}
require (
{{.Dependencies}}
)
{{end}}`

	cargoSkeleton = `[package]
name = "{{.EntryPoint}}"
version = "0.1.0"
edition = "2021"

[[bin]]
name = "{{.EntryPoint}}"
path = "src/{{.Filename}}.rs"

[dependencies]
{{.Dependencies}}
`

	requirementsSkeleton = `{{.Dependencies}}
`
)

// DefaultGradleVocabulary is the reference Java/Gradle keyword table.
var DefaultGradleVocabulary = Vocabulary{
	DependencyVerb:     "compile",
	EntryPointKey:      "mainClassName",
	FallbackEntryPoint: "main",
}

// Gradle returns the Java/Gradle build.gradle template for vocab.
func Gradle(vocab Vocabulary) *Template {
	return newTemplate(GradleFilename, vocab, gradleSkeleton,
		func(v Vocabulary, d directive.Dependency) string {
			return fmt.Sprintf("%s %q", v.DependencyVerb, d.Name+":"+d.Version)
		},
		qualifiedEntryPoint,
	)
}

// GoMod returns the go.mod template. The module path is the snippet name.
func GoMod() *Template {
	vocab := Vocabulary{DependencyVerb: "require", EntryPointKey: "module", FallbackEntryPoint: "main"}
	return newTemplate(GoModFilename, vocab, goModSkeleton,
		func(_ Vocabulary, d directive.Dependency) string {
			return "\t" + d.Name + " " + d.Version
		},
		projectName,
	)
}

// Cargo returns the Cargo.toml template. The package and binary are named
// after the snippet; the binary points at src/<filename>.rs.
func Cargo() *Template {
	vocab := Vocabulary{DependencyVerb: "", EntryPointKey: "name", FallbackEntryPoint: "main"}
	return newTemplate(CargoFilename, vocab, cargoSkeleton,
		func(_ Vocabulary, d directive.Dependency) string {
			return fmt.Sprintf("%s = %q", d.Name, d.Version)
		},
		projectName,
	)
}

// Requirements returns the pip requirements.txt template.
func Requirements() *Template {
	vocab := Vocabulary{DependencyVerb: "==", FallbackEntryPoint: "main"}
	return newTemplate(RequirementsFilename, vocab, requirementsSkeleton,
		func(v Vocabulary, d directive.Dependency) string {
			return d.Name + v.DependencyVerb + d.Version
		},
		projectName,
	)
}
