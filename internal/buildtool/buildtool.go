// Package buildtool reconstructs local-repository paths for the two
// build-descriptor families in scope: Maven's pom.xml and Gradle's
// build.gradle / build.gradle.kts. Invoking the build-tool executable
// itself and unpacking the archives it resolves remain external
// collaborators; this package only detects which family a project uses
// and turns a dependency triple into the on-disk path the family's local
// cache would hold it at.
package buildtool

import (
	"os"
	"path/filepath"
	"strings"
)

// Family identifies which build tool owns a project directory.
type Family int

const (
	// Unknown means neither a pom.xml nor a build.gradle(.kts) marker was found.
	Unknown Family = iota
	Maven
	Gradle
)

func (f Family) String() string {
	switch f {
	case Maven:
		return "maven"
	case Gradle:
		return "gradle"
	default:
		return "unknown"
	}
}

// Dependency is a resolved (group, artifact, version, scope) triple, the
// common shape both Maven's dependency:tree output and Gradle's
// dependencies task output reduce to.
type Dependency struct {
	Group    string
	Artifact string
	Version  string
	Scope    string
}

// DetectFamily inspects projectDir for the marker file each build tool
// plants at its project root and reports which family owns it.
func DetectFamily(projectDir string) Family {
	if fileExists(filepath.Join(projectDir, "pom.xml")) {
		return Maven
	}
	if fileExists(filepath.Join(projectDir, "build.gradle")) ||
		fileExists(filepath.Join(projectDir, "build.gradle.kts")) {
		return Gradle
	}
	return Unknown
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GroupPath turns a dotted Maven/Gradle group id into the directory path
// segment both local repository layouts use in place of the dots.
func GroupPath(group string) string {
	parts := strings.Split(group, ".")
	return filepath.Join(parts...)
}
