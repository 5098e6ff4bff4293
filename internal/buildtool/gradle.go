package buildtool

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// This follows Gradle's published module cache convention directly: unlike
// Maven's flat <group>/<artifact>/<version> directory, Gradle interposes a
// content-hash directory between a dependency's version and its jar
// (modules-2/files-2.1/<group>/<artifact>/<version>/<hash>/<artifact>-
// <version>.jar), so the jar's exact path can't be built from the triple
// alone and is located with a glob instead.

// GradleCacheRoot returns the Gradle module cache root, honoring
// GRADLE_USER_HOME before falling back to the conventional ~/.gradle.
func GradleCacheRoot() (string, error) {
	if home := os.Getenv("GRADLE_USER_HOME"); home != "" {
		return filepath.Join(home, "caches", "modules-2", "files-2.1"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gradle", "caches", "modules-2", "files-2.1"), nil
}

// GradleDependencyDir returns the directory a dependency's hash-named jar
// subdirectories live under: <cacheRoot>/<group>/<artifact>/<version>.
// Gradle does not dot-split the group segment the way Maven does.
func GradleDependencyDir(cacheRoot string, dep Dependency) string {
	return filepath.Join(cacheRoot, dep.Group, dep.Artifact, dep.Version)
}

// GradleFindJar locates dep's main jar under cacheRoot by globbing past
// the content-hash directory Gradle interposes before the jar file.
// Returns false if no matching jar is present in the cache.
func GradleFindJar(cacheRoot string, dep Dependency) (string, bool) {
	depDir := GradleDependencyDir(cacheRoot, dep)
	want := dep.Artifact + "-" + dep.Version + ".jar"

	rel, err := filepath.Rel(cacheRoot, depDir)
	if err != nil {
		return "", false
	}
	pattern := filepath.ToSlash(filepath.Join(rel, "*", want))
	matches, err := doublestar.Glob(os.DirFS(cacheRoot), pattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return filepath.Join(cacheRoot, matches[0]), true
}

// ParseGradleDependencyLine parses one line of `gradle dependencies` (or
// `gradlew dependencies`) output into a Dependency. Gradle draws the same
// kind of ASCII tree Maven does (`+--- `, `\--- `, `|    `) around a
// group:artifact:version coordinate, and rewrites a requested version to
// its resolved one with ` -> `, e.g. `org.slf4j:slf4j-api:1.7.30 -> 1.7.36`;
// the resolved version wins. A trailing `(*)` (Gradle's marker for "already
// printed elsewhere in the tree") is stripped.
func ParseGradleDependencyLine(line string) (Dependency, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, " |\\+-")
	s = strings.TrimSuffix(strings.TrimSpace(s), "(*)")
	s = strings.TrimSpace(s)
	if s == "" {
		return Dependency{}, false
	}

	if idx := strings.Index(s, " -> "); idx != -1 {
		resolved := strings.TrimSpace(s[idx+len(" -> "):])
		coord := s[:idx]
		fields := strings.Split(coord, ":")
		if len(fields) < 2 {
			return Dependency{}, false
		}
		return Dependency{Group: fields[0], Artifact: fields[1], Version: resolved}, true
	}

	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return Dependency{}, false
	}
	return Dependency{Group: fields[0], Artifact: fields[1], Version: fields[2]}, true
}
