package buildtool

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maven.go reconstructs the ~/.m2/repository layout and the classifier
// path conventions (sources/classes/javadoc jars, the sha1 checksum
// sidecar) a Maven installation uses; fetching missing artifacts over the
// network is out of scope, only the path arithmetic is needed here.

// MavenLocalRepoRoot returns the local Maven repository root, honoring
// M2_HOME the way a Maven installation would before falling back to the
// conventional ~/.m2/repository.
func MavenLocalRepoRoot() (string, error) {
	if home := os.Getenv("M2_HOME"); home != "" {
		return filepath.Join(home, "repository"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".m2", "repository"), nil
}

// MavenDependencyDir returns the directory a dependency's artifacts live
// under within repoRoot: <repoRoot>/<group-as-path>/<artifact>/<version>.
func MavenDependencyDir(repoRoot string, dep Dependency) string {
	return filepath.Join(repoRoot, GroupPath(dep.Group), dep.Artifact, dep.Version)
}

// MavenClassifierJarPath returns the path of a classified jar
// (<artifact>-<version>[-<classifier>].jar) within a dependency's
// directory. An empty classifier yields the main artifact jar.
func MavenClassifierJarPath(repoRoot string, dep Dependency, classifier string) string {
	name := fmt.Sprintf("%s-%s", dep.Artifact, dep.Version)
	if classifier != "" {
		name += "-" + classifier
	}
	return filepath.Join(MavenDependencyDir(repoRoot, dep), name+".jar")
}

// MavenClassesJarPath is the main artifact jar for dep.
func MavenClassesJarPath(repoRoot string, dep Dependency) string {
	return MavenClassifierJarPath(repoRoot, dep, "")
}

// MavenSourcesJarPath is the attached sources jar for dep, if the
// repository holds one.
func MavenSourcesJarPath(repoRoot string, dep Dependency) string {
	return MavenClassifierJarPath(repoRoot, dep, "sources")
}

// MavenJavadocJarPath is the attached javadoc jar for dep.
func MavenJavadocJarPath(repoRoot string, dep Dependency) string {
	return MavenClassifierJarPath(repoRoot, dep, "javadoc")
}

// MavenSha1Path is the checksum file Maven writes alongside the main jar.
func MavenSha1Path(repoRoot string, dep Dependency) string {
	return MavenClassesJarPath(repoRoot, dep) + ".sha1"
}

// ParseMavenTreeLine parses one line of `mvn dependency:tree` output into a
// Dependency. Maven prefixes each line with a `[INFO] ` logger tag and an
// ASCII tree-branch drawing (`+- `, `\- `, `|  `) before the colon-joined
// coordinate; this strips both and accepts the two coordinate shapes Maven
// emits: group:artifact:packaging:version[:scope] and, for a dependency
// with a classifier, group:artifact:packaging:classifier:version:scope.
func ParseMavenTreeLine(line string) (Dependency, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "[INFO]"))
	s = strings.TrimLeft(s, " |+\\-")
	if s == "" {
		return Dependency{}, false
	}
	fields := strings.Split(s, ":")
	switch len(fields) {
	case 4:
		// group:artifact:packaging:version (the project's own root coordinate)
		return Dependency{Group: fields[0], Artifact: fields[1], Version: fields[3]}, true
	case 5:
		// group:artifact:packaging:version:scope
		return Dependency{Group: fields[0], Artifact: fields[1], Version: fields[3], Scope: fields[4]}, true
	case 6:
		// group:artifact:packaging:classifier:version:scope
		return Dependency{Group: fields[0], Artifact: fields[1], Version: fields[4], Scope: fields[5]}, true
	default:
		return Dependency{}, false
	}
}
