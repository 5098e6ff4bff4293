package buildtool_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/buildtool"
)

func TestMavenLocalRepoRootHonorsM2Home(t *testing.T) {
	t.Setenv("M2_HOME", "/opt/maven-home")
	root, err := buildtool.MavenLocalRepoRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/maven-home", "repository"), root)
}

func TestMavenDependencyDirLayout(t *testing.T) {
	dep := buildtool.Dependency{Group: "org.apache.commons", Artifact: "commons-lang3", Version: "3.14.0"}
	got := buildtool.MavenDependencyDir("/home/u/.m2/repository", dep)
	want := filepath.Join("/home/u/.m2/repository", "org", "apache", "commons", "commons-lang3", "3.14.0")
	assert.Equal(t, want, got)
}

func TestMavenClassesJarPath(t *testing.T) {
	dep := buildtool.Dependency{Group: "junit", Artifact: "junit", Version: "4.13.2"}
	got := buildtool.MavenClassesJarPath("/repo", dep)
	assert.Equal(t, filepath.Join("/repo", "junit", "junit", "4.13.2", "junit-4.13.2.jar"), got)
}

func TestMavenSourcesAndJavadocJarPaths(t *testing.T) {
	dep := buildtool.Dependency{Group: "junit", Artifact: "junit", Version: "4.13.2"}
	assert.Equal(t,
		filepath.Join("/repo", "junit", "junit", "4.13.2", "junit-4.13.2-sources.jar"),
		buildtool.MavenSourcesJarPath("/repo", dep))
	assert.Equal(t,
		filepath.Join("/repo", "junit", "junit", "4.13.2", "junit-4.13.2-javadoc.jar"),
		buildtool.MavenJavadocJarPath("/repo", dep))
}

func TestMavenSha1Path(t *testing.T) {
	dep := buildtool.Dependency{Group: "junit", Artifact: "junit", Version: "4.13.2"}
	got := buildtool.MavenSha1Path("/repo", dep)
	assert.Equal(t, filepath.Join("/repo", "junit", "junit", "4.13.2", "junit-4.13.2.jar.sha1"), got)
}

func TestParseMavenTreeLineWithScope(t *testing.T) {
	dep, ok := buildtool.ParseMavenTreeLine("[INFO] +- junit:junit:jar:4.13.2:test")
	require.True(t, ok)
	assert.Equal(t, buildtool.Dependency{Group: "junit", Artifact: "junit", Version: "4.13.2", Scope: "test"}, dep)
}

func TestParseMavenTreeLineNestedBranch(t *testing.T) {
	dep, ok := buildtool.ParseMavenTreeLine("[INFO] |  \\- org.hamcrest:hamcrest-core:jar:1.3:test")
	require.True(t, ok)
	assert.Equal(t, "org.hamcrest", dep.Group)
	assert.Equal(t, "hamcrest-core", dep.Artifact)
	assert.Equal(t, "1.3", dep.Version)
	assert.Equal(t, "test", dep.Scope)
}

func TestParseMavenTreeLineWithClassifier(t *testing.T) {
	dep, ok := buildtool.ParseMavenTreeLine("[INFO] \\- org.example:thing:jar:linux-x86_64:1.0:compile")
	require.True(t, ok)
	assert.Equal(t, buildtool.Dependency{Group: "org.example", Artifact: "thing", Version: "1.0", Scope: "compile"}, dep)
}

func TestParseMavenTreeLineRootCoordinate(t *testing.T) {
	dep, ok := buildtool.ParseMavenTreeLine("[INFO] com.example:my-app:jar:1.0-SNAPSHOT")
	require.True(t, ok)
	assert.Equal(t, buildtool.Dependency{Group: "com.example", Artifact: "my-app", Version: "1.0-SNAPSHOT"}, dep)
}

func TestParseMavenTreeLineRejectsUnrelatedOutput(t *testing.T) {
	_, ok := buildtool.ParseMavenTreeLine("[INFO] Scanning for projects...")
	assert.False(t, ok)
}

func TestMavenLocalRepoRootDefaultsUnderHome(t *testing.T) {
	t.Setenv("M2_HOME", "")
	root, err := buildtool.MavenLocalRepoRoot()
	require.NoError(t, err)
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".m2", "repository"), root)
}
