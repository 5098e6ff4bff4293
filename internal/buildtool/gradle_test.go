package buildtool_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/buildtool"
)

func TestGradleCacheRootHonorsGradleUserHome(t *testing.T) {
	t.Setenv("GRADLE_USER_HOME", "/opt/gradle-home")
	root, err := buildtool.GradleCacheRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/gradle-home", "caches", "modules-2", "files-2.1"), root)
}

func TestGradleDependencyDirLayout(t *testing.T) {
	dep := buildtool.Dependency{Group: "com.google.guava", Artifact: "guava", Version: "31.1-jre"}
	got := buildtool.GradleDependencyDir("/cache", dep)
	assert.Equal(t, filepath.Join("/cache", "com.google.guava", "guava", "31.1-jre"), got)
}

func TestGradleFindJarLocatesThroughHashDir(t *testing.T) {
	cacheRoot := t.TempDir()
	dep := buildtool.Dependency{Group: "junit", Artifact: "junit", Version: "4.13.2"}
	hashDir := filepath.Join(buildtool.GradleDependencyDir(cacheRoot, dep), "abc123hash")
	require.NoError(t, os.MkdirAll(hashDir, 0o755))
	jarPath := filepath.Join(hashDir, "junit-4.13.2.jar")
	require.NoError(t, os.WriteFile(jarPath, []byte("jar"), 0o644))

	got, ok := buildtool.GradleFindJar(cacheRoot, dep)
	require.True(t, ok)
	assert.Equal(t, jarPath, got)
}

func TestGradleFindJarMissingReturnsFalse(t *testing.T) {
	cacheRoot := t.TempDir()
	dep := buildtool.Dependency{Group: "junit", Artifact: "junit", Version: "4.13.2"}
	_, ok := buildtool.GradleFindJar(cacheRoot, dep)
	assert.False(t, ok)
}

func TestParseGradleDependencyLineSimple(t *testing.T) {
	dep, ok := buildtool.ParseGradleDependencyLine("+--- junit:junit:4.13.2")
	require.True(t, ok)
	assert.Equal(t, buildtool.Dependency{Group: "junit", Artifact: "junit", Version: "4.13.2"}, dep)
}

func TestParseGradleDependencyLineResolvedVersion(t *testing.T) {
	dep, ok := buildtool.ParseGradleDependencyLine("|    \\--- org.slf4j:slf4j-api:1.7.30 -> 1.7.36")
	require.True(t, ok)
	assert.Equal(t, buildtool.Dependency{Group: "org.slf4j", Artifact: "slf4j-api", Version: "1.7.36"}, dep)
}

func TestParseGradleDependencyLineAlreadyPrintedMarker(t *testing.T) {
	dep, ok := buildtool.ParseGradleDependencyLine("\\--- com.google.guava:guava:31.1-jre (*)")
	require.True(t, ok)
	assert.Equal(t, buildtool.Dependency{Group: "com.google.guava", Artifact: "guava", Version: "31.1-jre"}, dep)
}

func TestParseGradleDependencyLineRejectsUnrelatedOutput(t *testing.T) {
	_, ok := buildtool.ParseGradleDependencyLine("compileClasspath - Compile classpath for source set 'main'.")
	assert.False(t, ok)
}
