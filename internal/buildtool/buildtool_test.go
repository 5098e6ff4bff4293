package buildtool_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/buildtool"
)

func TestDetectFamilyMaven(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pom.xml"), []byte("<project/>"), 0o644))
	assert.Equal(t, buildtool.Maven, buildtool.DetectFamily(dir))
}

func TestDetectFamilyGradleGroovy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle"), []byte(""), 0o644))
	assert.Equal(t, buildtool.Gradle, buildtool.DetectFamily(dir))
}

func TestDetectFamilyGradleKotlin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle.kts"), []byte(""), 0o644))
	assert.Equal(t, buildtool.Gradle, buildtool.DetectFamily(dir))
}

func TestDetectFamilyUnknown(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, buildtool.Unknown, buildtool.DetectFamily(dir))
}

func TestGroupPath(t *testing.T) {
	assert.Equal(t, filepath.Join("org", "apache", "commons"), buildtool.GroupPath("org.apache.commons"))
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "maven", buildtool.Maven.String())
	assert.Equal(t, "gradle", buildtool.Gradle.String())
	assert.Equal(t, "unknown", buildtool.Unknown.String())
}
