package archive_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/archive"
	"github.com/oxhq/javalsp/internal/class"
)

func u2(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u4(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func utf8Entry(s string) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(1) // tagUtf8
	buf.Write(u2(uint16(len(s))))
	buf.WriteString(s)
	return buf.Bytes()
}

func classEntry(nameIndex uint16) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(7) // tagClass
	buf.Write(u2(nameIndex))
	return buf.Bytes()
}

// buildClassBytes assembles a minimal, valid, public, no-member class file
// for internalName (slash-separated, no trailing ".class").
func buildClassBytes(internalName string) []byte {
	var pool [][]byte
	add := func(e []byte) uint16 {
		pool = append(pool, e)
		return uint16(len(pool))
	}
	nameIdx := add(utf8Entry(internalName))
	thisClass := add(classEntry(nameIdx))
	objIdx := add(utf8Entry("java/lang/Object"))
	superClass := add(classEntry(objIdx))

	buf := new(bytes.Buffer)
	buf.Write(u4(0xCAFEBABE))
	buf.Write(u2(0))
	buf.Write(u2(52))
	buf.Write(u2(uint16(len(pool) + 1)))
	for _, e := range pool {
		buf.Write(e)
	}
	buf.Write(u2(0x0001)) // access: public
	buf.Write(u2(thisClass))
	buf.Write(u2(superClass))
	buf.Write(u2(0)) // interfaces_count
	buf.Write(u2(0)) // fields_count
	buf.Write(u2(0)) // methods_count
	buf.Write(u2(0)) // class attributes_count
	return buf.Bytes()
}

func buildJar(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestLoadLibraryArchive(t *testing.T) {
	data := buildJar(t, map[string][]byte{
		"com/example/Foo.class": buildClassBytes("com/example/Foo"),
		"com/example/README":    []byte("not a class"),
	})
	folder, warnings := archive.Load(data, archive.KindLibrary, class.Source{})
	assert.Empty(t, warnings)
	require.Len(t, folder.Classes, 1)
	assert.Equal(t, "com.example.Foo", folder.Classes[0].ClassPath)
}

func TestLoadModuleArchiveFiltersNonExported(t *testing.T) {
	moduleInfoData := buildModuleInfoBytes([]string{"java/lang"})
	jarData := buildJar(t, map[string][]byte{
		"classes/java.base/module-info.class":        moduleInfoData,
		"classes/java.base/java/lang/Object.class":    buildClassBytes("java/lang/Object"),
		"classes/java.base/java/internal/Secret.class": buildClassBytes("java/internal/Secret"),
	})
	// jmod files carry a 4-byte marker before the zip payload.
	prefixed := append([]byte{0x4A, 0x4D, 1, 0}, jarData...)

	folder, _ := archive.Load(prefixed, archive.KindModule, class.Source{})
	var paths []string
	for _, c := range folder.Classes {
		paths = append(paths, c.ClassPath)
	}
	assert.Contains(t, paths, "java.lang.Object")
	assert.NotContains(t, paths, "java.internal.Secret")
}

// buildModuleInfoBytes assembles a class file carrying only a Module
// attribute whose exports list is exactly the given unqualified packages.
func buildModuleInfoBytes(exports []string) []byte {
	var pool [][]byte
	add := func(e []byte) uint16 {
		pool = append(pool, e)
		return uint16(len(pool))
	}
	moduleNameIdx := add(utf8Entry("module-info"))
	thisClass := add(classEntry(moduleNameIdx))
	attrNameIdx := add(utf8Entry("Module"))
	exportIdx := make([]uint16, len(exports))
	for i, e := range exports {
		exportIdx[i] = add(utf8Entry(e))
	}

	attrInfo := new(bytes.Buffer)
	attrInfo.Write(u2(0)) // module_name_index (unused by our reader)
	attrInfo.Write(u2(0)) // module_flags
	attrInfo.Write(u2(0)) // module_version_index
	attrInfo.Write(u2(0)) // requires_count
	attrInfo.Write(u2(uint16(len(exports))))
	for _, idx := range exportIdx {
		attrInfo.Write(u2(idx))
		attrInfo.Write(u2(0)) // exports_flags
		attrInfo.Write(u2(0)) // exports_to_count
	}

	buf := new(bytes.Buffer)
	buf.Write(u4(0xCAFEBABE))
	buf.Write(u2(0))
	buf.Write(u2(53))
	buf.Write(u2(uint16(len(pool) + 1)))
	for _, e := range pool {
		buf.Write(e)
	}
	buf.Write(u2(0x8000)) // access: module
	buf.Write(u2(thisClass))
	buf.Write(u2(0)) // super_class
	buf.Write(u2(0)) // interfaces_count
	buf.Write(u2(0)) // fields_count
	buf.Write(u2(0)) // methods_count
	buf.Write(u2(1)) // class attributes_count
	buf.Write(u2(attrNameIdx))
	buf.Write(u4(uint32(attrInfo.Len())))
	buf.Write(attrInfo.Bytes())
	return buf.Bytes()
}

func TestDiscoverSourcesHonorsIgnoreGlobs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "main"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "build", "generated"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main", "Foo.java"), []byte("class Foo {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "build", "generated", "Gen.java"), []byte("class Gen {}"), 0o644))

	paths, err := archive.DiscoverSources(context.Background(), root, []string{"build/**"})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Contains(t, paths[0], "Foo.java")
}
