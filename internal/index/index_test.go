package index_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/index"
)

func TestClassMapPutGet(t *testing.T) {
	m := index.NewClassMap()
	m.Put(class.Class{ClassPath: "com.example.Foo", Name: "Foo"})
	c, ok := m.Get("com.example.Foo")
	require.True(t, ok)
	assert.Equal(t, "Foo", c.Name)
	assert.Equal(t, 1, m.Len())
}

func TestClassMapConcurrentAccess(t *testing.T) {
	m := index.NewClassMap()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.Put(class.Class{ClassPath: "com.example.C", Name: "C"})
			m.Get("com.example.C")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, m.Len())
}

func TestClassMapByPackagePrefix(t *testing.T) {
	m := index.NewClassMap()
	m.PutAll([]class.Class{
		{ClassPath: "com.example.util.Helper", Name: "Helper"},
		{ClassPath: "com.example.util.Other", Name: "Other"},
		{ClassPath: "com.example.model.Foo", Name: "Foo"},
	})
	matches := m.ByPackagePrefix("com.example.util")
	assert.Len(t, matches, 2)
}

func TestClassMapByShortName(t *testing.T) {
	m := index.NewClassMap()
	m.PutAll([]class.Class{
		{ClassPath: "com.example.a.Widget", Name: "Widget"},
		{ClassPath: "com.example.b.Widget", Name: "Widget"},
	})
	matches := m.ByShortName("Widget")
	assert.Len(t, matches, 2)
}

func TestClassMapDelete(t *testing.T) {
	m := index.NewClassMap()
	m.Put(class.Class{ClassPath: "com.example.Foo", Name: "Foo"})
	m.Delete("com.example.Foo")
	_, ok := m.Get("com.example.Foo")
	assert.False(t, ok)
}

func TestReferenceMapPopulateClassImport(t *testing.T) {
	classMap := index.NewClassMap()
	refs := index.NewReferenceMap()
	imports := []class.ImportUnit{
		{Kind: class.ImportClass, Path: "com.example.Bar"},
	}
	refs.Populate("com.example.Foo", imports, classMap)
	assert.Equal(t, []string{"com.example.Foo"}, refs.Get("com.example.Bar"))
}

func TestReferenceMapPopulatePrefixImport(t *testing.T) {
	classMap := index.NewClassMap()
	classMap.PutAll([]class.Class{
		{ClassPath: "com.example.util.Helper", Name: "Helper"},
		{ClassPath: "com.example.util.Other", Name: "Other"},
	})
	refs := index.NewReferenceMap()
	imports := []class.ImportUnit{{Kind: class.ImportPrefix, Path: "com.example.util"}}
	refs.Populate("com.example.Foo", imports, classMap)
	assert.ElementsMatch(t, []string{"com.example.Foo"}, refs.Get("com.example.util.Helper"))
	assert.ElementsMatch(t, []string{"com.example.Foo"}, refs.Get("com.example.util.Other"))
}

func TestReferenceMapDeduplicatesOnRender(t *testing.T) {
	refs := index.NewReferenceMap()
	refs.Append("com.example.Bar", "com.example.Foo")
	refs.Append("com.example.Bar", "com.example.Foo")
	assert.Equal(t, []string{"com.example.Foo"}, refs.Get("com.example.Bar"))
}

func TestDocumentMapOpenGetClose(t *testing.T) {
	d := index.NewDocumentMap()
	d.Open(&index.Document{Path: "Foo.java", Text: "class Foo {}"})
	doc, ok := d.Get("Foo.java")
	require.True(t, ok)
	assert.Equal(t, "class Foo {}", doc.Text)

	d.Close("Foo.java")
	_, ok = d.Get("Foo.java")
	assert.False(t, ok)
}
