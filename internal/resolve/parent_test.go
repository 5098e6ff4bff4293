package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/resolve"
)

func TestResolveOverlaysParentMethods(t *testing.T) {
	cm := fakeClassMap{
		"com.example.Animal": {
			ClassPath: "com.example.Animal",
			Name:      "Animal",
			Methods: []class.Method{
				{Name: "speak", Return: class.JType{Kind: class.JVoid}},
			},
			Fields: []class.Field{
				{Name: "age", JType: class.JType{Kind: class.JInt}},
			},
		},
		"com.example.Dog": {
			ClassPath:  "com.example.Dog",
			Name:       "Dog",
			SuperClass: class.SuperClass{Kind: class.SuperClassPath, Name: "com.example.Animal"},
			Methods: []class.Method{
				{Name: "bark", Return: class.JType{Kind: class.JVoid}},
			},
		},
	}
	state, err := resolve.Resolve("com.example.Dog", nil, cm)
	require.NoError(t, err)
	dog := state.Class
	require.Len(t, dog.Methods, 2)
	require.Len(t, dog.Fields, 1)
	assert.Equal(t, "age", dog.Fields[0].Name)
	assert.Equal(t, "com.example.Animal", dog.Fields[0].Source)

	var names []string
	for _, m := range dog.Methods {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "bark")
	assert.Contains(t, names, "speak")
}

func TestResolveOverlaySkipsPrivateAncestorMembers(t *testing.T) {
	cm := fakeClassMap{
		"com.example.Base": {
			ClassPath: "com.example.Base",
			Name:      "Base",
			Methods: []class.Method{
				{Name: "secret", Access: class.Private},
				{Name: "shared"},
			},
		},
		"com.example.Child": {
			ClassPath:  "com.example.Child",
			Name:       "Child",
			SuperClass: class.SuperClass{Kind: class.SuperClassPath, Name: "com.example.Base"},
		},
	}
	state, err := resolve.Resolve("com.example.Child", nil, cm)
	require.NoError(t, err)
	require.Len(t, state.Class.Methods, 1)
	assert.Equal(t, "shared", state.Class.Methods[0].Name)
}

func TestResolveOverlayDoesNotShadowOwnMember(t *testing.T) {
	cm := fakeClassMap{
		"com.example.Base": {
			ClassPath: "com.example.Base",
			Name:      "Base",
			Methods:   []class.Method{{Name: "greet", Return: class.JType{Kind: class.JVoid}}},
		},
		"com.example.Child": {
			ClassPath:  "com.example.Child",
			Name:       "Child",
			SuperClass: class.SuperClass{Kind: class.SuperClassPath, Name: "com.example.Base"},
			Methods:    []class.Method{{Name: "greet", Return: class.JType{Kind: class.JInt}}},
		},
	}
	state, err := resolve.Resolve("com.example.Child", nil, cm)
	require.NoError(t, err)
	require.Len(t, state.Class.Methods, 1)
	assert.Equal(t, class.JInt, state.Class.Methods[0].Return.Kind)
}

func TestResolveOverlayHandlesCyclicSuperGracefully(t *testing.T) {
	cm := fakeClassMap{
		"com.example.A": {
			ClassPath:  "com.example.A",
			Name:       "A",
			SuperClass: class.SuperClass{Kind: class.SuperClassPath, Name: "com.example.B"},
		},
		"com.example.B": {
			ClassPath:  "com.example.B",
			Name:       "B",
			SuperClass: class.SuperClass{Kind: class.SuperClassPath, Name: "com.example.A"},
		},
	}
	assert.NotPanics(t, func() {
		_, err := resolve.Resolve("com.example.A", nil, cm)
		require.NoError(t, err)
	})
}
