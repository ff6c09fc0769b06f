package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedTool struct {
	name string
}

func (t *namedTool) Name() string { return t.name }

func (t *namedTool) Description() string { return "test tool " + t.name }

func (t *namedTool) Schema() map[string]interface{} { return BaseToolSchema(nil, nil) }

func (t *namedTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	return t.name, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(&namedTool{name: "first"}))

	tool, ok := registry.Get("first")
	require.True(t, ok)
	assert.Equal(t, "first", tool.Name())

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(&namedTool{name: "dup"}))

	err := registry.Register(&namedTool{name: "dup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup")
}

func TestRegistry_ListPreservesRegistrationOrder(t *testing.T) {
	registry := NewRegistry()
	names := []string{"zulu", "alpha", "mike"}
	for _, name := range names {
		require.NoError(t, registry.Register(&namedTool{name: name}))
	}

	listed := registry.List()
	require.Len(t, listed, len(names))
	for i, name := range names {
		assert.Equal(t, name, listed[i].Name())
	}
}

func TestBaseToolSchema(t *testing.T) {
	schema := BaseToolSchema(map[string]interface{}{
		"url": map[string]interface{}{"type": "string"},
	}, []string{"url"})

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"url"}, schema["required"])

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "url")
}
