package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToolIDsUnique проверяет уникальность идентификаторов инструментов
func TestToolIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, tool := range Tools() {
		assert.Falsef(t, seen[tool.ID], "duplicate tool id: %s", tool.ID)
		seen[tool.ID] = true
	}
}

// TestEveryToolHasCategory проверяет, что категория каждого инструмента существует
func TestEveryToolHasCategory(t *testing.T) {
	for _, tool := range Tools() {
		_, ok := CategoryByID(tool.CategoryID)
		assert.Truef(t, ok, "tool %s references unknown category %s", tool.ID, tool.CategoryID)
	}
}

// TestToolByID тестирует поиск инструмента по идентификатору
func TestToolByID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		found bool
	}{
		{name: "existing tool", id: "merge-pdf", found: true},
		{name: "existing popular tool", id: "qr-generator", found: true},
		{name: "unknown tool", id: "teleport-file", found: false},
		{name: "empty id", id: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, ok := ToolByID(tt.id)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.id, tool.ID)
			}
		})
	}
}

// TestToolsByCategory проверяет выборку инструментов категории
func TestToolsByCategory(t *testing.T) {
	for _, c := range Categories() {
		tools := ToolsByCategory(c.ID)
		require.NotEmptyf(t, tools, "category %s has no tools", c.ID)
		for _, tool := range tools {
			assert.Equal(t, c.ID, tool.CategoryID)
		}
	}

	assert.Empty(t, ToolsByCategory("nothing"))
}

// TestPopularTools проверяет, что популярная выборка не пустая и корректная
func TestPopularTools(t *testing.T) {
	popular := PopularTools()
	require.NotEmpty(t, popular)
	for _, tool := range popular {
		assert.True(t, tool.Popular)
	}
	assert.Less(t, len(popular), len(Tools()))
}
