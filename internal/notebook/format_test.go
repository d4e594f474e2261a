package notebook

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatFixture() *Notebook {
	count := 3
	return &Notebook{
		Cells: []Cell{
			{
				Type:   CellCode,
				Source: SourceLines{"#@title Licensed under the Apache License, Version 2.0\n"},
			},
			{
				Type:   CellMarkdown,
				Source: SourceLines{"Copyright 2024 The TensorFlow Authors.\n"},
			},
			{
				Type:           CellCode,
				Source:         SourceLines{"%tensorflow_version 2.x\n"},
				Outputs:        []json.RawMessage{json.RawMessage(`{"output_type": "stream"}`)},
				ExecutionCount: &count,
			},
			{Type: CellCode, Source: SourceLines{""}},
		},
		NBFormat: 4,
	}
}

func Test_Format(t *testing.T) {
	nb := formatFixture()
	result := Format(nb, FormatOptions{Path: "site/en/guide.ipynb"})

	assert.True(t, result.Clean(), "warnings: %v", result.Warnings)
	assert.True(t, result.HasLicense)
	assert.True(t, result.HasRequiredPatterns)

	t.Run("empty cells are dropped", func(t *testing.T) {
		assert.Len(t, nb.Cells, 3)
	})

	t.Run("outputs stripped and execution count zeroed", func(t *testing.T) {
		cell := nb.Cells[2]
		assert.Empty(t, cell.Outputs)
		require.NotNil(t, cell.ExecutionCount)
		assert.Equal(t, 0, *cell.ExecutionCount)
		assert.Contains(t, result.Warnings, "Removed the existing output cells.")
	})

	t.Run("colab metadata rewritten", func(t *testing.T) {
		colab, ok := nb.Metadata["colab"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "guide.ipynb", colab["name"])
		assert.Equal(t, true, colab["private_outputs"])
		assert.Equal(t, true, colab["toc_visible"])
	})

	t.Run("license cell collapsed to a form", func(t *testing.T) {
		assert.Equal(t, "form", nb.Cells[0].Metadata["cellView"])
	})
}

func Test_Format_PreserveOutputs(t *testing.T) {
	nb := formatFixture()
	result := Format(nb, FormatOptions{PreserveOutputs: true})

	cell := nb.Cells[2]
	assert.Len(t, cell.Outputs, 1)
	require.NotNil(t, cell.ExecutionCount)
	assert.Equal(t, 3, *cell.ExecutionCount)
	assert.NotContains(t, result.Warnings, "Removed the existing output cells.")

	colab := nb.Metadata["colab"].(map[string]any)
	assert.Equal(t, false, colab["private_outputs"])
}

func Test_Format_Warnings(t *testing.T) {
	nb := &Notebook{
		Cells: []Cell{
			{Type: CellCode, Source: SourceLines{"x = 1\n"}},
		},
		NBFormat: 4,
	}

	result := Format(nb, FormatOptions{})
	assert.False(t, result.Clean())
	assert.False(t, result.HasLicense)
	assert.False(t, result.HasRequiredPatterns)
	// Missing license plus two missing required patterns.
	assert.Len(t, result.Warnings, 3)
}

func Test_Marshal(t *testing.T) {
	nb := &Notebook{
		Cells: []Cell{
			{Type: CellCode, Source: SourceLines{"x = 1\n"}, Metadata: map[string]any{}},
		},
		Metadata:      map[string]any{"colab": map[string]any{"name": "guide.ipynb"}},
		NBFormat:      4,
		NBFormatMinor: 0,
	}

	data, err := Marshal(nb)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasSuffix(out, "}\n"), "trailing newline after closing brace")

	t.Run("key order matches the colab layout", func(t *testing.T) {
		iMeta := strings.Index(out, `"metadata"`)
		iFormat := strings.Index(out, `"nbformat"`)
		iMinor := strings.Index(out, `"nbformat_minor"`)
		iCells := strings.Index(out, `"cells"`)
		require.True(t, iMeta >= 0 && iFormat >= 0 && iMinor >= 0 && iCells >= 0)
		assert.Less(t, iMeta, iFormat)
		assert.Less(t, iFormat, iMinor)
		assert.Less(t, iMinor, iCells)
	})

	t.Run("round-trips through the loader", func(t *testing.T) {
		parsed, err := NewLoader().Parse(data)
		require.NoError(t, err)
		require.Len(t, parsed.Cells, 1)
		assert.Equal(t, "x = 1\n", parsed.Cells[0].Text())
	})
}
