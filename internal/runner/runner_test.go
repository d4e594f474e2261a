package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeadmin-peritiae/docs/internal/lint"
	"github.com/codeadmin-peritiae/docs/internal/notebook"
)

const passingDoc = `{
  "cells": [
    {"cell_type": "markdown", "source": "Copyright 2024 The TensorFlow Authors", "metadata": {}}
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 0
}`

const failingDoc = `{
  "cells": [
    {"cell_type": "markdown", "source": "no notice here", "metadata": {}}
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 0
}`

func copyrightRegistry(t *testing.T) *lint.Registry {
	t.Helper()
	registry := lint.NewRegistry()
	require.NoError(t, registry.Register(lint.MustNew("copyright_check",
		func(source string, _ lint.Unit, _ string) (bool, error) {
			return strings.Contains(source, "Copyright"), nil
		},
		lint.WithScope(lint.ScopeText),
		lint.WithCondition(lint.CondAny),
		lint.WithStyle("google"),
	)))
	return registry
}

func writeFiles(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func Test_Runner_Run(t *testing.T) {
	dir := t.TempDir()
	files := []struct {
		name    string
		content string
	}{
		{"pass.ipynb", passingDoc},
		{"fail.ipynb", failingDoc},
		{"broken.ipynb", `{"metadata": {}}`},
		{"notes.txt", "not a notebook"},
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		require.NoError(t, os.WriteFile(path, []byte(f.content), 0o644))
		paths = append(paths, path)
	}

	runner := New(copyrightRegistry(t), notebook.NewLoader())
	result, err := runner.Run(context.Background(), "0.5.0", paths)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "0.5.0", result.ToolVersion)
	assert.False(t, result.Success())

	t.Run("files keep input order", func(t *testing.T) {
		require.Len(t, result.Files, 4)
		for i, f := range result.Files {
			assert.Equal(t, paths[i], f.Path)
		}
	})

	t.Run("passing file", func(t *testing.T) {
		f := result.Files[0]
		assert.True(t, f.Success)
		assert.False(t, f.Skipped)
		require.Len(t, f.Entries, 2) // one member, one aggregate
		assert.True(t, f.Entries[0].Member)
		assert.False(t, f.Entries[1].Member)
		assert.NotNil(t, f.Report())
	})

	t.Run("failing file", func(t *testing.T) {
		f := result.Files[1]
		assert.False(t, f.Success)
		assert.False(t, f.Skipped)
	})

	t.Run("unparseable file is skipped", func(t *testing.T) {
		f := result.Files[2]
		assert.True(t, f.Skipped)
		assert.Contains(t, f.SkipReason, "unable to find list of cells")
		assert.Nil(t, f.Report())
	})

	t.Run("non-notebook file is skipped", func(t *testing.T) {
		f := result.Files[3]
		assert.True(t, f.Skipped)
		assert.Equal(t, "not an .ipynb file", f.SkipReason)
	})

	t.Run("summary counts", func(t *testing.T) {
		s := result.Summary
		assert.Equal(t, 4, s.TotalFiles)
		assert.Equal(t, 1, s.PassedFiles)
		assert.Equal(t, 1, s.FailedFiles)
		assert.Equal(t, 2, s.SkippedFiles)
		assert.Equal(t, 2, s.TotalChecks)
		assert.Equal(t, 1, s.PassedChecks)
		assert.Equal(t, 1, s.FailedChecks)
	})
}

func Test_Runner_AllPassing(t *testing.T) {
	paths := writeFiles(t, map[string]string{"a.ipynb": passingDoc})

	runner := New(copyrightRegistry(t), notebook.NewLoader())
	result, err := runner.Run(context.Background(), "0.5.0", paths)
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Equal(t, 1, result.Summary.PassedFiles)
	assert.GreaterOrEqual(t, result.Duration, time.Duration(0))
	assert.Equal(t, result.Duration.Milliseconds(), result.DurationMS)
}

func Test_Runner_ContractErrorAborts(t *testing.T) {
	paths := writeFiles(t, map[string]string{"a.ipynb": passingDoc})

	registry := lint.NewRegistry()
	require.NoError(t, registry.Register(lint.MustNew("broken",
		func(_ string, _ lint.Unit, _ string) (bool, error) {
			return false, assert.AnError
		},
		lint.WithScope(lint.ScopeCells),
	)))

	runner := New(registry, notebook.NewLoader())
	result, err := runner.Run(context.Background(), "0.5.0", paths)
	assert.Nil(t, result)

	var cerr *lint.ContractError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "broken", cerr.Rule)
}

func Test_Runner_BoundedJobs(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 8; i++ {
		files[fmt.Sprintf("nb%02d.ipynb", i)] = passingDoc
	}
	paths := writeFiles(t, files)

	runner := New(copyrightRegistry(t), notebook.NewLoader())
	runner.Jobs = 2
	result, err := runner.Run(context.Background(), "0.5.0", paths)
	require.NoError(t, err)
	assert.Len(t, result.Files, 8)
	assert.True(t, result.Success())
}
