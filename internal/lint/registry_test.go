package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Registry_Register(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(MustNew("a", alwaysTrue, WithStyle("google"))))
	require.NoError(t, registry.Register(MustNew("b", alwaysTrue, WithStyle("google"),
		WithScope(ScopeCode), WithCondition(CondAll))))

	assert.Equal(t, 2, registry.Len())

	t.Run("duplicate name within a style is rejected", func(t *testing.T) {
		err := registry.Register(MustNew("a", alwaysTrue, WithStyle("google")))
		assert.ErrorContains(t, err, "duplicate rule a")
	})

	t.Run("same name in another style is allowed", func(t *testing.T) {
		assert.NoError(t, registry.Register(MustNew("a", alwaysTrue, WithStyle("tensorflow"))))
	})

	t.Run("invalid rule is rejected", func(t *testing.T) {
		err := registry.Register(Rule{Name: "no_check"})
		assert.Error(t, err)
	})
}

func Test_Registry_Lookup(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterAll(
		MustNew("file_rule", alwaysTrue),
		MustNew("code_any", alwaysTrue, WithScope(ScopeCode)),
		MustNew("code_all", alwaysTrue, WithScope(ScopeCode), WithCondition(CondAll)),
	))

	t.Run("file rules are keyed under any", func(t *testing.T) {
		rules := registry.Lookup(ScopeFile, CondAny)
		require.Len(t, rules, 1)
		assert.Equal(t, "file_rule", rules[0].Name)
	})

	t.Run("scope and condition separate groups", func(t *testing.T) {
		assert.Len(t, registry.Lookup(ScopeCode, CondAny), 1)
		assert.Len(t, registry.Lookup(ScopeCode, CondAll), 1)
		assert.Empty(t, registry.Lookup(ScopeText, CondAny))
	})
}

func Test_Registry_PreservesOrder(t *testing.T) {
	registry := NewRegistry()
	names := []string{"first", "second", "third"}
	for _, name := range names {
		require.NoError(t, registry.Register(MustNew(name, alwaysTrue, WithScope(ScopeCells))))
	}

	got := []string{}
	for _, rule := range registry.Lookup(ScopeCells, CondAny) {
		got = append(got, rule.Name)
	}
	assert.Equal(t, names, got)

	all := registry.All()
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Name)
}

func Test_Rule_Defaults(t *testing.T) {
	rule, err := New("defaults", alwaysTrue)
	require.NoError(t, err)
	assert.Equal(t, ScopeFile, rule.Scope)
	assert.Equal(t, CondAny, rule.Condition)

	t.Run("name required", func(t *testing.T) {
		_, err := New("", alwaysTrue)
		assert.Error(t, err)
	})

	t.Run("display name", func(t *testing.T) {
		assert.Equal(t, "defaults", rule.DisplayName())
		styled := MustNew("styled", alwaysTrue, WithStyle("google"))
		assert.Equal(t, "google::styled", styled.DisplayName())
	})
}
