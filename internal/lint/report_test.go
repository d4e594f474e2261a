package lint

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Report_OverallSuccess(t *testing.T) {
	passRule := MustNew("pass_rule", alwaysTrue)
	cellRule := MustNew("cell_rule", alwaysTrue, WithScope(ScopeCells))

	tests := []struct {
		name  string
		build func(r *Report)
		want  bool
	}{
		{
			name:  "empty report passes",
			build: func(_ *Report) {},
			want:  true,
		},
		{
			name: "all top-level pass",
			build: func(r *Report) {
				r.AddEntry(passRule, true)
				r.AddAggregateEntry(cellRule, true)
			},
			want: true,
		},
		{
			name: "failed aggregate fails the report",
			build: func(r *Report) {
				r.AddEntry(passRule, true)
				r.AddAggregateEntry(cellRule, false)
			},
			want: false,
		},
		{
			name: "failed member alone does not fail the report",
			build: func(r *Report) {
				r.AddMemberEntry(cellRule, false, 0)
				r.AddAggregateEntry(cellRule, true)
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewReport("nb.ipynb")
			tt.build(report)
			assert.Equal(t, tt.want, report.OverallSuccess())
		})
	}
}

func Test_Report_Summarize(t *testing.T) {
	fileRule := MustNew("file_rule", alwaysTrue)
	cellRule := MustNew("cell_rule", alwaysTrue, WithScope(ScopeCode))

	report := NewReport("nb.ipynb")
	report.AddEntry(fileRule, true)
	report.AddMemberEntry(cellRule, true, 0)
	report.AddMemberEntry(cellRule, false, 2)
	report.AddAggregateEntry(cellRule, false)

	summary := report.Summarize()
	assert.Equal(t, 2, summary.TotalChecks)
	assert.Equal(t, 1, summary.PassedChecks)
	assert.Equal(t, 1, summary.FailedChecks)
	assert.Equal(t, 2, summary.TotalMembers)
	assert.Equal(t, 1, summary.PassedMembers)
	assert.Equal(t, 1, summary.FailedMembers)
}

func Test_Report_MemberEntryNaming(t *testing.T) {
	rule := MustNew("license_check", alwaysTrue, WithScope(ScopeCode))

	report := NewReport("nb.ipynb")
	report.AddMemberEntry(rule, true, 7)

	entries := report.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "license_check__cell_7", entries[0].Name)
	assert.Equal(t, "license_check", entries[0].Group)
	assert.True(t, entries[0].IsGroupEntry)
}

func Test_Report_Render(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	fileRule := MustNew("filename_spaces", alwaysTrue,
		WithMessage("filename must not contain spaces"), WithStyle("google"))
	cellRule := MustNew("copyright_check", alwaysTrue,
		WithMessage("notebook needs a copyright line"),
		WithScope(ScopeText), WithStyle("google"))

	report := NewReport("nb.ipynb")
	report.AddEntry(fileRule, true)
	report.AddMemberEntry(cellRule, false, 0)
	report.AddMemberEntry(cellRule, true, 1)
	report.AddAggregateEntry(cellRule, true)

	t.Run("terse hides members", func(t *testing.T) {
		out := report.Render(false)
		assert.Contains(t, out, "Pass | google::filename_spaces | filename must not contain spaces\n")
		assert.Contains(t, out, "Pass | google::copyright_check | notebook needs a copyright line\n")
		assert.NotContains(t, out, "__cell_")
		assert.NotContains(t, out, "[All results]")
	})

	t.Run("verbose lists members under their aggregate", func(t *testing.T) {
		out := report.Render(true)
		assert.Contains(t, out, "[All results]\n- Fail | copyright_check__cell_0\n- Pass | copyright_check__cell_1\n")
	})

	t.Run("file entry has no child block", func(t *testing.T) {
		solo := NewReport("nb.ipynb")
		solo.AddEntry(fileRule, false)
		out := solo.Render(true)
		assert.Equal(t, "Fail | google::filename_spaces | filename must not contain spaces\n", out)
	})
}
