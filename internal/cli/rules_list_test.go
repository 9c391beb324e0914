package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRulesList(t *testing.T, quiet bool, category string) string {
	t.Helper()
	savedQuiet, savedCategory := rulesListQuiet, rulesListCategory
	t.Cleanup(func() { rulesListQuiet, rulesListCategory = savedQuiet, savedCategory })
	rulesListQuiet = quiet
	rulesListCategory = category

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, rulesListCmd.RunE(cmd, nil))
	return buf.String()
}

func TestRulesListQuiet(t *testing.T) {
	out := runRulesList(t, true, "")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Contains(t, lines, "PSAvoidUsingWriteHost")
	assert.Contains(t, lines, "PSAvoidUsingPlainTextForPassword")
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "PS"), line)
	}
}

func TestRulesListByCategory(t *testing.T) {
	out := runRulesList(t, true, "Security")
	assert.Contains(t, out, "PSAvoidUsingPlainTextForPassword")
	assert.NotContains(t, out, "PSAvoidUsingWriteHost")
}

func TestRulesListUnknownCategory(t *testing.T) {
	saved := rulesListCategory
	t.Cleanup(func() { rulesListCategory = saved })
	rulesListCategory = "nonsense"

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	err := rulesListCmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestRulesShow(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, rulesShowCmd.RunE(cmd, []string{"PSAvoidUsingWriteHost"}))

	assert.Contains(t, buf.String(), "RULE: PSAvoidUsingWriteHost")
	assert.Contains(t, buf.String(), "Category: BestPractices")

	err := rulesShowCmd.RunE(cmd, []string{"NoSuchRule"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule not found")
}
