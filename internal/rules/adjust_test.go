package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleResponse = `
status: ok
content:
  rule_id: ccx_rules_ocp.external.rules.nodes_requirements_check
  plugin: nodes_requirements_check
  description: rule-level description
  summary: Nodes should meet the minimum requirements.
  publish_date: "2021-08-19T12:00:00Z"
  impacted_clusters_count: 3
  error_keys:
    NODES_MINIMUM_REQUIREMENTS_NOT_MET:
      description: entry description
      reason: entry reason
      tags: [performance, unknown_tag]
      metadata:
        severity: CRITICAL
        likelihood: 3
        total_risk: 4
        reason: metadata reason
    OTHER_KEY:
      description: other
      tags: custom-string
      metadata:
        impact: low
`

const sampleID = "ccx_rules_ocp.external.rules.nodes_requirements_check|NODES_MINIMUM_REQUIREMENTS_NOT_MET"

func mustResponse(t *testing.T) Response {
	t.Helper()
	resp, err := ParseResponse([]byte(sampleResponse))
	require.NoError(t, err)
	return resp
}

func strPtr(s string) *string { return &s }

func TestErrorKey(t *testing.T) {
	require.Equal(t, "KEY1", ErrorKey("plugin.module|KEY1"))
	require.Equal(t, "KEY1", ErrorKey("plugin.module|KEY1|extra"))
	require.Equal(t, "", ErrorKey("plugin.module"))
}

func TestAdjustMergesMetadataOverEntryOverRule(t *testing.T) {
	resp := mustResponse(t)
	rule, err := Adjust(resp.Content, sampleID, DefaultTables())
	require.NoError(t, err)

	require.Equal(t, "entry description", rule.Description)
	require.Equal(t, "metadata reason", rule.Reason)
	require.Equal(t, "Nodes should meet the minimum requirements.", rule.Summary)
	require.Equal(t, "nodes_requirements_check", rule.Plugin)
	require.Equal(t, 3, rule.ImpactedClustersCount)
	require.Equal(t, 3, rule.Likelihood)
	require.Equal(t, 4, rule.TotalRisk)
	require.Equal(t, Impact{Name: "CRITICAL", Impact: 4}, rule.Impact)
	require.NotNil(t, rule.Tags)
	require.True(t, rule.Tags.IsList())
	require.Equal(t, []string{"performance", "unknown_tag"}, rule.Tags.List)

	published, err := rule.PublishedAt()
	require.NoError(t, err)
	require.Equal(t, 2021, published.Year())
}

func TestAdjustMinimalEntry(t *testing.T) {
	tables := DefaultTables()
	performance := TagList("performance")
	raw := RawRule{
		ErrorKeys: map[string]ErrorKeyEntry{
			"KEY1": {
				Fields:   Fields{Description: strPtr("d"), Tags: &performance},
				Metadata: Fields{Severity: strPtr("CRITICAL")},
			},
		},
	}

	rule, err := Adjust(raw, "plugin|KEY1", tables)
	require.NoError(t, err)
	require.Equal(t, "d", rule.Description)
	require.Equal(t, Impact{Name: "CRITICAL", Impact: tables.ImpactRank("CRITICAL")}, rule.Impact)
}

func TestAdjustImpactPrefersImpactOverSeverity(t *testing.T) {
	resp := mustResponse(t)
	rule, err := Adjust(resp.Content, "x|OTHER_KEY", DefaultTables())
	require.NoError(t, err)
	require.Equal(t, "low", rule.Impact.Name)
	require.Equal(t, 1, rule.Impact.Impact)
	require.False(t, rule.Tags.IsList())
	require.Equal(t, "custom-string", rule.Tags.Scalar)
}

func TestAdjustUnknownImpactRanksZero(t *testing.T) {
	raw := RawRule{ErrorKeys: map[string]ErrorKeyEntry{
		"K": {Metadata: Fields{Impact: strPtr("catastrophic")}},
	}}
	rule, err := Adjust(raw, "p|K", DefaultTables())
	require.NoError(t, err)
	require.Equal(t, Impact{Name: "catastrophic"}, rule.Impact)
}

func TestAdjustMissingErrorKey(t *testing.T) {
	resp := mustResponse(t)

	_, err := Adjust(resp.Content, "plugin|NOPE", DefaultTables())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrErrorKeyNotFound))

	_, err = Adjust(resp.Content, "no-separator", DefaultTables())
	require.ErrorIs(t, err, ErrErrorKeyNotFound)
}

func TestAdjustIsIdempotentAndDoesNotMutate(t *testing.T) {
	resp := mustResponse(t)
	tables := DefaultTables()

	first, err := Adjust(resp.Content, sampleID, tables)
	require.NoError(t, err)
	first.Tags.List[0] = "mutated"

	second, err := Adjust(resp.Content, sampleID, tables)
	require.NoError(t, err)
	third, err := Adjust(resp.Content, sampleID, tables)
	require.NoError(t, err)

	require.Equal(t, second, third)
	require.Equal(t, "performance", second.Tags.List[0])
	require.Equal(t, "performance", resp.Content.ErrorKeys["NODES_MINIMUM_REQUIREMENTS_NOT_MET"].Tags.List[0])
	require.Equal(t, DefaultTables(), tables)
}

func TestParseResponseJSON(t *testing.T) {
	doc := `{"status":"ok","content":{"description":"top","error_keys":{"K":{"tags":["security"],"metadata":{"impact":"High"}}}}}`
	resp, err := ParseResponse([]byte(doc))
	require.NoError(t, err)

	rule, err := Adjust(resp.Content, "p|K", DefaultTables())
	require.NoError(t, err)
	require.Equal(t, "top", rule.Description)
	require.Equal(t, 3, rule.Impact.Impact)
	require.True(t, rule.HasTag("security"))
}

func TestParseResponseRejectsMalformedTags(t *testing.T) {
	_, err := ParseResponse([]byte("content:\n  tags:\n    nested: map\n"))
	require.Error(t, err)

	_, err = ParseResponse([]byte("   \n"))
	require.Error(t, err)
}

func TestLoadResponse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleResponse), 0o644))

	resp, err := LoadResponse(path)
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Content.ErrorKeys, 2)

	_, err = LoadResponse(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
