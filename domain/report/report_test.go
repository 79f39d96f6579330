package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "riskreport-backend/pkg/errors"
)

const sampleArtifact = `{
	"transactions_data": {"total_count": 412, "by_direction": {"in": 230, "out": 182}},
	"money_flow_analysis": {"total_inflow": 120000.5, "total_outflow": 98000.25, "net_flow": 22000.25},
	"money_usage_summary": {"flow_analysis": {"wires": 0.4, "cash": 0.6}, "description": "mixed usage"},
	"business_pattern": {"raw_analysis": "<summary>steady - seasonal - export heavy</summary><conclusion>aligned/nwith profile</conclusion>"},
	"transactions_usage_dict": [
		{"direction": "OUT", "amount": 50, "category": "wire"},
		{"direction": "in", "amount": 100, "category": "cash"},
		{"direction": "In", "amount": "250.5", "category": "wire"},
		{"direction": "out", "amount": 75, "category": "check"}
	],
	"linkage": {
		"nodes": [{"id": "0000000000000001", "label": "root"}, {"id": "0000000000000002", "label": "peer"}],
		"links": [{"source": "0000000000000001", "target": "0000000000000002", "amount": 10}]
	}
}`

func TestParseDocumentSections(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleArtifact))
	require.NoError(t, err)

	assert.True(t, doc.Has(SectionTransactions))
	assert.False(t, doc.Has(SectionHighCash))
	assert.Len(t, doc.SectionNames(), 6)

	raw, err := doc.Section(SectionMoneyFlow)
	require.NoError(t, err)
	var flow map[string]float64
	require.NoError(t, json.Unmarshal(raw, &flow))
	assert.Equal(t, 22000.25, flow["net_flow"])

	_, err = doc.Section("no_such_section")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestParseDocumentRejectsNonObject(t *testing.T) {
	_, err := ParseDocument([]byte(`[1, 2, 3]`))
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}

func TestDocumentLinkage(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleArtifact))
	require.NoError(t, err)

	g, err := doc.Linkage()
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Links, 1)
	assert.Equal(t, "0000000000000001", g.Nodes[0].ID)
}

func TestDocumentLinkageMissing(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"transactions_data": {}}`))
	require.NoError(t, err)

	_, err = doc.Linkage()
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestNormalizePatternText(t *testing.T) {
	t.Run("dash runs split in all but last section", func(t *testing.T) {
		text := "<summary>high volume - cash heavy - cross border</summary>" +
			"<risks>layering - structuring</risks>" +
			"<conclusion>consistent/nwith declared\\nactivity</conclusion>"

		sections, ok := NormalizePatternText(text)
		require.True(t, ok)
		require.Len(t, sections, 3)

		assert.Equal(t, "high volume/ncash heavy/ncross border", sections["summary"])
		assert.Equal(t, "layering/nstructuring", sections["risks"])
		// Last section loses its line markers instead.
		assert.Equal(t, "consistentwith declaredactivity", sections["conclusion"])
	})

	t.Run("bold markers survive", func(t *testing.T) {
		text := "<summary>**elevated** exposure</summary><end>done</end>"
		sections, ok := NormalizePatternText(text)
		require.True(t, ok)
		assert.Equal(t, "**elevated** exposure", sections["summary"])
	})

	t.Run("case-insensitive close tag", func(t *testing.T) {
		text := "<Summary>content</SUMMARY><end>x</end>"
		sections, ok := NormalizePatternText(text)
		require.True(t, ok)
		assert.Equal(t, "content", sections["Summary"])
	})

	t.Run("untagged text passes through", func(t *testing.T) {
		_, ok := NormalizePatternText("plain narrative with - dashes")
		assert.False(t, ok)
	})

	t.Run("unclosed tag skipped", func(t *testing.T) {
		sections, ok := NormalizePatternText("<open>never closed <real>yes</real>")
		require.True(t, ok)
		require.Len(t, sections, 1)
		assert.Equal(t, "yes", sections["real"])
	})
}

func TestSortUsageRecords(t *testing.T) {
	records := []UsageRecord{
		{"direction": "OUT", "amount": json.Number("50"), "category": "wire"},
		{"direction": "in", "amount": json.Number("100"), "category": "cash"},
		{"direction": "In", "amount": "250.5", "category": "wire"},
		{"direction": "out", "amount": json.Number("75"), "category": "check"},
	}

	SortUsageRecords(records)

	// Direction ascending (case-insensitive), then amount descending.
	assert.Equal(t, "wire", records[0]["category"])  // in  250.5
	assert.Equal(t, "cash", records[1]["category"])  // in  100
	assert.Equal(t, "check", records[2]["category"]) // out 75
	assert.Equal(t, "wire", records[3]["category"])  // out 50
}

func TestSortUsageRecordsStable(t *testing.T) {
	records := []UsageRecord{
		{"direction": "in", "amount": json.Number("10"), "seq": "first"},
		{"direction": "in", "amount": json.Number("10"), "seq": "second"},
	}
	SortUsageRecords(records)
	assert.Equal(t, "first", records[0]["seq"])
	assert.Equal(t, "second", records[1]["seq"])
}

func TestTransformSection(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleArtifact))
	require.NoError(t, err)

	t.Run("money usage aliases flow analysis", func(t *testing.T) {
		raw, err := doc.Section(SectionMoneyUsage)
		require.NoError(t, err)

		v, err := TransformSection(SectionMoneyUsage, raw)
		require.NoError(t, err)

		section := v.(map[string]interface{})
		assert.Equal(t, section["flow_analysis"], section["dict_analysis"])
	})

	t.Run("business pattern gains dict analysis", func(t *testing.T) {
		raw, err := doc.Section(SectionBusinessPattern)
		require.NoError(t, err)

		v, err := TransformSection(SectionBusinessPattern, raw)
		require.NoError(t, err)

		section := v.(map[string]interface{})
		dict := section["dict_analysis"].(map[string]string)
		assert.Equal(t, "steady/nseasonal/nexport heavy", dict["summary"])
		assert.Equal(t, "alignedwith profile", dict["conclusion"])
	})

	t.Run("usage dict comes back sorted", func(t *testing.T) {
		raw, err := doc.Section(SectionUsageDict)
		require.NoError(t, err)

		v, err := TransformSection(SectionUsageDict, raw)
		require.NoError(t, err)

		records := v.([]UsageRecord)
		require.Len(t, records, 4)
		assert.Equal(t, "wire", records[0]["category"])
	})

	t.Run("plain sections pass through untouched", func(t *testing.T) {
		raw, err := doc.Section(SectionTransactions)
		require.NoError(t, err)

		v, err := TransformSection(SectionTransactions, raw)
		require.NoError(t, err)
		assert.Equal(t, interface{}(raw), v)
	})
}
