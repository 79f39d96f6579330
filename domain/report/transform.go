package report

import (
	"encoding/json"

	apperrors "riskreport-backend/pkg/errors"
)

// TransformSection applies the per-section display transform and returns the
// value to serve. Sections with no transform pass through as raw JSON.
func TransformSection(name string, raw json.RawMessage) (interface{}, error) {
	switch name {
	case SectionMoneyUsage:
		return aliasFlowAnalysis(raw)
	case SectionBusinessPattern:
		return attachPatternAnalysis(raw)
	case SectionUsageDict:
		return sortedUsageDict(raw)
	default:
		return raw, nil
	}
}

func decodeSectionObject(name string, raw json.RawMessage) (map[string]interface{}, error) {
	var section map[string]interface{}
	if err := json.Unmarshal(raw, &section); err != nil {
		return nil, apperrors.NewInternalError("section " + name + " is not a JSON object").WithCause(err)
	}
	return section, nil
}

// aliasFlowAnalysis mirrors the money-usage flow_analysis under
// dict_analysis, the key the frontend reads.
func aliasFlowAnalysis(raw json.RawMessage) (interface{}, error) {
	section, err := decodeSectionObject(SectionMoneyUsage, raw)
	if err != nil {
		return nil, err
	}
	if flow, ok := section["flow_analysis"]; ok {
		section["dict_analysis"] = flow
	}
	return section, nil
}

// attachPatternAnalysis normalizes the business-pattern raw analysis text
// into dict_analysis. When the text has no tagged sections it is served
// unchanged under the same key.
func attachPatternAnalysis(raw json.RawMessage) (interface{}, error) {
	section, err := decodeSectionObject(SectionBusinessPattern, raw)
	if err != nil {
		return nil, err
	}
	text, ok := section["raw_analysis"].(string)
	if !ok {
		return section, nil
	}
	if processed, tagged := NormalizePatternText(text); tagged {
		section["dict_analysis"] = processed
	} else {
		section["dict_analysis"] = text
	}
	return section, nil
}

// sortedUsageDict sorts the usage rows by direction then amount. A section
// that is not a list is served as-is, matching how the frontend treats it.
func sortedUsageDict(raw json.RawMessage) (interface{}, error) {
	var records []UsageRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return raw, nil
	}
	SortUsageRecords(records)
	return records, nil
}
