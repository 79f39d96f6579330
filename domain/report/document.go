package report

import (
	"encoding/json"
	"fmt"

	"riskreport-backend/domain/linkage"
	apperrors "riskreport-backend/pkg/errors"
)

// Section names of an analysis artifact. The analysis pipeline may add more;
// unknown sections are served verbatim.
const (
	SectionTransactions    = "transactions_data"
	SectionMoneyFlow       = "money_flow_analysis"
	SectionMoneyUsage      = "money_usage_summary"
	SectionHighCash        = "high_cash_summary"
	SectionBusinessPattern = "business_pattern"
	SectionPublicInfo      = "public_info"
	SectionPublicAddress   = "public_address_info"
	SectionWireUsage       = "wire_money_usage"
	SectionUsageDict       = "transactions_usage_dict"
	SectionLinkage         = "linkage"
)

// Document is one account's pre-computed analysis artifact. Sections stay as
// raw JSON until an endpoint needs their structure, so artifacts with
// sections this service has never heard of still round-trip unchanged.
type Document struct {
	sections map[string]json.RawMessage
}

// ParseDocument parses an analysis artifact from its JSON bytes
func ParseDocument(data []byte) (*Document, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, apperrors.NewInternalError("analysis artifact is not a JSON object").WithCause(err)
	}
	return &Document{sections: sections}, nil
}

// Section returns the raw JSON of a named section
func (d *Document) Section(name string) (json.RawMessage, error) {
	raw, ok := d.sections[name]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("section %q", name))
	}
	return raw, nil
}

// Has reports whether a section is present
func (d *Document) Has(name string) bool {
	_, ok := d.sections[name]
	return ok
}

// SectionNames lists the sections present in the artifact
func (d *Document) SectionNames() []string {
	names := make([]string, 0, len(d.sections))
	for name := range d.sections {
		names = append(names, name)
	}
	return names
}

// MarshalJSON serializes the full artifact back to a single object
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.sections)
}

// Linkage parses the artifact's linkage graph. A missing section is a
// not-found condition; a present but unparsable one is internal, since the
// pipeline wrote a corrupt artifact.
func (d *Document) Linkage() (*linkage.Graph, error) {
	raw, err := d.Section(SectionLinkage)
	if err != nil {
		return nil, err
	}

	var g linkage.Graph
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, apperrors.NewInternalError("linkage section is malformed").WithCause(err)
	}
	return &g, nil
}
