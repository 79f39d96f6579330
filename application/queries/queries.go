package queries

import (
	"riskreport-backend/domain/linkage"
	"riskreport-backend/domain/report"
	apperrors "riskreport-backend/pkg/errors"
	"riskreport-backend/pkg/utils"
)

// GetDocumentQuery asks for an account's full analysis artifact
type GetDocumentQuery struct {
	AccountID string `json:"account_id" validate:"required"`
}

// Validate validates the query
func (q GetDocumentQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// GetSectionQuery asks for one named section of an account's artifact, with
// its per-section display transform applied
type GetSectionQuery struct {
	AccountID string `json:"account_id" validate:"required"`
	Section   string `json:"section" validate:"required"`
}

// Validate validates the query
func (q GetSectionQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// GetSubgraphQuery asks for the bounded neighborhood around a center node in
// an account's linkage graph. An empty CenterNode defaults to the account
// identifier zero-padded to canonical width; Degree below 1 is clamped by
// the extractor.
type GetSubgraphQuery struct {
	AccountID  string `json:"account_id" validate:"required"`
	CenterNode string `json:"center_node,omitempty"`
	Degree     int    `json:"degree"`
}

// Validate validates the query
func (q GetSubgraphQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// GetDocumentResult carries the loaded artifact
type GetDocumentResult struct {
	Document *report.Document
}

// GetSectionResult carries a transformed section value ready for encoding
type GetSectionResult struct {
	Section string
	Value   interface{}
}

// GetSubgraphResult carries the extracted subgraph
type GetSubgraphResult struct {
	Subgraph *linkage.SubgraphResult
}
