package dto

import "kks-tracker/internal/domain/document"

type DocumentResponse struct {
	ID         int64   `json:"id"`
	WorkerID   int64   `json:"worker_id"`
	ProgramID  int64   `json:"program_id"`
	RegNumber  string  `json:"reg_number"`
	FormSeries string  `json:"form_series"`
	FormNumber string  `json:"form_number"`
	IssuedAt   *string `json:"issued_at"`
	ValidFrom  *string `json:"valid_from"`
	ValidTo    *string `json:"valid_to"`
}

type DocumentListingResponse struct {
	DocumentResponse
	ProgramName  string   `json:"program_name"`
	OrgFullName  string   `json:"organization_full_name"`
	OrgShortName string   `json:"organization_short_name"`
	Criteria     []string `json:"criteria"`
	WorkerName   string   `json:"worker_name,omitempty"`
}

// DocumentListResponse tags the rows with the visibility they were read
// under.
type DocumentListResponse struct {
	Visibility string                    `json:"visibility"`
	WorkerID   int64                     `json:"worker_id,omitempty"`
	Items      []DocumentListingResponse `json:"items"`
}

func NewDocumentResponse(d document.Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID,
		WorkerID:   d.WorkerID,
		ProgramID:  d.ProgramID,
		RegNumber:  d.RegNumber,
		FormSeries: d.FormSeries,
		FormNumber: d.FormNumber,
		IssuedAt:   FormatDate(d.IssuedAt),
		ValidFrom:  FormatDate(d.ValidFrom),
		ValidTo:    FormatDate(d.ValidTo),
	}
}

func NewDocumentListing(l document.Listing) DocumentListingResponse {
	criteria := l.Criteria
	if criteria == nil {
		criteria = []string{}
	}
	return DocumentListingResponse{
		DocumentResponse: NewDocumentResponse(l.Document),
		ProgramName:      l.ProgramName,
		OrgFullName:      l.OrgFullName,
		OrgShortName:     l.OrgShortName,
		Criteria:         criteria,
		WorkerName:       l.WorkerName,
	}
}
