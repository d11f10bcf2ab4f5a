package dto

import "kks-tracker/internal/domain/catalog"

type KKSResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	ShortName string `json:"short_name"`
}

type OrganizationResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	ShortName string `json:"short_name"`
}

type ProgramTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProgramSummaryResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TypeName     string `json:"type_name"`
	OrgFullName  string `json:"organization_full_name"`
	OrgShortName string `json:"organization_short_name"`
}

type ProgramResponse struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	TypeID         int64         `json:"type_id"`
	TypeName       string        `json:"type_name"`
	OrganizationID int64         `json:"organization_id"`
	OrgFullName    string        `json:"organization_full_name"`
	OrgShortName   string        `json:"organization_short_name"`
	Passport       []KKSResponse `json:"passport"`
}

func NewKKSResponse(k catalog.KKS) KKSResponse {
	return KKSResponse{ID: k.ID, FullName: k.FullName, ShortName: k.ShortName}
}

func NewKKSList(items []catalog.KKS) []KKSResponse {
	out := make([]KKSResponse, 0, len(items))
	for _, k := range items {
		out = append(out, NewKKSResponse(k))
	}
	return out
}

func NewOrganizationResponse(o catalog.Organization) OrganizationResponse {
	return OrganizationResponse{ID: o.ID, FullName: o.FullName, ShortName: o.ShortName}
}

func NewProgramSummaryList(items []catalog.ProgramSummary) []ProgramSummaryResponse {
	out := make([]ProgramSummaryResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ProgramSummaryResponse{
			ID:           p.ID,
			Name:         p.Name,
			TypeName:     p.TypeName,
			OrgFullName:  p.OrgFullName,
			OrgShortName: p.OrgShortName,
		})
	}
	return out
}

func NewProgramResponse(p catalog.Program) ProgramResponse {
	return ProgramResponse{
		ID:             p.ID,
		Name:           p.Name,
		TypeID:         p.TypeID,
		TypeName:       p.TypeName,
		OrganizationID: p.OrganizationID,
		OrgFullName:    p.OrgFullName,
		OrgShortName:   p.OrgShortName,
		Passport:       NewKKSList(p.Passport),
	}
}
