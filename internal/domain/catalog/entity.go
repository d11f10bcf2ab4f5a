package catalog

import "sort"

type KKS struct {
	ID        int64
	FullName  string
	ShortName string
}

type Organization struct {
	ID        int64
	FullName  string
	ShortName string
}

type ProgramType struct {
	ID   int64
	Name string
}

type Program struct {
	ID             int64
	Name           string
	TypeID         int64
	TypeName       string
	OrganizationID int64
	OrgFullName    string
	OrgShortName   string
	Passport       []KKS
}

// ProgramSummary is a program row with its organization and type labels resolved.
type ProgramSummary struct {
	ID           int64
	Name         string
	TypeName     string
	OrgFullName  string
	OrgShortName string
}

// SortProgramSummaries orders by name, then id.
func SortProgramSummaries(items []ProgramSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
