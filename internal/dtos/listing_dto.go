package dtos

import (
	"encoding/json"
	"time"

	"github.com/repeto/placement-board/internal/models"
)

// StringOrSlice accepts either a lone JSON string or an array of strings.
// Single-select filter widgets submit a string, multi-select an array; the
// service treats both as a list.
type StringOrSlice []string

func (s *StringOrSlice) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringOrSlice{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringOrSlice(many)
	return nil
}

func (s StringOrSlice) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(s))
}

// FilterMapping names a (category, option) choice by its human-readable
// names; the service resolves them to catalog IDs.
type FilterMapping struct {
	CategoryName string        `json:"categoryName"`
	OptionName   StringOrSlice `json:"optionName"`
}

type ContactPayload struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type ListingPayload struct {
	CompanyName string `json:"companyName" binding:"required"`
	RoleName    string `json:"roleName" binding:"required"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	Salary      string `json:"salary"`
	CTC         string `json:"ctc"`
	CompanyLink string `json:"companyLink"`
	LastDate    string `json:"lastDate"`
	IsActive    *bool  `json:"isActive"`

	Contacts      []ContactPayload `json:"contacts"`
	FilterOptions []FilterMapping  `json:"jobFilterOptions"`
}

// ListingUpdateRequest carries the target identifier alongside the full
// replacement payload. Each wire surface names the identifier after its own
// entity, and only that spelling is honored: a jobId sent to the project
// surface must not address anything.
type ListingUpdateRequest struct {
	JobID     uint `json:"jobId"`
	ProjectID uint `json:"projectId"`
	ListingPayload
}

func (r *ListingUpdateRequest) TargetID(kind string) uint {
	if kind == models.KindProject {
		return r.ProjectID
	}
	return r.JobID
}

type ListingDeleteRequest struct {
	JobID     uint `json:"jobId"`
	ProjectID uint `json:"projectId"`
}

func (r *ListingDeleteRequest) TargetID(kind string) uint {
	if kind == models.KindProject {
		return r.ProjectID
	}
	return r.JobID
}

// FilterTag is a filter link resolved back to its display names.
type FilterTag struct {
	CategoryName string `json:"categoryName"`
	OptionName   string `json:"optionName"`
}

// ListingResponse decorates a listing with its contacts and resolved tags.
// Contacts and Filters are always present in the JSON, never null.
type ListingResponse struct {
	models.Listing
	Contacts []models.Contact `json:"contacts"`
	Filters  []FilterTag      `json:"filters"`
}

// ParseDate turns a textual deadline into a timestamp; empty or unparseable
// input becomes null rather than an error.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
