package models

import (
	"time"
)

// Listing kinds. Job postings and student projects share one table and one
// service; the kind tag keeps the two HTTP surfaces apart.
const (
	KindJob     = "job"
	KindProject = "project"
)

// DefaultRole is the role a previously unseen principal is recorded with
// when it creates a listing of the given kind.
func DefaultRole(kind string) string {
	if kind == KindProject {
		return "member"
	}
	return "admin"
}

type User struct {
	UID  string `gorm:"primaryKey;size:255" json:"uid"`
	Role string `gorm:"size:50;not null" json:"role"`
}

type Listing struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:20;not null;index" json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CompanyName string `gorm:"size:255;not null" json:"companyName"`
	RoleName    string `gorm:"size:255;not null" json:"roleName"`
	Description string `gorm:"type:text" json:"description"`
	Venue       string `gorm:"size:255" json:"venue"`
	Salary      string `gorm:"size:100" json:"salary"`
	CTC         string `gorm:"size:100" json:"ctc"`
	CompanyLink string `gorm:"size:255" json:"companyLink"`

	LastDate *time.Time `json:"lastDate"`
	IsActive bool       `gorm:"default:true" json:"isActive"`

	// Nullable on purpose: deleting the creator account must not take the
	// listing with it.
	CreatedByUID *string `gorm:"size:255" json:"createdByUid"`
	CreatedBy    *User   `gorm:"foreignKey:CreatedByUID;constraint:OnDelete:SET NULL" json:"-"`

	Contacts    []Contact    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FilterLinks []FilterLink `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Contact is a named contact point attached to one listing. The full set is
// replaced wholesale on every listing update.
type Contact struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ListingID uint `gorm:"not null;index" json:"listingId"`

	Name        string `gorm:"size:100" json:"name"`
	Designation string `gorm:"size:100" json:"designation"`
	Email       string `gorm:"size:255" json:"email,omitempty"`
	Phone       string `gorm:"size:50" json:"phone,omitempty"`
}

// Category input kinds as rendered by the filter UI.
const (
	InputSingleSelect = "single-select"
	InputMultiSelect  = "multi-select"
	InputRangeSlider  = "range-slider"
	InputText         = "text"
)

type Category struct {
	ID        uint   `gorm:"primaryKey" json:"categoryId"`
	Name      string `gorm:"size:100;not null;uniqueIndex" json:"categoryName"`
	InputType string `gorm:"size:20;not null;default:'single-select'" json:"inputType"`

	// Bounds for range-slider categories only.
	MinValue *float64 `json:"minValue,omitempty"`
	MaxValue *float64 `json:"maxValue,omitempty"`

	Options []CategoryOption `gorm:"constraint:OnDelete:CASCADE" json:"options"`
}

// CategoryOption names are unique within their category, not globally; two
// categories may each carry an option literally named "Other".
type CategoryOption struct {
	ID         uint   `gorm:"primaryKey" json:"optionId"`
	CategoryID uint   `gorm:"not null;uniqueIndex:idx_category_option_name" json:"categoryId"`
	Name       string `gorm:"size:255;not null;uniqueIndex:idx_category_option_name" json:"optionName"`
}

// FilterLink tags a listing with one (category, option) pair. A listing may
// hold at most one link per option.
type FilterLink struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ListingID uint `gorm:"not null;index;uniqueIndex:idx_listing_option" json:"listingId"`

	CategoryID uint     `gorm:"not null" json:"categoryId"`
	Category   Category `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	OptionID uint           `gorm:"not null;uniqueIndex:idx_listing_option" json:"optionId"`
	Option   CategoryOption `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"-"`
}
