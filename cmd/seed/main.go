package main

import (
	"log"

	"github.com/repeto/placement-board/internal/config"
	"github.com/repeto/placement-board/internal/database"
	"github.com/repeto/placement-board/internal/dtos"
	"github.com/repeto/placement-board/internal/models"
	"github.com/repeto/placement-board/internal/services"
)

// Seeds the catalog and a few sample listings for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer database.Close(db)

	users := []models.User{
		{UID: "admin-placement", Role: "admin"},
		{UID: "student-john", Role: "student"},
		{UID: "student-priya", Role: "student"},
	}
	for _, u := range users {
		if err := db.Where(models.User{UID: u.UID}).Attrs(u).FirstOrCreate(&models.User{}).Error; err != nil {
			log.Fatal("Failed to seed users: ", err)
		}
	}

	minCTC, maxCTC := 0.0, 60.0
	categories := []models.Category{
		{Name: "Department", InputType: models.InputMultiSelect, Options: options("CSE", "IT", "ECE", "Other")},
		{Name: "Job Type", InputType: models.InputSingleSelect, Options: options("Full-Time", "Internship")},
		{Name: "Qualification", InputType: models.InputSingleSelect, Options: options("B.Tech", "M.Tech")},
		{Name: "Backlog", InputType: models.InputSingleSelect, Options: options("No Backlog", "Max 1")},
		{Name: "Passout Year", InputType: models.InputSingleSelect, Options: options("2025", "2026")},
		{Name: "Domain", InputType: models.InputMultiSelect, Options: options("Web Development", "Data", "Other")},
		{Name: "CTC (LPA)", InputType: models.InputRangeSlider, MinValue: &minCTC, MaxValue: &maxCTC},
	}
	for _, c := range categories {
		var existing models.Category
		if err := db.Where(models.Category{Name: c.Name}).Attrs(c).FirstOrCreate(&existing).Error; err != nil {
			log.Fatal("Failed to seed categories: ", err)
		}
	}

	listingService := services.NewListingService(db)
	samples := []dtos.ListingPayload{
		{
			CompanyName: "Google",
			RoleName:    "Software Engineer",
			Description: "Work on distributed systems at scale.",
			Venue:       "Bangalore",
			CTC:         "25-40 LPA",
			CompanyLink: "https://careers.google.com",
			LastDate:    "2026-02-15",
			Contacts: []dtos.ContactPayload{
				{Name: "Placement Cell", Designation: "Coordinator", Email: "placements@example.edu"},
			},
			FilterOptions: []dtos.FilterMapping{
				{CategoryName: "Department", OptionName: dtos.StringOrSlice{"CSE", "IT"}},
				{CategoryName: "Job Type", OptionName: dtos.StringOrSlice{"Full-Time"}},
			},
		},
		{
			CompanyName: "TCS",
			RoleName:    "Intern",
			Description: "Enterprise internship program.",
			Venue:       "Delhi",
			CTC:         "5-10 LPA",
			LastDate:    "2026-03-25",
			FilterOptions: []dtos.FilterMapping{
				{CategoryName: "Department", OptionName: dtos.StringOrSlice{"CSE"}},
				{CategoryName: "Job Type", OptionName: dtos.StringOrSlice{"Internship"}},
			},
		},
	}
	for _, payload := range samples {
		id, err := listingService.Create(models.KindJob, "admin-placement", &payload)
		if err != nil {
			log.Fatal("Failed to seed listings: ", err)
		}
		log.Printf("Seeded listing %d (%s)", id, payload.CompanyName)
	}

	log.Println("Seed complete")
}

func options(names ...string) []models.CategoryOption {
	out := make([]models.CategoryOption, 0, len(names))
	for _, n := range names {
		out = append(out, models.CategoryOption{Name: n})
	}
	return out
}
