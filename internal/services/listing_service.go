package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/repeto/placement-board/internal/dtos"
	"github.com/repeto/placement-board/internal/models"
)

// ListingService owns the write lifecycle of listings and of their contact
// and filter-link child rows. No other component mutates those tables.
type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

// Create inserts a listing with its contacts and resolved filter links and
// returns the new identifier. Filter mappings whose category or option name
// does not resolve are skipped, not fatal; everything else runs in one
// transaction so a failed step leaves no partial listing behind.
func (s *ListingService) Create(kind, uid string, payload *dtos.ListingPayload) (uint, error) {
	var id uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ensurePrincipal(tx, uid, models.DefaultRole(kind)); err != nil {
			return err
		}

		listing := models.Listing{
			Kind:         kind,
			CompanyName:  payload.CompanyName,
			RoleName:     payload.RoleName,
			Description:  payload.Description,
			Venue:        payload.Venue,
			Salary:       payload.Salary,
			CTC:          payload.CTC,
			CompanyLink:  payload.CompanyLink,
			LastDate:     dtos.ParseDate(payload.LastDate),
			IsActive:     payload.IsActive == nil || *payload.IsActive,
			CreatedByUID: &uid,
		}
		if err := tx.Create(&listing).Error; err != nil {
			return err
		}
		if listing.ID == 0 {
			return ErrCreateFailed
		}

		if err := s.insertContacts(tx, listing.ID, payload.Contacts); err != nil {
			return err
		}
		if err := s.linkFilters(tx, listing.ID, payload.FilterOptions); err != nil {
			return err
		}

		id = listing.ID
		return nil
	})
	return id, err
}

// Update replaces every scalar field from the payload, including empty
// values, then rebuilds the contact and filter-link sets from scratch. The
// delete-and-reinsert is the contract: child identifiers are not stable
// across updates. The lookup is kind-scoped, so one surface can never
// address the other's listings.
func (s *ListingService) Update(kind string, id uint, payload *dtos.ListingPayload) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Listing
		if err := tx.Where("kind = ?", kind).First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"company_name": payload.CompanyName,
			"role_name":    payload.RoleName,
			"description":  payload.Description,
			"venue":        payload.Venue,
			"salary":       payload.Salary,
			"ctc":          payload.CTC,
			"company_link": payload.CompanyLink,
			"last_date":    dtos.ParseDate(payload.LastDate),
			"is_active":    payload.IsActive == nil || *payload.IsActive,
		}
		if err := tx.Model(&models.Listing{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("listing_id = ?", id).Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.FilterLink{}).Error; err != nil {
			return err
		}

		if err := s.insertContacts(tx, id, payload.Contacts); err != nil {
			return err
		}
		return s.linkFilters(tx, id, payload.FilterOptions)
	})
}

// Delete removes a listing and its children, children strictly first so the
// order is correct even without cascade rules in the schema. An identifier
// that does not match the kind deletes nothing and still reports success.
func (s *ListingService) Delete(kind string, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Listing
		if err := tx.Where("kind = ?", kind).First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.FilterLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Listing{}, id).Error
	})
}

// List returns all listings of a kind with their contacts and resolved
// filter tags. Projects surface in creation order; jobs in store order.
func (s *ListingService) List(kind string) ([]dtos.ListingResponse, error) {
	query := s.DB.Preload("Contacts").Where("kind = ?", kind)
	if kind == models.KindProject {
		query = query.Order("created_at")
	} else {
		query = query.Order("id")
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return nil, err
	}

	out := make([]dtos.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		tags, err := s.resolveTags(listing.ID)
		if err != nil {
			return nil, err
		}
		contacts := listing.Contacts
		if contacts == nil {
			contacts = []models.Contact{}
		}
		out = append(out, dtos.ListingResponse{
			Listing:  listing,
			Contacts: contacts,
			Filters:  tags,
		})
	}
	return out, nil
}

// ensurePrincipal records the acting account if it is new. An existing row
// keeps its role; Attrs only applies on insert.
func (s *ListingService) ensurePrincipal(tx *gorm.DB, uid, role string) error {
	var user models.User
	return tx.Where(models.User{UID: uid}).
		Attrs(models.User{Role: role}).
		FirstOrCreate(&user).Error
}

func (s *ListingService) insertContacts(tx *gorm.DB, listingID uint, contacts []dtos.ContactPayload) error {
	for _, c := range contacts {
		contact := models.Contact{
			ListingID:   listingID,
			Name:        c.Name,
			Designation: c.Designation,
			Email:       c.Email,
			Phone:       c.Phone,
		}
		if err := tx.Create(&contact).Error; err != nil {
			return err
		}
	}
	return nil
}

// linkFilters resolves each {categoryName, optionName(s)} mapping to catalog
// IDs and inserts the junction rows. Option lookup is scoped to the resolved
// category, so an option name shared across categories can never link the
// wrong one. Unresolved names are logged and skipped; duplicate pairs are
// collapsed before insert.
func (s *ListingService) linkFilters(tx *gorm.DB, listingID uint, mappings []dtos.FilterMapping) error {
	linked := make(map[uint]bool)
	for _, mapping := range mappings {
		var category models.Category
		err := tx.Where("name = ?", mapping.CategoryName).First(&category).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Filter mapping skipped: unknown category %q", mapping.CategoryName)
				continue
			}
			return err
		}

		for _, optionName := range mapping.OptionName {
			if optionName == "" {
				continue
			}
			var option models.CategoryOption
			err := tx.Where("name = ? AND category_id = ?", optionName, category.ID).
				First(&option).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					log.Printf("Filter mapping skipped: no option %q in category %q",
						optionName, mapping.CategoryName)
					continue
				}
				return err
			}
			if linked[option.ID] {
				continue
			}
			linked[option.ID] = true

			link := models.FilterLink{
				ListingID:  listingID,
				CategoryID: category.ID,
				OptionID:   option.ID,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveTags rehydrates a listing's filter links into display names. Links
// whose category or option has since been removed are dropped silently.
func (s *ListingService) resolveTags(listingID uint) ([]dtos.FilterTag, error) {
	var links []models.FilterLink
	if err := s.DB.Where("listing_id = ?", listingID).Find(&links).Error; err != nil {
		return nil, err
	}

	tags := make([]dtos.FilterTag, 0, len(links))
	for _, link := range links {
		var category models.Category
		if err := s.DB.First(&category, link.CategoryID).Error; err != nil {
			continue
		}
		var option models.CategoryOption
		if err := s.DB.First(&option, link.OptionID).Error; err != nil {
			continue
		}
		tags = append(tags, dtos.FilterTag{
			CategoryName: category.Name,
			OptionName:   option.Name,
		})
	}
	return tags, nil
}
