package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/repeto/placement-board/internal/cache"
	"github.com/repeto/placement-board/internal/dtos"
	"github.com/repeto/placement-board/internal/models"
)

// CategoryService serves the filter catalog: the read path used by both the
// filter UI and listing creation, plus the admin maintenance operations.
type CategoryService struct {
	DB    *gorm.DB
	Cache *cache.Catalog
}

func NewCategoryService(db *gorm.DB, catalogCache *cache.Catalog) *CategoryService {
	return &CategoryService{DB: db, Cache: catalogCache}
}

// ListCategories returns every category with its nested options, in catalog
// order. Storage errors propagate; the cache is bypassed on miss.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if categories, ok := s.Cache.Get(ctx); ok {
		return categories, nil
	}

	var categories []models.Category
	err := s.DB.WithContext(ctx).Preload("Options").Order("id").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Options == nil {
			categories[i].Options = []models.CategoryOption{}
		}
	}

	s.Cache.Set(ctx, categories)
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *dtos.CategoryCreateRequest) (*models.Category, error) {
	inputType := req.InputType
	if inputType == "" {
		inputType = models.InputSingleSelect
	}
	category := models.Category{
		Name:      req.CategoryName,
		InputType: inputType,
		MinValue:  req.MinValue,
		MaxValue:  req.MaxValue,
	}
	for _, name := range req.Options {
		category.Options = append(category.Options, models.CategoryOption{Name: name})
	}

	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return &category, nil
}

func (s *CategoryService) AddOption(ctx context.Context, categoryID uint, name string) (*models.CategoryOption, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	option := models.CategoryOption{CategoryID: category.ID, Name: name}
	if err := s.DB.WithContext(ctx).Create(&option).Error; err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return &option, nil
}

// DeleteCategory removes a category, its options, and any filter links that
// referenced them, children first.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.FilterLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.CategoryOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
	if err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}

func (s *CategoryService) DeleteOption(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var option models.CategoryOption
		if err := tx.First(&option, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOptionNotFound
			}
			return err
		}
		if err := tx.Where("option_id = ?", id).Delete(&models.FilterLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CategoryOption{}, id).Error
	})
	if err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}
