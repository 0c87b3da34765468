// Package catalog is CRUD over categories and products. Products are
// never physically deleted; delete flips isActive so past orders keep a
// record to point at.
package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"queijos-backend/apperr"
	"queijos-backend/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ProductInput carries the client-supplied product fields for create and
// update. IsActive is a pointer so an omitted value can default to true
// on update, matching the storefront's behavior.
type ProductInput struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	CategoryID  *uint           `json:"categoryId"`
	IsCombo     bool            `json:"isCombo"`
	IsActive    *bool           `json:"isActive"`
}

func (s *Service) CreateCategory(name string) (models.Category, error) {
	if name == "" {
		return models.Category{}, apperr.Validation("name is required")
	}
	category := models.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *Service) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Service) CreateProduct(input ProductInput) (models.Product, error) {
	if input.Name == "" || input.Price.IsZero() {
		return models.Product{}, apperr.Validation("name and price are required")
	}
	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
		IsCombo:     input.IsCombo,
		IsActive:    true,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// ListProducts returns active products ordered by name, with their
// category joined in.
func (s *Service) ListProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("is_active = ?", true).Order("name").Preload("Category").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a product by id regardless of isActive, so
// soft-deleted products stay resolvable for historical order display.
func (s *Service) GetProduct(id uint) (models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, apperr.NotFound("product not found")
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// UpdateProduct replaces the product's mutable fields in full.
func (s *Service) UpdateProduct(input ProductInput) (models.Product, error) {
	if input.ID == 0 || input.Name == "" || input.Price.IsZero() {
		return models.Product{}, apperr.Validation("id, name and price are required")
	}
	var product models.Product
	err := s.db.First(&product, input.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, apperr.NotFound("product not found")
	}
	if err != nil {
		return models.Product{}, err
	}
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.ImageURL = input.ImageURL
	product.CategoryID = input.CategoryID
	product.IsCombo = input.IsCombo
	product.IsActive = true
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.db.Save(&product).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// DeleteProduct soft-deletes: the row stays, isActive flips to false.
func (s *Service) DeleteProduct(id uint) error {
	if id == 0 {
		return apperr.Validation("id is required")
	}
	var product models.Product
	err := s.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("product not found")
	}
	if err != nil {
		return err
	}
	product.IsActive = false
	return s.db.Save(&product).Error
}
