package repository

import (
	"errors"
	"time"

	"storefront-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product id does not exist
var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListProducts returns one page of products plus the total row count
func (r *ProductRepository) ListProducts(page, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		log.Error().Err(err).Msg("Failed to count products")
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.db.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductRepository) CreateProduct(product *models.Product) error {
	result := r.db.Create(product)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to create product")
		return result.Error
	}
	return nil
}

func (r *ProductRepository) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	result := r.db.Where("id = ?", id).First(&product)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, ErrProductNotFound
	}

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to get product by ID")
		return nil, result.Error
	}

	return &product, nil
}

// UpdateProduct overwrites name, description and price of an existing product
func (r *ProductRepository) UpdateProduct(product *models.Product) error {
	product.UpdatedAt = time.Now()
	result := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"updated_at":  product.UpdatedAt,
		})

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to update product")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteProduct(id uint) error {
	result := r.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete product")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
