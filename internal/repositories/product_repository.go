package repositories

import (
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/errors"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListCatalog returns the regular storefront items (rarity-tagged reward
// products only surface through lootbox draws).
func (r *ProductRepository) ListCatalog() ([]models.Product, error) {
	var products []models.Product
	result := r.db.
		Where("rarity = '' OR rarity IS NULL").
		Order("created_at ASC").
		Find(&products)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list products")
	}

	return products, nil
}

// GetBySlug retrieves a product by its slug
func (r *ProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	result := r.db.Where("slug = ?", slug).First(&product)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "product not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get product")
	}

	return &product, nil
}

// ListByRarity returns the reward pool for a lootbox tier
func (r *ProductRepository) ListByRarity(rarity string) ([]models.Product, error) {
	var products []models.Product
	result := r.db.Where("rarity = ?", rarity).Find(&products)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list rarity pool")
	}

	return products, nil
}
