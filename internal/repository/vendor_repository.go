package repository

import (
	"errors"

	"github.com/marketplace-next/storefront/internal/models"

	"gorm.io/gorm"
)

// VendorRepository 商家数据访问接口
type VendorRepository interface {
	GetByID(id string) (*models.Vendor, error)
	GetBySlug(slug string) (*models.Vendor, error)
	Create(vendor *models.Vendor) error
}

// GormVendorRepository GORM 实现
type GormVendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository 创建商家仓库
func NewVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// GetByID 根据 ID 获取商家
func (r *GormVendorRepository) GetByID(id string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.Where("id = ?", id).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

// GetBySlug 根据 slug 获取商家
func (r *GormVendorRepository) GetBySlug(slug string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.Where("slug = ?", slug).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

// Create 创建商家
func (r *GormVendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}
