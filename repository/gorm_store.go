package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates every table the store uses.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.SavedAddress{},
		&models.Order{},
		&models.OrderItem{},
		&models.ContactLead{},
		&models.UPIQRCode{},
	)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ─────────── Products ───────────

func (s *GormStore) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (s *GormStore) ListFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("is_featured = ? AND is_active = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (s *GormStore) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (s *GormStore) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("Category").Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *GormStore) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *GormStore) GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := s.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (s *GormStore) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (s *GormStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).Select("*").Omit("id", "created_at", "Category").Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteProduct(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&categories).Error
	return categories, err
}

func (s *GormStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// ─────────── Orders ───────────

func (s *GormStore) CreateOrder(ctx context.Context, o *models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if len(o.Items) == 0 {
			return nil
		}
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
		}
		if err := tx.Create(&o.Items).Error; err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
}

func (s *GormStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *GormStore) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.WithContext(ctx).Omit("payment_proof").Preload("Items")
	if f.UserID != "" {
		query = query.Where("user_id = ?", f.UserID)
	}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ─────────── Leads ───────────

func (s *GormStore) CreateLead(ctx context.Context, l *models.ContactLead) error {
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *GormStore) ListLeads(ctx context.Context) ([]models.ContactLead, error) {
	var leads []models.ContactLead
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&leads).Error
	return leads, err
}

// ─────────── Profiles & addresses ───────────

func (s *GormStore) UpsertProfile(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "role", "updated_at"}),
		}).
		Create(u).Error
}

func (s *GormStore) GetProfile(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) ListProfiles(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("joined_at DESC").Find(&users).Error
	return users, err
}

func (s *GormStore) UpdateDisplayName(ctx context.Context, id, name string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("display_name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListAddresses(ctx context.Context, userID string) ([]models.SavedAddress, error) {
	var addresses []models.SavedAddress
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&addresses).Error
	return addresses, err
}

func (s *GormStore) AddAddress(ctx context.Context, a *models.SavedAddress) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ─────────── UPI QR ───────────

func (s *GormStore) CreateUPIQRCode(ctx context.Context, qr *models.UPIQRCode) error {
	return s.db.WithContext(ctx).Create(qr).Error
}

func (s *GormStore) LatestUPIQRCode(ctx context.Context) (*models.UPIQRCode, error) {
	var qr models.UPIQRCode
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").First(&qr).Error; err != nil {
		return nil, translate(err)
	}
	return &qr, nil
}

func (s *GormStore) DeleteUPIQRCode(ctx context.Context, id uint) (*models.UPIQRCode, error) {
	var qr models.UPIQRCode
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&qr, id).Error; err != nil {
			return err
		}
		return tx.Delete(&qr).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &qr, nil
}
