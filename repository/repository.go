package repository

import (
	"context"
	"errors"

	"github.com/Raj-baniya/copy-of-Giftology/models"
)

var ErrNotFound = errors.New("record not found")

// OrderFilter narrows ListOrders. A zero filter lists every order.
type OrderFilter struct {
	UserID string
}

type ProductRepository interface {
	ListActiveProducts(ctx context.Context) ([]models.Product, error)
	ListFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
	ListAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type OrderRepository interface {
	// CreateOrder writes the header and its line items as one unit: either both
	// are stored or neither is.
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
}

type LeadRepository interface {
	CreateLead(ctx context.Context, l *models.ContactLead) error
	ListLeads(ctx context.Context) ([]models.ContactLead, error)
}

type ProfileRepository interface {
	UpsertProfile(ctx context.Context, u *models.User) error
	GetProfile(ctx context.Context, id string) (*models.User, error)
	ListProfiles(ctx context.Context) ([]models.User, error)
	UpdateDisplayName(ctx context.Context, id, name string) error
	ListAddresses(ctx context.Context, userID string) ([]models.SavedAddress, error)
	// AddAddress reports false when the user already has an address at the same location.
	AddAddress(ctx context.Context, a *models.SavedAddress) (bool, error)
}

type PaymentQRRepository interface {
	CreateUPIQRCode(ctx context.Context, qr *models.UPIQRCode) error
	LatestUPIQRCode(ctx context.Context) (*models.UPIQRCode, error)
	// DeleteUPIQRCode removes the record and returns it so the file can be removed too.
	DeleteUPIQRCode(ctx context.Context, id uint) (*models.UPIQRCode, error)
}

// Store is the full persistence façade.
type Store interface {
	ProductRepository
	OrderRepository
	LeadRepository
	ProfileRepository
	PaymentQRRepository
}
