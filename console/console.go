// Package console implements the shop operator's product, order and lead management.
package console

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrConfirmationRequired = errors.New("deletion must be confirmed")
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ProductForm is what the operator submits to create or edit a product.
type ProductForm struct {
	Name           string           `json:"name" validate:"required"`
	Price          decimal.Decimal  `json:"price" validate:"gte=0"`
	CompareAtPrice *decimal.Decimal `json:"market_price,omitempty"`
	ImageURL       string           `json:"image_url" validate:"required"`
	Images         []string         `json:"images,omitempty"`
	Description    string           `json:"description" validate:"required"`
	Category       string           `json:"category" validate:"required"`
	Trending       bool             `json:"trending"`
	Stock          int              `json:"stock" validate:"gte=0"`
	Active         *bool            `json:"active,omitempty"`
}

var formMessages = map[string]string{
	"name":        "Product name is required",
	"price":       "Price must be zero or more",
	"image_url":   "An image URL or upload is required",
	"description": "Description is required",
	"category":    "Category is required",
	"stock":       "Stock cannot be negative",
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}()

// Validate returns the first broken rule in form order.
func (f ProductForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)

	err := validate.Struct(f)
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		if msg, ok := formMessages[errs[0].Field()]; ok {
			return &ValidationError{Message: msg}
		}
		return &ValidationError{Message: errs[0].Field() + " is invalid"}
	}
	return err
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug from a product name.
func Slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

type Console struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	leads    repository.LeadRepository
	log      zerolog.Logger
}

func New(products repository.ProductRepository, orders repository.OrderRepository, leads repository.LeadRepository, log zerolog.Logger) *Console {
	return &Console{
		products: products,
		orders:   orders,
		leads:    leads,
		log:      log.With().Str("component", "console").Logger(),
	}
}

func (c *Console) Products(ctx context.Context) ([]models.Product, error) {
	return c.products.ListAllProducts(ctx)
}

func (c *Console) apply(ctx context.Context, p *models.Product, f ProductForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	category, err := c.products.GetCategoryBySlug(ctx, strings.TrimSpace(f.Category))
	if errors.Is(err, repository.ErrNotFound) {
		return &ValidationError{Message: fmt.Sprintf("Unknown category %q", f.Category)}
	}
	if err != nil {
		return err
	}

	p.Name = strings.TrimSpace(f.Name)
	p.Description = strings.TrimSpace(f.Description)
	p.Price = f.Price
	p.CompareAtPrice = decimal.NullDecimal{}
	if f.CompareAtPrice != nil {
		p.CompareAtPrice = decimal.NewNullDecimal(*f.CompareAtPrice)
	}
	p.Images = append([]string{strings.TrimSpace(f.ImageURL)}, without(f.Images, f.ImageURL)...)
	p.CategoryID = category.ID
	p.Category = nil
	p.IsFeatured = f.Trending
	p.StockQuantity = f.Stock
	if f.Active != nil {
		p.IsActive = *f.Active
	}
	return nil
}

func without(list []string, drop string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" && s != strings.TrimSpace(drop) {
			out = append(out, s)
		}
	}
	return out
}

// uniqueSlug derives a slug from name that no other product uses.
func (c *Console) uniqueSlug(ctx context.Context, name, selfID string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "product"
	}
	slug := base
	for i := 0; i < 5; i++ {
		existing, err := c.products.GetProductBySlug(ctx, slug)
		if errors.Is(err, repository.ErrNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		if existing.ID == selfID {
			return slug, nil
		}
		slug = base + "-" + uuid.NewString()[:6]
	}
	return "", fmt.Errorf("could not derive a free slug for %q", name)
}

func (c *Console) CreateProduct(ctx context.Context, f ProductForm) (*models.Product, error) {
	p := &models.Product{ID: uuid.NewString(), IsActive: true}
	if err := c.apply(ctx, p, f); err != nil {
		return nil, err
	}
	slug, err := c.uniqueSlug(ctx, p.Name, p.ID)
	if err != nil {
		return nil, err
	}
	p.Slug = slug

	if err := c.products.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	c.log.Info().Str("product_id", p.ID).Str("slug", p.Slug).Msg("product created")
	return p, nil
}

func (c *Console) UpdateProduct(ctx context.Context, id string, f ProductForm) (*models.Product, error) {
	p, err := c.products.GetProductByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := c.apply(ctx, p, f); err != nil {
		return nil, err
	}
	if p.Slug, err = c.uniqueSlug(ctx, p.Name, p.ID); err != nil {
		return nil, err
	}

	if err := c.products.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	c.log.Info().Str("product_id", p.ID).Msg("product updated")
	return p, nil
}

// DeleteProduct removes a product for good. Nothing happens unless confirmed.
func (c *Console) DeleteProduct(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := c.products.DeleteProduct(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	c.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// Orders lists every order, newest first.
func (c *Console) Orders(ctx context.Context) ([]models.Order, error) {
	return c.orders.ListOrders(ctx, repository.OrderFilter{})
}

func (c *Console) Order(ctx context.Context, id string) (*models.Order, error) {
	o, err := c.orders.GetOrder(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// SetOrderStatus assigns any known status regardless of the current one.
func (c *Console) SetOrderStatus(ctx context.Context, id, status string) (models.OrderStatus, error) {
	st, ok := models.ParseOrderStatus(status)
	if !ok {
		return "", &ValidationError{Message: fmt.Sprintf("Unknown order status %q", status)}
	}
	err := c.orders.UpdateOrderStatus(ctx, id, st)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", fmt.Errorf("update order status: %w", err)
	}
	c.log.Info().Str("order_id", id).Str("status", string(st)).Msg("order status changed")
	return st, nil
}

func (c *Console) Leads(ctx context.Context) ([]models.ContactLead, error) {
	return c.leads.ListLeads(ctx)
}
