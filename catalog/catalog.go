package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Raj-baniya/copy-of-Giftology/cart"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/shopspring/decimal"
)

const (
	DefaultFeaturedLimit = 8
	Uncategorized        = "uncategorized"
)

var ErrProductNotFound = errors.New("product not found")

// Item is a product as the storefront shows it.
type Item struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"market_price,omitempty"`
	ImageURL       string           `json:"image_url"`
	Images         []string         `json:"images"`
	Category       string           `json:"category"`
	CategoryName   string           `json:"category_name,omitempty"`
	Trending       bool             `json:"trending"`
	Stock          int              `json:"stock"`
}

// CartProduct is the snapshot a cart line keeps of this item.
func (i Item) CartProduct() cart.Product {
	return cart.Product{
		ID:       i.ID,
		Name:     i.Name,
		Price:    i.Price,
		ImageURL: i.ImageURL,
		Category: i.Category,
	}
}

func Normalize(p models.Product) Item {
	item := Item{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.PrimaryImage(),
		Images:      p.Images,
		Category:    Uncategorized,
		Trending:    p.IsFeatured,
		Stock:       p.StockQuantity,
	}
	if item.Images == nil {
		item.Images = []string{}
	}
	if p.CompareAtPrice.Valid {
		v := p.CompareAtPrice.Decimal
		item.CompareAtPrice = &v
	}
	if p.Category != nil && p.Category.Slug != "" {
		item.Category = p.Category.Slug
		item.CategoryName = p.Category.Name
	}
	return item
}

type Reader struct {
	products repository.ProductRepository
}

func NewReader(products repository.ProductRepository) *Reader {
	return &Reader{products: products}
}

func normalizeAll(products []models.Product) []Item {
	items := make([]Item, 0, len(products))
	for _, p := range products {
		items = append(items, Normalize(p))
	}
	return items
}

// ListProducts returns the active catalog, newest first.
func (r *Reader) ListProducts(ctx context.Context) ([]Item, error) {
	products, err := r.products.ListActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return normalizeAll(products), nil
}

func (r *Reader) Featured(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	products, err := r.products.ListFeaturedProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return normalizeAll(products), nil
}

func (r *Reader) BySlug(ctx context.Context, slug string) (Item, error) {
	p, err := r.products.GetProductBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return Item{}, ErrProductNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("get product %q: %w", slug, err)
	}
	if !p.IsActive {
		return Item{}, ErrProductNotFound
	}
	return Normalize(*p), nil
}

func (r *Reader) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := r.products.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Lookup returns the active items among ids, keyed by id. Unknown or inactive
// ids are absent from the result.
func (r *Reader) Lookup(ctx context.Context, ids []string) (map[string]Item, error) {
	products, err := r.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup products: %w", err)
	}
	found := make(map[string]Item, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		found[p.ID] = Normalize(p)
	}
	return found, nil
}
